package dto

import "github.com/shopspring/decimal"

// ProductRow fila del catálogo. Cost solo se incluye para vendedores y administradores.
type ProductRow struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Category       string           `json:"category"`
	PricePerPallet decimal.Decimal  `json:"price_per_pallet"`
	DefaultQty     int              `json:"default_pallet_quantity"`
	InStock        bool             `json:"in_stock"`
	Cost           *decimal.Decimal `json:"cost,omitempty"`
}

// CategoryResponse categoría del catálogo.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
