package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un tipo de estiba (pallet) del catálogo.
// Cost solo es visible para vendedores y administradores.
type Product struct {
	ID                    string
	Name                  string
	Description           string
	Image                 string
	CategoryID            string
	PricePerPallet        decimal.Decimal
	DefaultPalletQuantity int
	InStock               bool
	Cost                  decimal.Decimal
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ProductCategory agrupa productos del catálogo.
type ProductCategory struct {
	ID          string
	Name        string
	Description string
}
