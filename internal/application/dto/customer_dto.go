package dto

import (
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
)

// CustomerRow fila de la tabla de clientes.
type CustomerRow struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
	Salesperson string `json:"salesperson"`
}

// CustomerDetailResponse ficha del cliente: datos, resumen de compras y pedidos recientes.
type CustomerDetailResponse struct {
	ID                string                   `json:"id"`
	Company           string                   `json:"company"`
	ContactName       string                   `json:"contact_name"`
	Email             string                   `json:"email"`
	Phone             string                   `json:"phone"`
	BillingAddress    entity.Address           `json:"billing_address"`
	ShippingAddresses []entity.ShippingAddress `json:"shipping_addresses"`
	Salesperson       *UserResponse            `json:"salesperson,omitempty"`
	Summary           CustomerSummaryDTO       `json:"summary"`
	RecentOrders      []OrderRow               `json:"recent_orders"`
}
