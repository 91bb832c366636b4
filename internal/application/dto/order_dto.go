package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/palletpro-api/internal/domain/entity"
)

// OrderRow fila de la tabla de pedidos/transacciones.
type OrderRow struct {
	ID           string          `json:"id"`
	PONumber     string          `json:"po_number"`
	Customer     string          `json:"customer"`
	Date         time.Time       `json:"date"`
	Status       string          `json:"status"`
	TotalPallets int             `json:"total_pallets"`
	Total        decimal.Decimal `json:"total"`
}

// OrderItemResponse línea de un pedido.
type OrderItemResponse struct {
	ProductID              string           `json:"product_id"`
	ProductName            string           `json:"product_name"`
	Quantity               int              `json:"quantity"`
	PricePerUnit           decimal.Decimal  `json:"price_per_unit"`
	DiscountedPricePerUnit *decimal.Decimal `json:"discounted_price_per_unit,omitempty"`
	Subtotal               decimal.Decimal  `json:"subtotal"`
}

// OrderDetailResponse pedido completo.
type OrderDetailResponse struct {
	OrderRow
	CustomerID      string              `json:"customer_id"`
	Items           []OrderItemResponse `json:"items"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	Discount        decimal.Decimal     `json:"discount"`
	ShippingAddress entity.Address      `json:"shipping_address"`
	NextStatuses    []string            `json:"next_statuses,omitempty"`
}

// OrderLineRequest línea solicitada.
type OrderLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest entrada para crear un pedido.
// CustomerID solo lo indican vendedores y administradores; un cliente compra para su propia cuenta.
type CreateOrderRequest struct {
	CustomerID          string             `json:"customer_id,omitempty"`
	Items               []OrderLineRequest `json:"items" validate:"required,min=1"`
	ShippingAddressID   string             `json:"shipping_address_id,omitempty"`
	PurchaseOrderNumber string             `json:"purchase_order_number,omitempty"`
}

// UpdateOrderStatusRequest cambio de estado.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// NewOrderRow proyecta un pedido a fila de tabla.
func NewOrderRow(o *entity.Order) OrderRow {
	return OrderRow{
		ID:           o.ID,
		PONumber:     o.PurchaseOrderNumber,
		Customer:     o.CustomerName,
		Date:         o.CreatedAt,
		Status:       string(o.Status),
		TotalPallets: o.TotalPallets,
		Total:        o.Total,
	}
}

// NewOrderRows proyecta una lista de pedidos.
func NewOrderRows(list []*entity.Order) []OrderRow {
	rows := make([]OrderRow, 0, len(list))
	for _, o := range list {
		rows = append(rows, NewOrderRow(o))
	}
	return rows
}
