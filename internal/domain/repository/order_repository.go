package repository

import (
	"context"

	"github.com/jhoicas/palletpro-api/internal/domain/entity"
)

// OrderFilter acota el listado de pedidos. Campos vacíos no filtran.
type OrderFilter struct {
	CustomerID    string
	SalespersonID string
	Limit         int // 0 = sin límite
}

// OrderRepository define el puerto de persistencia para pedidos.
type OrderRepository interface {
	// Create persiste cabecera e ítems de forma atómica.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// List devuelve pedidos ordenados por fecha descendente.
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error
	// AddCommission registra la comisión del vendedor sobre un pedido.
	AddCommission(ctx context.Context, c *entity.Commission) error
}
