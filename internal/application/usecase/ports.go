package usecase

import (
	"context"

	"github.com/jhoicas/palletpro-api/internal/domain/repository"
)

// OrderTxRunner ejecuta fn dentro de una transacción. Si fn devuelve error
// no se persiste nada de lo escrito a través de orders.
type OrderTxRunner interface {
	RunOrders(ctx context.Context, fn func(orders repository.OrderRepository) error) error
}

// MetricsInvalidator descarta las métricas de ventas cacheadas cuando cambian los pedidos.
type MetricsInvalidator interface {
	Purge()
}
