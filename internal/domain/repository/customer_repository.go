package repository

import (
	"context"

	"github.com/jhoicas/palletpro-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para las cuentas de cliente.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Customer, error)
	// List devuelve los clientes; salespersonID vacío = todos (vista admin).
	List(ctx context.Context, salespersonID string) ([]*entity.Customer, error)
}
