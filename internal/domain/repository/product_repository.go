package repository

import (
	"context"

	"github.com/jhoicas/palletpro-api/internal/domain/entity"
)

// ProductRepository define el puerto de lectura del catálogo de pallets.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// List devuelve los productos; categoryID vacío = todo el catálogo.
	List(ctx context.Context, categoryID string) ([]*entity.Product, error)
	ListCategories(ctx context.Context) ([]*entity.ProductCategory, error)
}
