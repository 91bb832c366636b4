package memory

import (
	"context"

	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo en memoria (solo lectura).
type ProductRepo struct{ s *Store }

// NewProductRepository construye el repositorio sobre el almacén.
func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if err := r.s.wait(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// List conserva el orden del catálogo.
func (r *ProductRepo) List(ctx context.Context, categoryID string) ([]*entity.Product, error) {
	if err := r.s.wait(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Product, 0, len(r.s.productSeq))
	for _, id := range r.s.productSeq {
		p := r.s.products[id]
		if categoryID == "" || p.CategoryID == categoryID {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *ProductRepo) ListCategories(ctx context.Context) ([]*entity.ProductCategory, error) {
	if err := r.s.wait(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.ProductCategory, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		cp := *c
		list = append(list, &cp)
	}
	return list, nil
}
