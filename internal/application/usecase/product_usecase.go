package usecase

import (
	"context"

	"github.com/jhoicas/palletpro-api/internal/application/dto"
	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
)

// ProductUseCase lectura del catálogo. El costo solo se expone a vendedores y administradores.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// List lista el catálogo; categoryID vacío = todas las categorías.
func (uc *ProductUseCase) List(ctx context.Context, viewer *entity.SessionUser, categoryID string) ([]dto.ProductRow, error) {
	if err := allow(viewer, entity.Roles()...); err != nil {
		return nil, err
	}
	categories, err := uc.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	list, err := uc.repo.List(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	showCost := viewer.Role != entity.RoleCustomer
	rows := make([]dto.ProductRow, 0, len(list))
	for _, p := range list {
		rows = append(rows, toProductRow(p, names[p.CategoryID], showCost))
	}
	return rows, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, viewer *entity.SessionUser, id string) (*dto.ProductRow, error) {
	if err := allow(viewer, entity.Roles()...); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	row := toProductRow(p, "", viewer.Role != entity.RoleCustomer)
	return &row, nil
}

// Categories lista las categorías del catálogo.
func (uc *ProductUseCase) Categories(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return out, nil
}

func toProductRow(p *entity.Product, category string, showCost bool) dto.ProductRow {
	row := dto.ProductRow{
		ID:             p.ID,
		Name:           p.Name,
		Category:       category,
		PricePerPallet: p.PricePerPallet,
		DefaultQty:     p.DefaultPalletQuantity,
		InStock:        p.InStock,
	}
	if showCost {
		cost := p.Cost
		row.Cost = &cost
	}
	return row
}
