package usecase

import (
	"context"

	"github.com/jhoicas/palletpro-api/internal/application/dto"
	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
)

const recentOrdersLimit = 5

// CustomerUseCase consulta de cuentas de cliente.
// Administradores ven todas; vendedores solo las asignadas; un cliente solo la propia.
type CustomerUseCase struct {
	customers repository.CustomerRepository
	users     repository.UserRepository
	orders    repository.OrderRepository
	analytics repository.AnalyticsRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(
	customers repository.CustomerRepository,
	users repository.UserRepository,
	orders repository.OrderRepository,
	analytics repository.AnalyticsRepository,
) *CustomerUseCase {
	return &CustomerUseCase{customers: customers, users: users, orders: orders, analytics: analytics}
}

// List devuelve las filas de la tabla de clientes visibles para el usuario.
func (uc *CustomerUseCase) List(ctx context.Context, viewer *entity.SessionUser) ([]dto.CustomerRow, error) {
	if err := allow(viewer, entity.RoleAdmin, entity.RoleSalesperson); err != nil {
		return nil, err
	}
	scope := ""
	if viewer.Role == entity.RoleSalesperson {
		scope = viewer.ID
	}
	list, err := uc.customers.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	names, err := uc.salespeople(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.CustomerRow, 0, len(list))
	for _, c := range list {
		rows = append(rows, dto.CustomerRow{
			ID:          c.ID,
			Company:     c.Company,
			ContactName: c.ContactName,
			Email:       c.Email,
			Phone:       c.ContactPhone,
			City:        c.BillingAddress.City,
			Salesperson: names[c.SalespersonID],
		})
	}
	return rows, nil
}

// Detail ficha del cliente con resumen y pedidos recientes.
func (uc *CustomerUseCase) Detail(ctx context.Context, viewer *entity.SessionUser, id string) (*dto.CustomerDetailResponse, error) {
	if err := allow(viewer, entity.RoleAdmin, entity.RoleSalesperson); err != nil {
		return nil, err
	}
	c, err := uc.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if viewer.Role == entity.RoleSalesperson && c.SalespersonID != viewer.ID {
		return nil, domain.ErrForbidden
	}
	return uc.detail(ctx, c)
}

// Own ficha de la cuenta del cliente autenticado.
func (uc *CustomerUseCase) Own(ctx context.Context, viewer *entity.SessionUser) (*dto.CustomerDetailResponse, error) {
	if err := allow(viewer, entity.RoleCustomer); err != nil {
		return nil, err
	}
	c, err := uc.customers.GetByUserID(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return uc.detail(ctx, c)
}

func (uc *CustomerUseCase) detail(ctx context.Context, c *entity.Customer) (*dto.CustomerDetailResponse, error) {
	summary, err := uc.analytics.GetCustomerSummary(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	recent, err := uc.orders.List(ctx, repository.OrderFilter{CustomerID: c.ID, Limit: recentOrdersLimit})
	if err != nil {
		return nil, err
	}
	out := &dto.CustomerDetailResponse{
		ID:                c.ID,
		Company:           c.Company,
		ContactName:       c.ContactName,
		Email:             c.Email,
		Phone:             c.ContactPhone,
		BillingAddress:    c.BillingAddress,
		ShippingAddresses: c.ShippingAddresses,
		Summary:           ToCustomerSummaryDTO(summary),
		RecentOrders:      dto.NewOrderRows(recent),
	}
	if c.SalespersonID != "" {
		sp, err := uc.users.GetByID(ctx, c.SalespersonID)
		if err != nil {
			return nil, err
		}
		out.Salesperson = entityToUserResponse(sp)
	}
	return out, nil
}

func (uc *CustomerUseCase) salespeople(ctx context.Context) (map[string]string, error) {
	list, err := uc.users.List(ctx, entity.RoleSalesperson)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(list))
	for _, u := range list {
		names[u.ID] = u.Name
	}
	return names, nil
}

// ToCustomerSummaryDTO proyecta el resumen de compras; nil = cliente sin pedidos.
func ToCustomerSummaryDTO(s *entity.CustomerSummary) dto.CustomerSummaryDTO {
	if s == nil {
		return dto.CustomerSummaryDTO{}
	}
	return dto.CustomerSummaryDTO{
		TotalOrders:       s.TotalOrders,
		TotalSpent:        s.TotalSpent.Round(2),
		AverageOrderValue: s.AverageOrderValue.Round(2),
		LastOrderDate:     s.LastOrderDate,
	}
}
