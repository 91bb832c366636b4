package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/palletpro-api/internal/application/dto"
	"github.com/jhoicas/palletpro-api/internal/application/ports"
	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
)

// OrderUseCase pedidos y transacciones por rol.
type OrderUseCase struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	tx        OrderTxRunner
	notifier  ports.Notifier
	metrics   MetricsInvalidator
	tiers     []entity.DiscountTier
}

// NewOrderUseCase construye el caso de uso con las escalas de descuento por defecto.
// metrics puede ser nil.
func NewOrderUseCase(
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	tx OrderTxRunner,
	notifier ports.Notifier,
	metrics MetricsInvalidator,
) *OrderUseCase {
	return &OrderUseCase{
		orders:    orders,
		customers: customers,
		products:  products,
		tx:        tx,
		notifier:  notifier,
		metrics:   metrics,
		tiers:     entity.DefaultDiscountTiers(),
	}
}

// List pedidos visibles: cliente los propios, vendedor los de sus clientes, admin todos.
func (uc *OrderUseCase) List(ctx context.Context, viewer *entity.SessionUser) ([]dto.OrderRow, error) {
	filter, err := uc.scope(ctx, viewer)
	if err != nil {
		return nil, err
	}
	list, err := uc.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewOrderRows(list), nil
}

// Get detalle de un pedido. Leer un pedido ajeno devuelve ErrForbidden.
func (uc *OrderUseCase) Get(ctx context.Context, viewer *entity.SessionUser, id string) (*dto.OrderDetailResponse, error) {
	filter, err := uc.scope(ctx, viewer)
	if err != nil {
		return nil, err
	}
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if !visible(o, filter) {
		return nil, domain.ErrForbidden
	}
	return toOrderDetail(o, viewer.Role != entity.RoleCustomer), nil
}

// Create registra un pedido con descuento por volumen y, si el cliente tiene
// vendedor asignado, su comisión, todo en una misma transacción.
func (uc *OrderUseCase) Create(ctx context.Context, viewer *entity.SessionUser, in dto.CreateOrderRequest) (*dto.OrderDetailResponse, error) {
	if err := allow(viewer, entity.Roles()...); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.buyer(ctx, viewer, in.CustomerID)
	if err != nil {
		return nil, err
	}

	lines := make([]entity.OrderLine, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		p, err := uc.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
		}
		if !p.InStock {
			return nil, fmt.Errorf("producto %s sin stock: %w", p.Name, domain.ErrConflict)
		}
		lines = append(lines, entity.OrderLine{Product: p, Quantity: it.Quantity})
	}

	now := time.Now().UTC()
	order := &entity.Order{
		ID:                  uuid.New().String(),
		CustomerID:          customer.ID,
		CustomerName:        customer.Company,
		SalespersonID:       customer.SalespersonID,
		ShippingAddress:     shippingFor(customer, in.ShippingAddressID),
		Status:              entity.OrderPending,
		PurchaseOrderNumber: strings.TrimSpace(in.PurchaseOrderNumber),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if order.PurchaseOrderNumber == "" {
		order.PurchaseOrderNumber = "PO-" + strings.ToUpper(order.ID[:8])
	}
	order.Price(lines, uc.tiers, func(int) string { return uuid.New().String() })

	err = uc.tx.RunOrders(ctx, func(orders repository.OrderRepository) error {
		if err := orders.Create(ctx, order); err != nil {
			return err
		}
		if order.SalespersonID == "" {
			return nil
		}
		return orders.AddCommission(ctx, &entity.Commission{
			ID:            uuid.New().String(),
			SalespersonID: order.SalespersonID,
			OrderID:       order.ID,
			Percentage:    entity.CommissionRate,
			Amount:        entity.CommissionFor(order.Total),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("crear pedido: %w", err)
	}
	uc.invalidateMetrics()

	toast := ports.Toast{
		Title:       "Order placed",
		Description: fmt.Sprintf("Order %s for %s has been placed", order.PurchaseOrderNumber, customer.Company),
		Variant:     entity.NotificationSuccess,
	}
	uc.notifier.Notify(ctx, viewer.ID, toast)
	if customer.UserID != "" && customer.UserID != viewer.ID {
		uc.notifier.Notify(ctx, customer.UserID, toast)
	}
	if order.SalespersonID != "" && order.SalespersonID != viewer.ID {
		uc.notifier.Notify(ctx, order.SalespersonID, toast)
	}
	return toOrderDetail(order, viewer.Role != entity.RoleCustomer), nil
}

// UpdateStatus avanza el estado del pedido (solo admin o el vendedor asignado).
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, viewer *entity.SessionUser, id string, status string) (*dto.OrderDetailResponse, error) {
	if err := allow(viewer, entity.RoleAdmin, entity.RoleSalesperson); err != nil {
		return nil, err
	}
	next := entity.OrderStatus(status)
	if !next.Valid() {
		return nil, domain.ErrInvalidInput
	}
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if viewer.Role == entity.RoleSalesperson && o.SalespersonID != viewer.ID {
		return nil, domain.ErrForbidden
	}
	if !o.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}
	if err := uc.orders.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	o.Status = next
	o.UpdatedAt = time.Now().UTC()
	uc.invalidateMetrics()

	customer, err := uc.customers.GetByID(ctx, o.CustomerID)
	if err == nil && customer != nil && customer.UserID != "" {
		uc.notifier.Notify(ctx, customer.UserID, ports.Toast{
			Title:       "Order status updated",
			Description: fmt.Sprintf("Order %s is now %s", o.PurchaseOrderNumber, next),
		})
	}
	return toOrderDetail(o, true), nil
}

func (uc *OrderUseCase) invalidateMetrics() {
	if uc.metrics != nil {
		uc.metrics.Purge()
	}
}

// scope filtro de pedidos visibles para el usuario.
func (uc *OrderUseCase) scope(ctx context.Context, viewer *entity.SessionUser) (repository.OrderFilter, error) {
	if err := allow(viewer, entity.Roles()...); err != nil {
		return repository.OrderFilter{}, err
	}
	switch viewer.Role {
	case entity.RoleSalesperson:
		return repository.OrderFilter{SalespersonID: viewer.ID}, nil
	case entity.RoleCustomer:
		c, err := uc.customers.GetByUserID(ctx, viewer.ID)
		if err != nil {
			return repository.OrderFilter{}, err
		}
		if c == nil {
			return repository.OrderFilter{}, domain.ErrNotFound
		}
		return repository.OrderFilter{CustomerID: c.ID}, nil
	}
	return repository.OrderFilter{}, nil
}

// buyer cuenta para la que se crea el pedido.
func (uc *OrderUseCase) buyer(ctx context.Context, viewer *entity.SessionUser, customerID string) (*entity.Customer, error) {
	if viewer.Role == entity.RoleCustomer {
		c, err := uc.customers.GetByUserID(ctx, viewer.ID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
		if customerID != "" && customerID != c.ID {
			return nil, domain.ErrForbidden
		}
		return c, nil
	}
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if viewer.Role == entity.RoleSalesperson && c.SalespersonID != viewer.ID {
		return nil, domain.ErrForbidden
	}
	return c, nil
}

func visible(o *entity.Order, f repository.OrderFilter) bool {
	if f.CustomerID != "" && o.CustomerID != f.CustomerID {
		return false
	}
	if f.SalespersonID != "" && o.SalespersonID != f.SalespersonID {
		return false
	}
	return true
}

// shippingFor dirección elegida, la de despacho por defecto o la de facturación.
func shippingFor(c *entity.Customer, addressID string) entity.Address {
	if addressID != "" {
		for _, a := range c.ShippingAddresses {
			if a.ID == addressID {
				return a.Address
			}
		}
	}
	if a, ok := c.DefaultShipping(); ok {
		return a.Address
	}
	return c.BillingAddress
}

func toOrderDetail(o *entity.Order, withTransitions bool) *dto.OrderDetailResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:              it.ProductID,
			ProductName:            it.ProductName,
			Quantity:               it.Quantity,
			PricePerUnit:           it.PricePerUnit,
			DiscountedPricePerUnit: it.DiscountedPricePerUnit,
			Subtotal:               it.Subtotal,
		})
	}
	out := &dto.OrderDetailResponse{
		OrderRow:        dto.NewOrderRow(o),
		CustomerID:      o.CustomerID,
		Items:           items,
		Subtotal:        o.Subtotal,
		Discount:        o.Discount,
		ShippingAddress: o.ShippingAddress,
	}
	if withTransitions {
		for _, s := range o.Status.Next() {
			out.NextStatuses = append(out.NextStatuses, string(s))
		}
	}
	return out
}
