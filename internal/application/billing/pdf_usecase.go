package billing

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"

	"github.com/jhoicas/palletpro-api/internal/application/dto"
	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
)

// InvoiceUseCase facturas de los pedidos: listado para la página de facturación
// y descarga del PDF. Los pedidos cancelados no se facturan.
type InvoiceUseCase struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	generator    OrderInvoicePDFGenerator
	issuer       Issuer
}

// NewInvoiceUseCase construye el caso de uso inyectando todas sus dependencias.
func NewInvoiceUseCase(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	generator OrderInvoicePDFGenerator,
	issuer Issuer,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		generator:    generator,
		issuer:       issuer,
	}
}

// List facturas de la cuenta del cliente autenticado.
func (uc *InvoiceUseCase) List(ctx context.Context, viewer *entity.SessionUser) ([]dto.InvoiceRow, error) {
	customer, err := uc.ownAccount(ctx, viewer)
	if err != nil {
		return nil, err
	}
	orders, err := uc.orderRepo.List(ctx, repository.OrderFilter{CustomerID: customer.ID})
	if err != nil {
		return nil, fmt.Errorf("facturas: listar pedidos: %w", err)
	}
	rows := make([]dto.InvoiceRow, 0, len(orders))
	for _, o := range orders {
		if o.Status == entity.OrderCancelled {
			continue
		}
		status := "open"
		if o.Status == entity.OrderDelivered {
			status = "paid"
		}
		rows = append(rows, dto.InvoiceRow{
			ID:       o.ID,
			Number:   InvoiceNumber(o),
			PONumber: o.PurchaseOrderNumber,
			Date:     o.CreatedAt,
			Status:   status,
			Amount:   o.Total,
		})
	}
	return rows, nil
}

// DownloadInvoicePDF genera el PDF de la factura de un pedido.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el pedido no existe.
//   - domain.ErrForbidden        si el pedido no pertenece al usuario.
//   - domain.ErrInvalidInput     si el pedido está cancelado.
func (uc *InvoiceUseCase) DownloadInvoicePDF(ctx context.Context, viewer *entity.SessionUser, orderID string) (pdfBytes []byte, filename string, err error) {
	if viewer == nil {
		return nil, "", domain.ErrUnauthorized
	}
	// ── 1. Cargar pedido ──────────────────────────────────────────────────────
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener pedido: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Cargar cliente y validar pertenencia ───────────────────────────────
	customer, err := uc.customerRepo.GetByID(ctx, order.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", domain.ErrNotFound
	}
	switch viewer.Role {
	case entity.RoleAdmin:
	case entity.RoleSalesperson:
		if customer.SalespersonID != viewer.ID {
			return nil, "", domain.ErrForbidden
		}
	default:
		if customer.UserID != viewer.ID {
			return nil, "", domain.ErrForbidden
		}
	}

	if order.Status == entity.OrderCancelled {
		return nil, "", fmt.Errorf("%w: el pedido %s está cancelado", domain.ErrInvalidInput, order.PurchaseOrderNumber)
	}

	// ── 3. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateOrderInvoicePDF(ctx, uc.issuer, order, customer)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = slug.Make("invoice "+customer.Company+" "+order.PurchaseOrderNumber) + ".pdf"
	return pdfBytes, filename, nil
}

func (uc *InvoiceUseCase) ownAccount(ctx context.Context, viewer *entity.SessionUser) (*entity.Customer, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthorized
	}
	if viewer.Role != entity.RoleCustomer {
		return nil, domain.ErrForbidden
	}
	c, err := uc.customerRepo.GetByUserID(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// InvoiceNumber número de factura derivado de la orden de compra.
func InvoiceNumber(o *entity.Order) string {
	return "INV-" + o.PurchaseOrderNumber
}
