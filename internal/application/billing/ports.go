package billing

import (
	"context"

	"github.com/jhoicas/palletpro-api/internal/domain/entity"
)

// Issuer datos del emisor que aparecen en la cabecera de la factura.
type Issuer struct {
	Name    string
	Address string
	Email   string
	Phone   string
}

// OrderInvoicePDFGenerator puerto de salida para la representación PDF de la factura de un pedido.
type OrderInvoicePDFGenerator interface {
	GenerateOrderInvoicePDF(ctx context.Context, issuer Issuer, order *entity.Order, customer *entity.Customer) ([]byte, error)
}
