package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceRow fila de la tabla de facturación del cliente.
type InvoiceRow struct {
	ID       string          `json:"id"`
	Number   string          `json:"number"`
	PONumber string          `json:"po_number"`
	Date     time.Time       `json:"date"`
	Status   string          `json:"status"` // open | paid
	Amount   decimal.Decimal `json:"amount"`
}
