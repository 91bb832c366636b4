package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetricsScope delimita el universo de pedidos sobre el que se calculan métricas.
// SalespersonID vacío = toda la empresa (vista admin).
type MetricsScope struct {
	SalespersonID string
}

// Key identifica el alcance (p. ej. para caché).
func (s MetricsScope) Key() string {
	if s.SalespersonID == "" {
		return "all"
	}
	return "sales:" + s.SalespersonID
}

// TopProduct producto más vendido por ingresos.
type TopProduct struct {
	Product  string
	Quantity int
	Revenue  decimal.Decimal
}

// MonthlySales ventas agregadas de un mes.
type MonthlySales struct {
	Month string // "Jan", "Feb", ...
	Sales decimal.Decimal
}

// SalesMetrics KPIs comerciales de un alcance.
type SalesMetrics struct {
	TotalSales         decimal.Decimal
	TotalCommissions   decimal.Decimal
	CustomerCount      int
	OrderCount         int
	AverageOrderValue  decimal.Decimal
	TopSellingProducts []TopProduct
	MonthlySales       []MonthlySales
}

// CustomerSummary resumen de compras de un cliente.
type CustomerSummary struct {
	TotalOrders       int
	TotalSpent        decimal.Decimal
	AverageOrderValue decimal.Decimal
	LastOrderDate     *time.Time
}

// Commission comisión de un vendedor sobre un pedido.
type Commission struct {
	ID            string
	SalespersonID string
	OrderID       string
	Percentage    decimal.Decimal
	Amount        decimal.Decimal
	IsPaid        bool
	PaidDate      *time.Time
}
