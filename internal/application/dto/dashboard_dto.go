package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopProductDTO producto del ranking de ventas.
type TopProductDTO struct {
	Product  string          `json:"product"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// MonthlySalesDTO punto de la serie mensual.
type MonthlySalesDTO struct {
	Month string          `json:"month"`
	Sales decimal.Decimal `json:"sales"`
}

// SalesMetricsDTO KPIs comerciales.
type SalesMetricsDTO struct {
	TotalSales         decimal.Decimal   `json:"total_sales"`
	TotalCommissions   decimal.Decimal   `json:"total_commissions"`
	CustomerCount      int               `json:"customer_count"`
	OrderCount         int               `json:"order_count"`
	AverageOrderValue  decimal.Decimal   `json:"average_order_value"`
	TopSellingProducts []TopProductDTO   `json:"top_selling_products"`
	MonthlySales       []MonthlySalesDTO `json:"monthly_sales"`
}

// CustomerSummaryDTO resumen de compras de un cliente.
type CustomerSummaryDTO struct {
	TotalOrders       int             `json:"total_orders"`
	TotalSpent        decimal.Decimal `json:"total_spent"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	LastOrderDate     *time.Time      `json:"last_order_date,omitempty"`
}

// CommissionRow fila de comisiones del vendedor.
type CommissionRow struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"order_id"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
	Paid       bool            `json:"paid"`
}

// DashboardDTO dashboard del portal; solo se completan las secciones del rol.
type DashboardDTO struct {
	Role         string              `json:"role"`
	Metrics      *SalesMetricsDTO    `json:"metrics,omitempty"`
	Commissions  []CommissionRow     `json:"commissions,omitempty"`
	Summary      *CustomerSummaryDTO `json:"summary,omitempty"`
	RecentOrders []OrderRow          `json:"recent_orders,omitempty"`
}

// InsightDTO recomendación generada sobre las métricas.
type InsightDTO struct {
	Type        string `json:"type"` // trend | opportunity | risk | anomaly
	Title       string `json:"title"`
	Description string `json:"description"`
	Confidence  int    `json:"confidence"` // 0-100
}
