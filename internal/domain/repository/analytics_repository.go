package repository

import (
	"context"

	"github.com/jhoicas/palletpro-api/internal/domain/entity"
)

// AnalyticsRepository define las consultas de lectura para el dashboard.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// GetSalesMetrics KPIs del alcance (toda la empresa o un vendedor).
	GetSalesMetrics(ctx context.Context, scope entity.MetricsScope) (*entity.SalesMetrics, error)
	// GetCustomerSummary resumen de compras de un cliente.
	GetCustomerSummary(ctx context.Context, customerID string) (*entity.CustomerSummary, error)
	// ListCommissions comisiones de un vendedor, más recientes primero.
	ListCommissions(ctx context.Context, salespersonID string) ([]*entity.Commission, error)
}
