package ai

import (
	"context"
	"fmt"

	"github.com/jhoicas/palletpro-api/internal/application/dto"
	"github.com/jhoicas/palletpro-api/internal/application/ports"
)

var _ ports.InsightService = (*StaticInsights)(nil)

// Tipos de insight.
const (
	InsightTrend       = "trend"
	InsightOpportunity = "opportunity"
	InsightRisk        = "risk"
	InsightAnomaly     = "anomaly"
)

// StaticInsights adaptador sin proveedor externo: recomendaciones fijas
// complementadas con las cifras reales de las métricas.
type StaticInsights struct{}

// NewStaticInsights construye el adaptador estático.
func NewStaticInsights() *StaticInsights { return &StaticInsights{} }

// GenerateInsights devuelve los cuatro insights de demostración.
func (StaticInsights) GenerateInsights(ctx context.Context, metrics *dto.SalesMetricsDTO) ([]dto.InsightDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	trend := "Pallet sales are trending upward compared to last quarter."
	if metrics != nil && len(metrics.TopSellingProducts) > 0 {
		top := metrics.TopSellingProducts[0]
		trend = fmt.Sprintf("%s leads revenue with %s across %d pallets.", top.Product, top.Revenue.StringFixed(2), top.Quantity)
	}
	return []dto.InsightDTO{
		{Type: InsightTrend, Title: "Sales Growth Trend", Description: trend, Confidence: 80},
		{Type: InsightOpportunity, Title: "Customer Retention Opportunity", Description: "Implementing a 5% discount for recurring orders could increase retention by 15%.", Confidence: 65},
		{Type: InsightRisk, Title: "Inventory Stockout Risk", Description: "Top-selling pallet inventory may deplete within 2 weeks at the current sales rate.", Confidence: 55},
		{Type: InsightAnomaly, Title: "Unusual Expense Pattern", Description: "Transportation costs are 23% higher than the seasonal average for this quarter.", Confidence: 50},
	}, nil
}
