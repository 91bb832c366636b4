package ports

import (
	"context"

	"github.com/jhoicas/palletpro-api/internal/application/dto"
)

// InsightService define el puerto de salida para recomendaciones generadas sobre las métricas.
// Cualquier adaptador (Anthropic, mock estático) debe implementar esta interfaz.
type InsightService interface {
	// GenerateInsights analiza las métricas comerciales y devuelve recomendaciones
	// de tipo trend, opportunity, risk o anomaly.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	GenerateInsights(ctx context.Context, metrics *dto.SalesMetricsDTO) ([]dto.InsightDTO, error)
}
