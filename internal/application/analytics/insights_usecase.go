package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/palletpro-api/internal/application/dto"
	"github.com/jhoicas/palletpro-api/internal/application/ports"
	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/pkg/logger"
)

const insightsTimeout = 10 * time.Second

// InsightsUseCase orquesta los insights asistidos por IA de la página de analítica.
// Aplica un timeout de 10 segundos a cada llamada al proveedor; si falla, responde
// con el adaptador de respaldo.
type InsightsUseCase struct {
	dashboard *DashboardUseCase
	primary   ports.InsightService
	fallback  ports.InsightService
	log       *logger.Logger
}

// NewInsightsUseCase construye el caso de uso. fallback puede ser nil.
func NewInsightsUseCase(dashboard *DashboardUseCase, primary, fallback ports.InsightService, log *logger.Logger) *InsightsUseCase {
	return &InsightsUseCase{dashboard: dashboard, primary: primary, fallback: fallback, log: log.Component("insights")}
}

// Generate calcula las métricas globales y pide los insights. Solo administradores.
func (uc *InsightsUseCase) Generate(ctx context.Context, viewer *entity.SessionUser) ([]dto.InsightDTO, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthorized
	}
	if viewer.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	metrics, err := uc.dashboard.GetMetrics(ctx, viewer)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, insightsTimeout)
	defer cancel()
	out, err := uc.primary.GenerateInsights(callCtx, metrics)
	if err == nil {
		return out, nil
	}
	if uc.fallback == nil {
		return nil, err
	}
	uc.log.Warn().Err(err).Msg("proveedor de insights falló, se usan insights de respaldo")
	return uc.fallback.GenerateInsights(ctx, metrics)
}
