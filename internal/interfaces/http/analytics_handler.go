package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/palletpro-api/internal/application/analytics"
)

// AnalyticsHandler maneja los insights generados sobre las métricas.
type AnalyticsHandler struct {
	uc *appanalytics.InsightsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *appanalytics.InsightsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Insights godoc
// @Summary      Insights de ventas generados con IA
// @Description  Analiza las métricas globales y devuelve tendencias, oportunidades,
//
//	riesgos y anomalías. Sin API key configurada devuelve insights estáticos.
//
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.InsightDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/analytics/insights [get]
func (h *AnalyticsHandler) Insights(c *fiber.Ctx) error {
	out, err := h.uc.Generate(c.UserContext(), Viewer(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
