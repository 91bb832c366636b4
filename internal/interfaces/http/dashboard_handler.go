package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/palletpro-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetDashboard devuelve el dashboard del rol de la sesión.
// GET /api/dashboard
//
// admin: métricas globales y pedidos recientes; vendedor: métricas de su
// cartera y comisiones; cliente: resumen de compras y pedidos recientes.
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboard(c.UserContext(), Viewer(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetMetrics GET /api/dashboard/metrics (admin y vendedor).
func (h *DashboardHandler) GetMetrics(c *fiber.Ctx) error {
	out, err := h.uc.GetMetrics(c.UserContext(), Viewer(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
