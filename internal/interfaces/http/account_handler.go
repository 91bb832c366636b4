package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/palletpro-api/internal/application/notification"
	"github.com/jhoicas/palletpro-api/internal/application/usecase"
)

// AccountHandler feed de notificaciones y preferencias del usuario de la sesión.
type AccountHandler struct {
	notifications *notification.UseCase
	prefs         *usecase.PreferencesUseCase
}

// NewAccountHandler construye el handler.
func NewAccountHandler(notifications *notification.UseCase, prefs *usecase.PreferencesUseCase) *AccountHandler {
	return &AccountHandler{notifications: notifications, prefs: prefs}
}

// Notifications GET /api/notifications, más recientes primero.
func (h *AccountHandler) Notifications(c *fiber.Ctx) error {
	out, err := h.notifications.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetPreferences GET /api/preferences
func (h *AccountHandler) GetPreferences(c *fiber.Ctx) error {
	out, err := h.prefs.Get(c.UserContext(), Viewer(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdatePreferences PUT /api/preferences
func (h *AccountHandler) UpdatePreferences(c *fiber.Ctx) error {
	current, err := h.prefs.Get(c.UserContext(), Viewer(c))
	if err != nil {
		return writeError(c, err)
	}
	in := *current
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.prefs.Update(c.UserContext(), Viewer(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
