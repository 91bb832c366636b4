package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/palletpro-api/internal/application/usecase"
)

// UserHandler gestión de usuarios y equipo comercial.
type UserHandler struct {
	users *usecase.UserUseCase
	team  *usecase.TeamUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(users *usecase.UserUseCase, team *usecase.TeamUseCase) *UserHandler {
	return &UserHandler{users: users, team: team}
}

// List godoc
// @Summary      Listar usuarios (admin)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.UserRow
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.users.List(c.UserContext(), Viewer(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Activate POST /api/users/:id/activate
func (h *UserHandler) Activate(c *fiber.Ctx) error { return h.setActive(c, true) }

// Deactivate POST /api/users/:id/deactivate
func (h *UserHandler) Deactivate(c *fiber.Ctx) error { return h.setActive(c, false) }

func (h *UserHandler) setActive(c *fiber.Ctx, active bool) error {
	out, err := h.users.SetActive(c.UserContext(), Viewer(c), c.Params("id"), active)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Team godoc
// @Summary      Equipo comercial con métricas por vendedor
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TeamMemberRow
// @Router       /api/team [get]
func (h *UserHandler) Team(c *fiber.Ctx) error {
	out, err := h.team.List(c.UserContext(), Viewer(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
