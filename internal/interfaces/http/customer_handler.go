package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/palletpro-api/internal/application/usecase"
)

// CustomerHandler maneja las peticiones HTTP de clientes (protegido).
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List godoc
// @Summary      Listar clientes (admin: todos; vendedor: asignados)
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CustomerRow
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), Viewer(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Detail godoc
// @Summary      Ficha de cliente con resumen y pedidos recientes
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerDetailResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) Detail(c *fiber.Ctx) error {
	out, err := h.uc.Detail(c.UserContext(), Viewer(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Own GET /api/customers/me: cuenta del cliente autenticado.
func (h *CustomerHandler) Own(c *fiber.Ctx) error {
	out, err := h.uc.Own(c.UserContext(), Viewer(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
