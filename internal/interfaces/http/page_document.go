package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/palletpro-api/internal/domain/access"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
)

// Estados de un documento de página.
const (
	PageLoading = "loading"
	PageReady   = "ready"
	PageError   = "error"
)

// UserCard tarjeta de usuario del menú lateral.
type UserCard struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// Chrome marco común de las páginas autenticadas.
type Chrome struct {
	Home       string            `json:"home"`
	Navigation []access.NavEntry `json:"navigation"`
	User       UserCard          `json:"user"`
}

// Fallback panel que reemplaza a una página que falló al renderizar.
type Fallback struct {
	Title     string `json:"title"`
	Message   string `json:"message"`
	RetryHref string `json:"retry_href"`
}

// PageDocument respuesta de toda página del portal.
type PageDocument struct {
	State    string    `json:"state"`
	Path     string    `json:"path"`
	Title    string    `json:"title,omitempty"`
	Chrome   *Chrome   `json:"chrome,omitempty"`
	Content  any       `json:"content,omitempty"`
	Fallback *Fallback `json:"fallback,omitempty"`
}

func newChrome(u *entity.SessionUser) *Chrome {
	if u == nil {
		return nil
	}
	return &Chrome{
		Home:       access.HomeFor(u.Role),
		Navigation: access.Navigation(u.Role),
		User: UserCard{
			Name:   u.Name,
			Email:  u.Email,
			Role:   string(u.Role),
			Avatar: u.Avatar,
		},
	}
}

// page responde el documento de la página con el chrome del usuario actual.
func page(c *fiber.Ctx, title string, content any) error {
	return c.JSON(PageDocument{
		State:   PageReady,
		Path:    c.Path(),
		Title:   title,
		Chrome:  newChrome(Viewer(c)),
		Content: content,
	})
}
