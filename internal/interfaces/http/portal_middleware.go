package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/palletpro-api/internal/domain/access"
	"github.com/jhoicas/palletpro-api/pkg/jwt"
	"github.com/jhoicas/palletpro-api/pkg/logger"
)

// LoadSession carga la identidad de la navegación sin rechazar la petición:
// un token ausente, inválido o sin sesión vigente deja al visitante anónimo.
// Si el almacén de sesiones aún no está listo se marca la petición como pendiente.
func LoadSession(jwtSecret string, sessions SessionResolver, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ready := sessions.Ready()
		c.Locals(LocalReady, ready)
		if !ready {
			return c.Next()
		}
		tok, _, _ := bearerToken(c)
		if tok == "" {
			return c.Next()
		}
		claims, err := jwt.Parse(jwtSecret, tok)
		if err != nil {
			return c.Next()
		}
		sess, err := sessions.Resolve(c.UserContext(), claims.SessionID)
		if err != nil {
			log.Warn().Err(err).Str("session_id", claims.SessionID).Msg("no se pudo resolver la sesión")
			return c.Next()
		}
		if sess == nil || sess.User.ID != claims.UserID {
			return c.Next()
		}
		user := sess.User
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalSessionID, sess.ID)
		c.Locals(LocalRole, string(user.Role))
		c.Locals(LocalViewer, &user)
		return c.Next()
	}
}

// PortalGuard aplica access.Decide a la página. Debe ir después de LoadSession.
func PortalGuard(policy access.Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ready, _ := c.Locals(LocalReady).(bool)
		d := access.Decide(access.Input{
			Ready:     ready,
			User:      Viewer(c),
			Policy:    policy,
			Requested: c.OriginalURL(),
		})
		switch d.Outcome {
		case access.OutcomeLoading:
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.Status(fiber.StatusServiceUnavailable).JSON(PageDocument{State: PageLoading, Path: c.Path()})
		case access.OutcomeRedirectLogin, access.OutcomeRedirectUnauthorized:
			return c.Redirect(d.Location, fiber.StatusFound)
		}
		return c.Next()
	}
}

// PageBoundary contiene los pánicos de una página: responde un panel de
// reemplazo con enlace para reintentar y deja intacto el resto del servidor.
func PageBoundary(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			log.Error().
				Str("path", c.Path()).
				Str("panic", fmt.Sprint(r)).
				Msg("página abortada")
			err = c.Status(fiber.StatusInternalServerError).JSON(PageDocument{
				State:  PageError,
				Path:   c.Path(),
				Chrome: newChrome(Viewer(c)),
				Fallback: &Fallback{
					Title:     "Something went wrong",
					Message:   "This section failed to load.",
					RetryHref: c.OriginalURL(),
				},
			})
		}()
		return c.Next()
	}
}
