package http

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/palletpro-api/internal/application/dto"
	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/pkg/jwt"
)

// Locals keys de la identidad en Fiber.
const (
	LocalUserID    = "user_id"
	LocalSessionID = "session_id"
	LocalRole      = "role"
	LocalViewer    = "viewer"
	LocalReady     = "session_ready"
)

// TokenCookie cookie con el JWT para la navegación de páginas.
const TokenCookie = "palletpro_token"

// SessionResolver lo implementa *session.Service.
type SessionResolver interface {
	Ready() bool
	Resolve(ctx context.Context, id string) (*entity.Session, error)
}

// AuthMiddleware valida el Bearer Token JWT y carga la identidad en c.Locals.
// Con sessions != nil además exige que la sesión enlazada siga vigente; el
// usuario visible es la instantánea guardada en la sesión.
func AuthMiddleware(jwtSecret string, sessions SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, code, msg := bearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalSessionID, claims.SessionID)
		c.Locals(LocalRole, claims.Role)

		if sessions == nil {
			c.Locals(LocalViewer, &entity.SessionUser{ID: claims.UserID, Role: entity.Role(claims.Role)})
			return c.Next()
		}
		sess, err := sessions.Resolve(c.UserContext(), claims.SessionID)
		if errors.Is(err, domain.ErrNotReady) {
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SESSION_LOADING", Message: "verificando sesión, reintente"})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		if sess == nil || sess.User.ID != claims.UserID {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "la sesión expiró o fue cerrada"})
		}
		user := sess.User
		c.Locals(LocalRole, string(user.Role))
		c.Locals(LocalViewer, &user)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Debe ir después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		if !slices.Contains(roles, role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para este recurso"})
		}
		return c.Next()
	}
}

// bearerToken lee el token del header Authorization o, en su defecto, de la cookie.
func bearerToken(c *fiber.Ctx) (token, code, msg string) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		if tok := c.Cookies(TokenCookie); tok != "" {
			return tok, "", ""
		}
		return "", "MISSING_TOKEN", "Authorization header requerido"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", "MISSING_TOKEN", "token vacío"
	}
	return tok, "", ""
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetSessionID devuelve el id de la sesión enlazada al token.
func GetSessionID(c *fiber.Ctx) string { return localString(c, LocalSessionID) }

// GetRole devuelve el rol de la identidad actual.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// Viewer devuelve el usuario de la sesión o nil si no hay identidad.
func Viewer(c *fiber.Ctx) *entity.SessionUser {
	u, _ := c.Locals(LocalViewer).(*entity.SessionUser)
	return u
}
