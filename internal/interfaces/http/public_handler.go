package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/palletpro-api/internal/domain/access"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
)

type demoAccount struct {
	Email string      `json:"email"`
	Role  entity.Role `json:"role"`
}

var demoAccounts = []demoAccount{
	{Email: "customer@example.com", Role: entity.RoleCustomer},
	{Email: "sales@example.com", Role: entity.RoleSalesperson},
	{Email: "admin@example.com", Role: entity.RoleAdmin},
}

func sessionPending(c *fiber.Ctx) bool {
	ready, _ := c.Locals(LocalReady).(bool)
	return !ready
}

func loadingPage(c *fiber.Ctx) error {
	c.Set(fiber.HeaderRetryAfter, "1")
	return c.Status(fiber.StatusServiceUnavailable).JSON(PageDocument{State: PageLoading, Path: c.Path()})
}

// Index redirige al portal del rol o al login.
func Index(c *fiber.Ctx) error {
	if sessionPending(c) {
		return loadingPage(c)
	}
	if u := Viewer(c); u != nil {
		return c.Redirect(access.HomeFor(u.Role), fiber.StatusFound)
	}
	return c.Redirect(access.LoginPath, fiber.StatusFound)
}

// LoginPage formulario de login. Con sesión activa vuelve al destino "from"
// (solo rutas locales) o al portal del rol.
func LoginPage(c *fiber.Ctx) error {
	if sessionPending(c) {
		return loadingPage(c)
	}
	from := access.SafeReturnPath(c.Query("from"), "")
	if u := Viewer(c); u != nil {
		if from == "" {
			from = access.HomeFor(u.Role)
		}
		return c.Redirect(from, fiber.StatusFound)
	}
	return c.JSON(PageDocument{
		State: PageReady,
		Path:  c.Path(),
		Title: "Login",
		Content: fiber.Map{
			"action":        "/api/auth/login",
			"from":          from,
			"demo_accounts": demoAccounts,
		},
	})
}

// SignupPage formulario de registro.
func SignupPage(c *fiber.Ctx) error {
	if sessionPending(c) {
		return loadingPage(c)
	}
	if u := Viewer(c); u != nil {
		return c.Redirect(access.HomeFor(u.Role), fiber.StatusFound)
	}
	return c.JSON(PageDocument{
		State: PageReady,
		Path:  c.Path(),
		Title: "Sign Up",
		Content: fiber.Map{
			"action": "/api/auth/signup",
			"roles":  entity.Roles(),
		},
	})
}
