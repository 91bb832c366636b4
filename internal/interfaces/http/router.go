package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/palletpro-api/internal/application/auth"
	"github.com/jhoicas/palletpro-api/internal/domain/access"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	Sessions     SessionResolver
	Customers    *CustomerHandler
	Products     *ProductHandler
	Orders       *OrderHandler
	Users        *UserHandler
	Dashboard    *DashboardHandler
	Analytics    *AnalyticsHandler
	Invoices     *InvoiceHandler
	Account      *AccountHandler
	Pages        *PageHandler
	Log          *logger.Logger
	JWTSecret    string
	SecureCookie bool
}

// Router registra la API JSON y las páginas del portal.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.SecureCookie)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token y sesión vigente)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Sessions))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)
	protected.Patch("/auth/profile", authHandler.UpdateProfile)

	admin := string(entity.RoleAdmin)
	sales := string(entity.RoleSalesperson)
	customer := string(entity.RoleCustomer)

	protected.Get("/notifications", deps.Account.Notifications)
	protected.Get("/preferences", deps.Account.GetPreferences)
	protected.Put("/preferences", deps.Account.UpdatePreferences)

	protected.Get("/dashboard", deps.Dashboard.GetDashboard)
	protected.Get("/dashboard/metrics", RequireRole(admin, sales), deps.Dashboard.GetMetrics)
	protected.Get("/analytics/insights", RequireRole(admin), deps.Analytics.Insights)

	protected.Get("/customers", RequireRole(admin, sales), deps.Customers.List)
	protected.Get("/customers/me", RequireRole(customer), deps.Customers.Own)
	protected.Get("/customers/:id", RequireRole(admin, sales), deps.Customers.Detail)

	protected.Get("/products", deps.Products.List)
	protected.Get("/products/:id", deps.Products.GetByID)
	protected.Get("/categories", deps.Products.Categories)

	protected.Get("/orders", deps.Orders.List)
	protected.Post("/orders", deps.Orders.Create)
	protected.Get("/orders/:id", deps.Orders.Get)
	protected.Patch("/orders/:id/status", RequireRole(admin, sales), deps.Orders.UpdateStatus)
	protected.Get("/orders/:id/invoice.pdf", deps.Invoices.DownloadPDF)
	protected.Get("/invoices", RequireRole(customer), deps.Invoices.List)

	protected.Get("/users", RequireRole(admin), deps.Users.List)
	protected.Post("/users/:id/activate", RequireRole(admin), deps.Users.Activate)
	protected.Post("/users/:id/deactivate", RequireRole(admin), deps.Users.Deactivate)
	protected.Get("/team", RequireRole(admin, sales), deps.Users.Team)

	// Páginas del portal: identidad opcional, luego la política de cada ruta.
	portal := app.Group("/", LoadSession(deps.JWTSecret, deps.Sessions, log))
	portal.Get("/", Index)
	portal.Get(access.LoginPath, LoginPage)
	portal.Get("/signup", SignupPage)

	handlers := deps.Pages.Handlers()
	for _, route := range access.Catalog() {
		h, ok := handlers[route.Path]
		if !ok {
			h = titleOnly(route.Title)
		}
		portal.Get(route.Path, PageBoundary(log), PortalGuard(route.Policy), h)
	}
}

func titleOnly(title string) fiber.Handler {
	return func(c *fiber.Ctx) error { return page(c, title, nil) }
}
