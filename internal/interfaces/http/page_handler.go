package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	appanalytics "github.com/jhoicas/palletpro-api/internal/application/analytics"
	"github.com/jhoicas/palletpro-api/internal/application/auth"
	"github.com/jhoicas/palletpro-api/internal/application/billing"
	"github.com/jhoicas/palletpro-api/internal/application/dto"
	"github.com/jhoicas/palletpro-api/internal/application/fetch"
	"github.com/jhoicas/palletpro-api/internal/application/notification"
	"github.com/jhoicas/palletpro-api/internal/application/usecase"
	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/domain/access"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/table"
)

// PageDeps casos de uso que alimentan las páginas del portal.
type PageDeps struct {
	Auth          *auth.AuthUseCase
	Customers     *usecase.CustomerUseCase
	Orders        *usecase.OrderUseCase
	Products      *usecase.ProductUseCase
	Users         *usecase.UserUseCase
	Team          *usecase.TeamUseCase
	Preferences   *usecase.PreferencesUseCase
	Dashboard     *appanalytics.DashboardUseCase
	Insights      *appanalytics.InsightsUseCase
	Invoices      *billing.InvoiceUseCase
	Notifications *notification.UseCase
	Tables        TableSettings
	RenderBudget  time.Duration
	Latest        *fetch.Latest
}

// PageHandler arma el documento de cada página del portal.
type PageHandler struct {
	deps   PageDeps
	tracer trace.Tracer
}

// NewPageHandler construye el handler de páginas.
func NewPageHandler(deps PageDeps) *PageHandler {
	if deps.Latest == nil {
		deps.Latest = fetch.NewLatest()
	}
	return &PageHandler{deps: deps, tracer: otel.Tracer("palletpro/pages")}
}

// Section contenido no tabular de una página, con su propio estado de carga.
type Section[T any] struct {
	State string `json:"state"`
	Data  T      `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// load ejecuta una carga de página: solo la más reciente por sesión y recurso
// publica su resultado, y nunca espera más que el presupuesto de render.
func load[T any](c *fiber.Ctx, h *PageHandler, resource string, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, span := h.tracer.Start(c.UserContext(), "page."+resource)
	defer span.End()
	key := GetSessionID(c) + ":" + resource
	v, err := fetch.Within(ctx, h.deps.RenderBudget, func(ctx context.Context) (T, error) {
		return fetch.Run(ctx, h.deps.Latest, key, fn)
	})
	if err != nil {
		span.RecordError(err)
	}
	return v, err
}

func pending(err error) bool {
	return errors.Is(err, fetch.ErrBudgetExceeded) || errors.Is(err, fetch.ErrSuperseded)
}

// tableView carga las filas y renderiza la tabla con el estado leído de la query.
// prefix permite dos tablas independientes en la misma página.
func tableView[T any](c *fiber.Ctx, h *PageHandler, tbl *table.Table[T], resource, prefix string, fn func(ctx context.Context) ([]T, error)) table.View {
	get := c.Query
	if prefix != "" {
		get = func(k string, _ ...string) string { return c.Query(prefix + k) }
	}
	vs := tbl.Sanitize(table.ParseQuery(func(k string) string { return get(k) }, h.deps.Tables.PerPage))

	rows, err := load(c, h, resource, fn)
	var data table.Data[T]
	switch {
	case pending(err):
		data = table.Loading[T]()
	case err != nil:
		data = table.Failed[T](err)
	default:
		data = table.Loaded(rows)
	}
	return tbl.Render(data, vs)
}

func section[T any](c *fiber.Ctx, h *PageHandler, resource string, fn func(ctx context.Context) (T, error)) Section[T] {
	v, err := load(c, h, resource, fn)
	switch {
	case pending(err):
		return Section[T]{State: PageLoading}
	case err != nil:
		return Section[T]{State: PageError, Error: err.Error()}
	}
	return Section[T]{State: PageReady, Data: v}
}

// detailError respuesta de una página de detalle cuyo recurso no puede mostrarse.
func detailError(c *fiber.Ctx, err error) error {
	if pending(err) {
		c.Set(fiber.HeaderRetryAfter, "1")
		return c.Status(fiber.StatusServiceUnavailable).JSON(PageDocument{State: PageLoading, Path: c.Path(), Chrome: newChrome(Viewer(c))})
	}
	if errors.Is(err, domain.ErrForbidden) {
		return c.Redirect(access.UnauthorizedPath, fiber.StatusFound)
	}
	status, _ := errorStatus(err)
	title := "Something went wrong"
	if errors.Is(err, domain.ErrNotFound) {
		title = "Not found"
	}
	return c.Status(status).JSON(PageDocument{
		State:  PageError,
		Path:   c.Path(),
		Chrome: newChrome(Viewer(c)),
		Fallback: &Fallback{
			Title:     title,
			Message:   err.Error(),
			RetryHref: c.OriginalURL(),
		},
	})
}

// Handlers devuelve el handler de cada ruta del catálogo de acceso.
func (h *PageHandler) Handlers() map[string]fiber.Handler {
	return map[string]fiber.Handler{
		"/unauthorized":  h.Unauthorized,
		"/profile":       h.Profile,
		"/notifications": h.NotificationsPage,
		"/settings":      h.Settings,

		"/admin":               h.Dashboard,
		"/admin/analytics":     h.Analytics,
		"/admin/salesteam":     h.Team,
		"/admin/users":         h.Users,
		"/admin/customers":     h.CustomerList("/admin/customers/"),
		"/admin/customers/:id": h.CustomerDetail,
		"/admin/transactions":  h.Transactions,
		"/admin/notifications": h.NotificationsPage,
		"/admin/settings":      h.Settings,

		"/sales":               h.Dashboard,
		"/sales/customers":     h.CustomerList("/sales/customers/"),
		"/sales/customers/:id": h.CustomerDetail,
		"/sales/transactions":  h.Transactions,
		"/sales/performance":   h.Performance,
		"/sales/team":          h.Team,
		"/sales/notifications": h.NotificationsPage,
		"/sales/settings":      h.Settings,

		"/customer":               h.Dashboard,
		"/customer/profile":       h.CustomerProfile,
		"/customer/orders":        h.CustomerOrders,
		"/customer/orders/:id":    h.OrderDetail,
		"/customer/billing":       h.Billing,
		"/customer/support":       h.Support,
		"/customer/notifications": h.NotificationsPage,
		"/customer/settings":      h.Settings,
	}
}

func routeTitle(c *fiber.Ctx) string {
	if r, ok := access.Lookup(c.Path()); ok {
		return r.Title
	}
	return ""
}

// ── páginas comunes ─────────────────────────────────────────────

type permittedRoute struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

// Unauthorized explica el rechazo y lista las páginas que el rol sí puede ver.
func (h *PageHandler) Unauthorized(c *fiber.Ctx) error {
	viewer := Viewer(c)
	routes := access.PermittedRoutes(viewer.Role)
	permitted := make([]permittedRoute, 0, len(routes))
	for _, r := range routes {
		permitted = append(permitted, permittedRoute{Path: r.Path, Title: r.Title})
	}
	return page(c, routeTitle(c), fiber.Map{
		"message":   "You don't have permission to access this page.",
		"role":      viewer.Role,
		"home":      access.HomeFor(viewer.Role),
		"permitted": permitted,
	})
}

func (h *PageHandler) Profile(c *fiber.Ctx) error {
	me, err := load(c, h, "profile", func(ctx context.Context) (*dto.UserResponse, error) {
		return h.deps.Auth.Me(ctx, GetSessionID(c))
	})
	if err != nil {
		return detailError(c, err)
	}
	return page(c, routeTitle(c), fiber.Map{"user": me})
}

func (h *PageHandler) NotificationsPage(c *fiber.Ctx) error {
	view := tableView(c, h, notificationTable(h.deps.Tables), "notifications", "", func(ctx context.Context) ([]dto.NotificationRow, error) {
		return h.deps.Notifications.List(ctx, GetUserID(c))
	})
	return page(c, routeTitle(c), fiber.Map{"notifications": view})
}

func (h *PageHandler) Settings(c *fiber.Ctx) error {
	prefs := section(c, h, "preferences", func(ctx context.Context) (*dto.PreferencesDTO, error) {
		return h.deps.Preferences.Get(ctx, Viewer(c))
	})
	return page(c, routeTitle(c), fiber.Map{"preferences": prefs})
}

// ── dashboards ──────────────────────────────────────────────────

// Dashboard página de inicio de cada portal; el contenido depende del rol.
func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	viewer := Viewer(c)
	dash, err := load(c, h, "dashboard", func(ctx context.Context) (*dto.DashboardDTO, error) {
		return h.deps.Dashboard.GetDashboard(ctx, viewer)
	})
	if err != nil {
		return detailError(c, err)
	}
	recent := orderTable(h.deps.Tables, "Recent Orders", orderLinkPrefix(viewer.Role)).
		Render(table.Loaded(dash.RecentOrders), table.NewViewState(h.deps.Tables.PerPage))
	content := fiber.Map{"dashboard": dash, "recent_orders": recent}
	if len(dash.Commissions) > 0 {
		content["commissions"] = commissionTable(h.deps.Tables).
			Render(table.Loaded(dash.Commissions), table.NewViewState(h.deps.Tables.PerPage))
	}
	return page(c, routeTitle(c), content)
}

func (h *PageHandler) Analytics(c *fiber.Ctx) error {
	viewer := Viewer(c)
	metrics := section(c, h, "metrics", func(ctx context.Context) (*dto.SalesMetricsDTO, error) {
		return h.deps.Dashboard.GetMetrics(ctx, viewer)
	})
	insights := section(c, h, "insights", func(ctx context.Context) ([]dto.InsightDTO, error) {
		return h.deps.Insights.Generate(ctx, viewer)
	})
	return page(c, routeTitle(c), fiber.Map{"metrics": metrics, "insights": insights})
}

func (h *PageHandler) Performance(c *fiber.Ctx) error {
	viewer := Viewer(c)
	view := tableView(c, h, commissionTable(h.deps.Tables), "commissions", "", func(ctx context.Context) ([]dto.CommissionRow, error) {
		dash, err := h.deps.Dashboard.GetDashboard(ctx, viewer)
		if err != nil {
			return nil, err
		}
		return dash.Commissions, nil
	})
	metrics := section(c, h, "metrics", func(ctx context.Context) (*dto.SalesMetricsDTO, error) {
		return h.deps.Dashboard.GetMetrics(ctx, viewer)
	})
	return page(c, routeTitle(c), fiber.Map{"metrics": metrics, "commissions": view})
}

// ── tablas de gestión ───────────────────────────────────────────

func (h *PageHandler) Team(c *fiber.Ctx) error {
	view := tableView(c, h, teamTable(h.deps.Tables), "team", "", func(ctx context.Context) ([]dto.TeamMemberRow, error) {
		return h.deps.Team.List(ctx, Viewer(c))
	})
	return page(c, routeTitle(c), fiber.Map{"team": view})
}

func (h *PageHandler) Users(c *fiber.Ctx) error {
	view := tableView(c, h, userTable(h.deps.Tables), "users", "", func(ctx context.Context) ([]dto.UserRow, error) {
		return h.deps.Users.List(ctx, Viewer(c))
	})
	return page(c, routeTitle(c), fiber.Map{"users": view})
}

// CustomerList tabla de clientes; cada fila enlaza a linkPrefix+id.
func (h *PageHandler) CustomerList(linkPrefix string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view := tableView(c, h, customerTable(h.deps.Tables, linkPrefix), "customers", "", func(ctx context.Context) ([]dto.CustomerRow, error) {
			return h.deps.Customers.List(ctx, Viewer(c))
		})
		return page(c, routeTitle(c), fiber.Map{"customers": view})
	}
}

func (h *PageHandler) CustomerDetail(c *fiber.Ctx) error {
	id := c.Params("id")
	detail, err := load(c, h, "customer:"+id, func(ctx context.Context) (*dto.CustomerDetailResponse, error) {
		return h.deps.Customers.Detail(ctx, Viewer(c), id)
	})
	if err != nil {
		return detailError(c, err)
	}
	orders := orderTable(h.deps.Tables, "Recent Orders", "").
		Render(table.Loaded(detail.RecentOrders), table.NewViewState(h.deps.Tables.PerPage))
	return page(c, detail.Company, fiber.Map{"customer": detail, "orders": orders})
}

func (h *PageHandler) Transactions(c *fiber.Ctx) error {
	view := tableView(c, h, orderTable(h.deps.Tables, "Transactions", ""), "orders", "", func(ctx context.Context) ([]dto.OrderRow, error) {
		return h.deps.Orders.List(ctx, Viewer(c))
	})
	return page(c, routeTitle(c), fiber.Map{"orders": view})
}

// ── portal del cliente ──────────────────────────────────────────

func (h *PageHandler) CustomerProfile(c *fiber.Ctx) error {
	account, err := load(c, h, "account", func(ctx context.Context) (*dto.CustomerDetailResponse, error) {
		return h.deps.Customers.Own(ctx, Viewer(c))
	})
	if err != nil {
		return detailError(c, err)
	}
	return page(c, routeTitle(c), fiber.Map{"account": account})
}

// CustomerOrders pedidos del cliente y el catálogo para un pedido nuevo.
// La tabla del catálogo lee sus parámetros con el prefijo "catalog_".
func (h *PageHandler) CustomerOrders(c *fiber.Ctx) error {
	viewer := Viewer(c)
	orders := tableView(c, h, orderTable(h.deps.Tables, "My Orders", "/customer/orders/"), "orders", "", func(ctx context.Context) ([]dto.OrderRow, error) {
		return h.deps.Orders.List(ctx, viewer)
	})
	catalog := tableView(c, h, productTable(h.deps.Tables), "catalog", "catalog_", func(ctx context.Context) ([]dto.ProductRow, error) {
		return h.deps.Products.List(ctx, viewer, c.Query("category"))
	})
	return page(c, routeTitle(c), fiber.Map{"orders": orders, "catalog": catalog})
}

func (h *PageHandler) OrderDetail(c *fiber.Ctx) error {
	id := c.Params("id")
	order, err := load(c, h, "order:"+id, func(ctx context.Context) (*dto.OrderDetailResponse, error) {
		return h.deps.Orders.Get(ctx, Viewer(c), id)
	})
	if err != nil {
		return detailError(c, err)
	}
	return page(c, "Order "+order.PONumber, fiber.Map{
		"order":       order,
		"invoice_pdf": "/api/orders/" + order.ID + "/invoice.pdf",
	})
}

func (h *PageHandler) Billing(c *fiber.Ctx) error {
	view := tableView(c, h, invoiceTable(h.deps.Tables), "invoices", "", func(ctx context.Context) ([]dto.InvoiceRow, error) {
		return h.deps.Invoices.List(ctx, Viewer(c))
	})
	return page(c, routeTitle(c), fiber.Map{"invoices": view})
}

type supportChannel struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Hours   string `json:"hours"`
}

type faqEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

var supportChannels = []supportChannel{
	{Name: "Phone", Contact: "+1 (800) 555-0199", Hours: "Mon-Fri 8:00-18:00"},
	{Name: "Email", Contact: "support@palletpro.example", Hours: "Replies within 1 business day"},
}

var supportFAQ = []faqEntry{
	{Question: "How are volume discounts applied?", Answer: "Orders of 10+ pallets get 5%, 25+ get 7.5% and 50+ get 10% off the unit price."},
	{Question: "Can I change a shipping address after ordering?", Answer: "Contact your sales representative while the order is still pending."},
	{Question: "Where can I download invoices?", Answer: "Every non-cancelled order has a PDF invoice on the Billing page."},
}

func (h *PageHandler) Support(c *fiber.Ctx) error {
	return page(c, routeTitle(c), fiber.Map{"channels": supportChannels, "faq": supportFAQ})
}

func orderLinkPrefix(role entity.Role) string {
	if role == entity.RoleCustomer {
		return "/customer/orders/"
	}
	return ""
}
