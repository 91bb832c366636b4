package access

import (
	"strings"

	"github.com/jhoicas/palletpro-api/internal/domain/entity"
)

// Route página del portal y su política de acceso.
type Route struct {
	Path   string // patrón estilo fiber (":id" para parámetros)
	Title  string
	Policy Policy
}

// Matches informa si path concreto corresponde al patrón de la ruta.
func (r Route) Matches(path string) bool {
	want := splitPath(r.Path)
	got := splitPath(path)
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if strings.HasPrefix(want[i], ":") {
			if got[i] == "" {
				return false
			}
			continue
		}
		if want[i] != got[i] {
			return false
		}
	}
	return true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

var (
	adminOnly    = Only(entity.RoleAdmin)
	salesOnly    = Only(entity.RoleSalesperson)
	customerOnly = Only(entity.RoleCustomer)
)

// catalog todas las páginas protegidas del portal, en orden de presentación.
var catalog = []Route{
	{Path: "/unauthorized", Title: "Access Denied", Policy: AnyRole()},
	{Path: "/profile", Title: "Profile", Policy: AnyRole()},
	{Path: "/notifications", Title: "Notifications", Policy: AnyRole()},
	{Path: "/settings", Title: "Settings", Policy: AnyRole()},

	{Path: "/admin", Title: "Admin Dashboard", Policy: adminOnly},
	{Path: "/admin/analytics", Title: "Sales Analytics", Policy: adminOnly},
	{Path: "/admin/salesteam", Title: "Sales Team", Policy: adminOnly},
	{Path: "/admin/users", Title: "Users Management", Policy: adminOnly},
	{Path: "/admin/customers", Title: "Customers", Policy: adminOnly},
	{Path: "/admin/customers/:id", Title: "Customer Detail", Policy: adminOnly},
	{Path: "/admin/transactions", Title: "Transactions", Policy: adminOnly},
	{Path: "/admin/notifications", Title: "Notifications", Policy: adminOnly},
	{Path: "/admin/settings", Title: "Settings", Policy: adminOnly},

	{Path: "/sales", Title: "Sales Dashboard", Policy: salesOnly},
	{Path: "/sales/customers", Title: "My Customers", Policy: salesOnly},
	{Path: "/sales/customers/:id", Title: "Customer Detail", Policy: salesOnly},
	{Path: "/sales/transactions", Title: "Transactions", Policy: salesOnly},
	{Path: "/sales/performance", Title: "Performance", Policy: salesOnly},
	{Path: "/sales/team", Title: "Team", Policy: salesOnly},
	{Path: "/sales/notifications", Title: "Notifications", Policy: salesOnly},
	{Path: "/sales/settings", Title: "Settings", Policy: salesOnly},

	{Path: "/customer", Title: "Customer Dashboard", Policy: customerOnly},
	{Path: "/customer/profile", Title: "My Profile", Policy: customerOnly},
	{Path: "/customer/orders", Title: "My Orders", Policy: customerOnly},
	{Path: "/customer/orders/:id", Title: "Order Detail", Policy: customerOnly},
	{Path: "/customer/billing", Title: "Billing", Policy: customerOnly},
	{Path: "/customer/support", Title: "Support", Policy: customerOnly},
	{Path: "/customer/notifications", Title: "Notifications", Policy: customerOnly},
	{Path: "/customer/settings", Title: "Settings", Policy: customerOnly},
}

// Catalog devuelve una copia del catálogo de rutas protegidas.
func Catalog() []Route {
	out := make([]Route, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup busca la ruta del catálogo que corresponde a path.
func Lookup(path string) (Route, bool) {
	for _, r := range catalog {
		if r.Matches(path) {
			return r, true
		}
	}
	return Route{}, false
}

// PermittedRoutes rutas del catálogo visibles para el rol (sin rutas parametrizadas).
func PermittedRoutes(role entity.Role) []Route {
	var out []Route
	for _, r := range catalog {
		if strings.Contains(r.Path, ":") {
			continue
		}
		if r.Policy.Allows(role) {
			out = append(out, r)
		}
	}
	return out
}

// HomeFor devuelve el dashboard de cada rol.
func HomeFor(role entity.Role) string {
	switch role {
	case entity.RoleAdmin:
		return "/admin"
	case entity.RoleSalesperson:
		return "/sales"
	case entity.RoleCustomer:
		return "/customer"
	}
	return "/profile"
}
