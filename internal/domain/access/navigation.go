package access

import "github.com/jhoicas/palletpro-api/internal/domain/entity"

// NavEntry elemento del menú lateral.
type NavEntry struct {
	Name string `json:"name"`
	Href string `json:"href"`
	Icon string `json:"icon"`
}

var commonNav = []NavEntry{
	{Name: "Profile", Href: "/profile", Icon: "user"},
	{Name: "Notifications", Href: "/notifications", Icon: "bell"},
	{Name: "Settings", Href: "/settings", Icon: "settings"},
}

// navigation menú lateral de cada portal.
var navigation = map[entity.Role][]NavEntry{
	entity.RoleAdmin: {
		{Name: "Dashboard", Href: "/admin", Icon: "layout-dashboard"},
		{Name: "Analytics", Href: "/admin/analytics", Icon: "bar-chart"},
		{Name: "Sales Team", Href: "/admin/salesteam", Icon: "users"},
		{Name: "Users", Href: "/admin/users", Icon: "users"},
		{Name: "Customers", Href: "/admin/customers", Icon: "users"},
		{Name: "Transactions", Href: "/admin/transactions", Icon: "receipt"},
		{Name: "Notifications", Href: "/admin/notifications", Icon: "bell"},
		{Name: "Settings", Href: "/admin/settings", Icon: "settings"},
	},
	entity.RoleSalesperson: {
		{Name: "Dashboard", Href: "/sales", Icon: "layout-dashboard"},
		{Name: "My Customers", Href: "/sales/customers", Icon: "users"},
		{Name: "Transactions", Href: "/sales/transactions", Icon: "receipt"},
		{Name: "Performance", Href: "/sales/performance", Icon: "line-chart"},
		{Name: "Team", Href: "/sales/team", Icon: "users"},
		{Name: "Notifications", Href: "/sales/notifications", Icon: "bell"},
		{Name: "Settings", Href: "/sales/settings", Icon: "settings"},
	},
	entity.RoleCustomer: {
		{Name: "Dashboard", Href: "/customer", Icon: "layout-dashboard"},
		{Name: "My Profile", Href: "/customer/profile", Icon: "user"},
		{Name: "My Orders", Href: "/customer/orders", Icon: "package"},
		{Name: "Billing", Href: "/customer/billing", Icon: "credit-card"},
		{Name: "Notifications", Href: "/customer/notifications", Icon: "bell"},
		{Name: "Support", Href: "/customer/support", Icon: "help-circle"},
		{Name: "Settings", Href: "/customer/settings", Icon: "settings"},
	},
}

// Navigation devuelve el menú lateral del rol. Un rol desconocido recibe solo las entradas comunes.
func Navigation(role entity.Role) []NavEntry {
	entries, ok := navigation[role]
	if !ok {
		entries = commonNav
	}
	out := make([]NavEntry, len(entries))
	copy(out, entries)
	return out
}
