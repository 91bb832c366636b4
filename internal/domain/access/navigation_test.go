package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/palletpro-api/internal/domain/access"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
)

// navHrefs extrae los href para comparar el orden.
func navHrefs(entries []access.NavEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Href)
	}
	return out
}

func TestNavigation_Admin(t *testing.T) {
	assert.Equal(t, []string{
		"/admin", "/admin/analytics", "/admin/salesteam", "/admin/users",
		"/admin/customers", "/admin/transactions", "/admin/notifications", "/admin/settings",
	}, navHrefs(access.Navigation(entity.RoleAdmin)))
}

func TestNavigation_Salesperson(t *testing.T) {
	assert.Equal(t, []string{
		"/sales", "/sales/customers", "/sales/transactions", "/sales/performance",
		"/sales/team", "/sales/notifications", "/sales/settings",
	}, navHrefs(access.Navigation(entity.RoleSalesperson)))
}

func TestNavigation_Customer(t *testing.T) {
	assert.Equal(t, []string{
		"/customer", "/customer/profile", "/customer/orders", "/customer/billing",
		"/customer/notifications", "/customer/support", "/customer/settings",
	}, navHrefs(access.Navigation(entity.RoleCustomer)))
}

func TestNavigation_RolDesconocido_SoloComunes(t *testing.T) {
	assert.Equal(t, []string{"/profile", "/notifications", "/settings"},
		navHrefs(access.Navigation(entity.Role("auditor"))))
}

// Cada entrada del menú debe ser una ruta que el propio rol puede ver.
func TestNavigation_CoherenteConCatalogo(t *testing.T) {
	for _, role := range entity.Roles() {
		for _, e := range access.Navigation(role) {
			r, ok := access.Lookup(e.Href)
			require.True(t, ok, "la entrada %s debe existir en el catálogo", e.Href)
			assert.True(t, r.Policy.Allows(role), "%s no puede ver %s", role, e.Href)
		}
	}
}

func TestNavigation_DevuelveCopia(t *testing.T) {
	nav := access.Navigation(entity.RoleAdmin)
	nav[0].Href = "/hacked"
	assert.Equal(t, "/admin", access.Navigation(entity.RoleAdmin)[0].Href)
}
