package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/palletpro-api/internal/application/analytics"
	"github.com/jhoicas/palletpro-api/internal/application/dto"
	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/infrastructure/memory"
	"github.com/jhoicas/palletpro-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type mapCache struct {
	items map[string]*entity.SalesMetrics
	hits  int
}

func (c *mapCache) Get(key string) (*entity.SalesMetrics, bool) {
	m, ok := c.items[key]
	if ok {
		c.hits++
	}
	return m, ok
}

func (c *mapCache) Add(key string, m *entity.SalesMetrics) { c.items[key] = m }

type stubInsights struct {
	out []dto.InsightDTO
	err error
}

func (s stubInsights) GenerateInsights(context.Context, *dto.SalesMetricsDTO) ([]dto.InsightDTO, error) {
	return s.out, s.err
}

func newDashboard(t *testing.T, cache analytics.MetricsCache) *analytics.DashboardUseCase {
	t.Helper()
	store, err := memory.NewSeededStore(0)
	require.NoError(t, err)
	return analytics.NewDashboardUseCase(
		memory.NewAnalyticsRepository(store),
		memory.NewCustomerRepository(store),
		memory.NewOrderRepository(store),
		cache,
	)
}

func viewer(key string, role entity.Role) *entity.SessionUser {
	return &entity.SessionUser{ID: memory.DeterministicID("user", key), Role: role}
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard por rol
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_Admin(t *testing.T) {
	d, err := newDashboard(t, nil).GetDashboard(context.Background(), viewer("admin", entity.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, "admin", d.Role)
	require.NotNil(t, d.Metrics)
	assert.Equal(t, 42, d.Metrics.OrderCount, "48 pedidos menos 6 cancelados")
	assert.Equal(t, 7, d.Metrics.CustomerCount)
	assert.Len(t, d.Metrics.TopSellingProducts, 5)
	assert.Len(t, d.RecentOrders, 5)
	assert.Nil(t, d.Summary)
}

func TestDashboard_Vendedor(t *testing.T) {
	d, err := newDashboard(t, nil).GetDashboard(context.Background(), viewer("sales", entity.RoleSalesperson))
	require.NoError(t, err)
	assert.Equal(t, "salesperson", d.Role)
	assert.Equal(t, 24, d.Metrics.OrderCount)
	assert.Len(t, d.Commissions, 24)
	assert.Empty(t, d.RecentOrders)
}

func TestDashboard_Cliente(t *testing.T) {
	d, err := newDashboard(t, nil).GetDashboard(context.Background(), viewer("customer", entity.RoleCustomer))
	require.NoError(t, err)
	assert.Equal(t, "customer", d.Role)
	assert.Nil(t, d.Metrics)
	require.NotNil(t, d.Summary)
	assert.Equal(t, 6, d.Summary.TotalOrders)
	assert.Len(t, d.RecentOrders, 5)
}

func TestDashboard_SinSesion(t *testing.T) {
	_, err := newDashboard(t, nil).GetDashboard(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMetrics_UsaCache(t *testing.T) {
	cache := &mapCache{items: map[string]*entity.SalesMetrics{}}
	uc := newDashboard(t, cache)
	admin := viewer("admin", entity.RoleAdmin)

	first, err := uc.GetMetrics(context.Background(), admin)
	require.NoError(t, err)
	second, err := uc.GetMetrics(context.Background(), admin)
	require.NoError(t, err)

	assert.Equal(t, 1, cache.hits)
	assert.True(t, first.TotalSales.Equal(second.TotalSales))
	assert.Contains(t, cache.items, "all")
}

func TestMetrics_ClienteProhibido(t *testing.T) {
	_, err := newDashboard(t, nil).GetMetrics(context.Background(), viewer("customer", entity.RoleCustomer))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Insights
// ──────────────────────────────────────────────────────────────────────────────

func TestInsights_ProveedorPrincipal(t *testing.T) {
	primary := stubInsights{out: []dto.InsightDTO{{Type: "trend", Title: "Up"}}}
	uc := analytics.NewInsightsUseCase(newDashboard(t, nil), primary, nil, logger.Nop())
	out, err := uc.Generate(context.Background(), viewer("admin", entity.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, "Up", out[0].Title)
}

func TestInsights_RespaldoCuandoFalla(t *testing.T) {
	primary := stubInsights{err: errors.New("AI: ANTHROPIC_API_KEY no configurado")}
	fallback := stubInsights{out: []dto.InsightDTO{{Type: "risk", Title: "Respaldo"}}}
	uc := analytics.NewInsightsUseCase(newDashboard(t, nil), primary, fallback, logger.Nop())
	out, err := uc.Generate(context.Background(), viewer("admin", entity.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, "Respaldo", out[0].Title)
}

func TestInsights_SoloAdmin(t *testing.T) {
	uc := analytics.NewInsightsUseCase(newDashboard(t, nil), stubInsights{}, nil, logger.Nop())
	_, err := uc.Generate(context.Background(), viewer("sales", entity.RoleSalesperson))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
