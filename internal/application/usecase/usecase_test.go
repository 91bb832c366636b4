package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/palletpro-api/internal/application/dto"
	"github.com/jhoicas/palletpro-api/internal/application/notification"
	"github.com/jhoicas/palletpro-api/internal/application/usecase"
	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/infrastructure/cache"
	"github.com/jhoicas/palletpro-api/internal/infrastructure/memory"
	"github.com/jhoicas/palletpro-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type env struct {
	store     *memory.Store
	metrics   *cache.MetricsCache
	notes     *memory.NotificationStore
	customers *usecase.CustomerUseCase
	products  *usecase.ProductUseCase
	orders    *usecase.OrderUseCase
	team      *usecase.TeamUseCase
	users     *usecase.UserUseCase
	prefs     *usecase.PreferencesUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store, err := memory.NewSeededStore(0)
	require.NoError(t, err)
	notes := memory.NewNotificationStore()
	userRepo := memory.NewUserRepository(store)
	customerRepo := memory.NewCustomerRepository(store)
	orderRepo := memory.NewOrderRepository(store)
	productRepo := memory.NewProductRepository(store)
	analyticsRepo := memory.NewAnalyticsRepository(store)
	metrics := cache.NewMetricsCache(8, time.Minute)
	return &env{
		store:     store,
		metrics:   metrics,
		notes:     notes,
		customers: usecase.NewCustomerUseCase(customerRepo, userRepo, orderRepo, analyticsRepo),
		products:  usecase.NewProductUseCase(productRepo),
		orders: usecase.NewOrderUseCase(orderRepo, customerRepo, productRepo, memory.NewTxRunner(store),
			notification.NewDispatcher(notes, logger.Nop()), metrics),
		team:  usecase.NewTeamUseCase(userRepo, analyticsRepo),
		users: usecase.NewUserUseCase(userRepo),
		prefs: usecase.NewPreferencesUseCase(memory.NewPreferenceStore()),
	}
}

func viewer(key string, role entity.Role) *entity.SessionUser {
	return &entity.SessionUser{ID: memory.DeterministicID("user", key), Role: role}
}

var (
	admin      = viewer("admin", entity.RoleAdmin)
	sales      = viewer("sales", entity.RoleSalesperson)
	sales2     = viewer("sales-2", entity.RoleSalesperson)
	customer   = viewer("customer", entity.RoleCustomer)
	umbrellaID = memory.DeterministicID("customer", "Umbrella Logistics")
	acmeID     = memory.DeterministicID("customer", "Acme Corporation")
)

func orderOf(t *testing.T, e *env, company string) dto.OrderRow {
	t.Helper()
	rows, err := e.orders.List(context.Background(), admin)
	require.NoError(t, err)
	for _, r := range rows {
		if r.Customer == company {
			return r
		}
	}
	t.Fatalf("sin pedidos para %s", company)
	return dto.OrderRow{}
}

func feedTitles(t *testing.T, e *env, userID string) []string {
	t.Helper()
	rows, err := notification.NewUseCase(e.notes).List(context.Background(), userID)
	require.NoError(t, err)
	var out []string
	for _, r := range rows {
		out = append(out, r.Title)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomers_AdminVeTodos(t *testing.T) {
	rows, err := newEnv(t).customers.List(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, rows, 8)
}

func TestCustomers_VendedorVeSoloAsignados(t *testing.T) {
	rows, err := newEnv(t).customers.List(context.Background(), sales)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	for _, r := range rows {
		assert.Equal(t, "Jane Sales", r.Salesperson)
	}
}

func TestCustomers_ClienteNoPuedeListar(t *testing.T) {
	_, err := newEnv(t).customers.List(context.Background(), customer)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = newEnv(t).customers.List(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCustomerDetail_VendedorAjenoProhibido(t *testing.T) {
	_, err := newEnv(t).customers.Detail(context.Background(), sales, umbrellaID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCustomerDetail_ResumenYPedidosRecientes(t *testing.T) {
	d, err := newEnv(t).customers.Detail(context.Background(), sales, acmeID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corporation", d.Company)
	assert.Equal(t, 6, d.Summary.TotalOrders)
	assert.Len(t, d.RecentOrders, 5)
	require.NotNil(t, d.Salesperson)
	assert.Equal(t, "Jane Sales", d.Salesperson.Name)
}

func TestCustomerDetail_Inexistente(t *testing.T) {
	_, err := newEnv(t).customers.Detail(context.Background(), admin, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerOwn_CuentaDelCliente(t *testing.T) {
	d, err := newEnv(t).customers.Own(context.Background(), customer)
	require.NoError(t, err)
	assert.Equal(t, acmeID, d.ID)
	assert.Len(t, d.ShippingAddresses, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_CostoOcultoParaClientes(t *testing.T) {
	e := newEnv(t)
	rows, err := e.products.List(context.Background(), customer, "")
	require.NoError(t, err)
	require.Len(t, rows, 50)
	for _, r := range rows {
		assert.Nil(t, r.Cost)
	}

	rows, err = e.products.List(context.Background(), sales, "")
	require.NoError(t, err)
	assert.NotNil(t, rows[0].Cost)
}

func TestProducts_FiltroPorCategoria(t *testing.T) {
	rows, err := newEnv(t).products.List(context.Background(), admin, "category-1")
	require.NoError(t, err)
	require.Len(t, rows, 10)
	for _, r := range rows {
		assert.Equal(t, "Wood Pallets", r.Category)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos
// ──────────────────────────────────────────────────────────────────────────────

func TestOrders_ListadoPorRol(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	all, err := e.orders.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 48)

	mine, err := e.orders.List(ctx, sales)
	require.NoError(t, err)
	assert.Len(t, mine, 24)

	own, err := e.orders.List(ctx, customer)
	require.NoError(t, err)
	require.Len(t, own, 6)
	for _, r := range own {
		assert.Equal(t, "Acme Corporation", r.Customer)
	}
}

func TestOrders_ClienteNoLeePedidoAjeno(t *testing.T) {
	e := newEnv(t)
	other := orderOf(t, e, "Umbrella Logistics")
	_, err := e.orders.Get(context.Background(), customer, other.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	own := orderOf(t, e, "Acme Corporation")
	d, err := e.orders.Get(context.Background(), customer, own.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, d.Items)
	assert.Empty(t, d.NextStatuses, "el cliente no ve transiciones")
}

func TestOrders_CrearConDescuentoYComision(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	analytics := memory.NewAnalyticsRepository(e.store)
	before, err := analytics.ListCommissions(ctx, sales.ID)
	require.NoError(t, err)

	d, err := e.orders.Create(ctx, customer, dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{{ProductID: "prod-1", Quantity: 25}},
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", d.Status)
	assert.Equal(t, 25, d.TotalPallets)
	assert.True(t, d.Subtotal.Equal(decimal.NewFromInt(6250)))
	assert.True(t, d.Total.Equal(decimal.RequireFromString("5781.25")))
	assert.True(t, d.Discount.Equal(decimal.RequireFromString("468.75")))
	assert.Contains(t, d.PONumber, "PO-")

	after, err := analytics.ListCommissions(ctx, sales.ID)
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)

	own, err := e.orders.List(ctx, customer)
	require.NoError(t, err)
	assert.Len(t, own, 7)

	assert.Contains(t, feedTitles(t, e, customer.ID), "Order placed")
	assert.Contains(t, feedTitles(t, e, sales.ID), "Order placed")
}

func TestOrders_CrearSinStock(t *testing.T) {
	_, err := newEnv(t).orders.Create(context.Background(), customer, dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{{ProductID: "prod-5", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestOrders_CrearValidaciones(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.orders.Create(ctx, customer, dto.CreateOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.orders.Create(ctx, customer, dto.CreateOrderRequest{Items: []dto.OrderLineRequest{{ProductID: "prod-1", Quantity: 0}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.orders.Create(ctx, customer, dto.CreateOrderRequest{Items: []dto.OrderLineRequest{{ProductID: "prod-999", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.orders.Create(ctx, sales, dto.CreateOrderRequest{
		CustomerID: umbrellaID, Items: []dto.OrderLineRequest{{ProductID: "prod-1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden, "cliente de otro vendedor")

	_, err = e.orders.Create(ctx, customer, dto.CreateOrderRequest{
		CustomerID: umbrellaID, Items: []dto.OrderLineRequest{{ProductID: "prod-1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden, "un cliente solo compra para su cuenta")
}

func TestOrders_ActualizarEstado(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	o := orderOf(t, e, "Initech")
	require.Equal(t, "processing", o.Status)

	_, err := e.orders.UpdateStatus(ctx, customer, o.ID, "shipped")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = e.orders.UpdateStatus(ctx, sales2, o.ID, "shipped")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = e.orders.UpdateStatus(ctx, sales, o.ID, "bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	d, err := e.orders.UpdateStatus(ctx, sales, o.ID, "shipped")
	require.NoError(t, err)
	assert.Equal(t, "shipped", d.Status)
	assert.Equal(t, []string{"delivered"}, d.NextStatuses)

	_, err = e.orders.UpdateStatus(ctx, admin, o.ID, "pending")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestOrders_EscriturasInvalidanMetricasCacheadas(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	cached := func() bool {
		_, ok := e.metrics.Get("global")
		return ok
	}

	e.metrics.Add("global", &entity.SalesMetrics{})
	_, err := e.orders.Create(ctx, customer, dto.CreateOrderRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, cached(), "un pedido rechazado no toca la caché")

	_, err = e.orders.Create(ctx, customer, dto.CreateOrderRequest{
		Items: []dto.OrderLineRequest{{ProductID: "prod-1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.False(t, cached(), "crear un pedido descarta las métricas")

	e.metrics.Add("global", &entity.SalesMetrics{})
	o := orderOf(t, e, "Initech")
	_, err = e.orders.UpdateStatus(ctx, sales, o.ID, "shipped")
	require.NoError(t, err)
	assert.False(t, cached(), "cambiar el estado descarta las métricas")
}

// ──────────────────────────────────────────────────────────────────────────────
// Equipo, usuarios y preferencias
// ──────────────────────────────────────────────────────────────────────────────

func TestTeam_MetricasPorVendedor(t *testing.T) {
	e := newEnv(t)
	rows, err := e.team.List(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Jane Sales", rows[0].Name)
	assert.Equal(t, 4, rows[0].CustomerCount)
	assert.Equal(t, 24, rows[0].OrderCount)
	assert.True(t, rows[0].TotalSales.IsPositive())
	assert.True(t, rows[0].Commissions.IsPositive())

	_, err = e.team.List(context.Background(), customer)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUsers_SoloAdmin(t *testing.T) {
	e := newEnv(t)
	rows, err := e.users.List(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, rows, 5)

	_, err = e.users.List(context.Background(), sales)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUsers_Activacion(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, err := e.users.SetActive(ctx, admin, admin.ID, false)
	assert.ErrorIs(t, err, domain.ErrConflict)

	u, err := e.users.SetActive(ctx, admin, sales2.ID, false)
	require.NoError(t, err)
	assert.False(t, u.IsActive)
}

func TestPreferences_PorDefectoYActualizacion(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p, err := e.prefs.Get(ctx, customer)
	require.NoError(t, err)
	assert.Equal(t, "medium", p.FontSize)
	assert.False(t, p.HighContrast)

	_, err = e.prefs.Update(ctx, customer, dto.PreferencesDTO{FontSize: "large", HighContrast: true})
	require.NoError(t, err)
	p, err = e.prefs.Get(ctx, customer)
	require.NoError(t, err)
	assert.Equal(t, "large", p.FontSize)
	assert.True(t, p.HighContrast)

	_, err = e.prefs.Update(ctx, customer, dto.PreferencesDTO{FontSize: "huge"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
