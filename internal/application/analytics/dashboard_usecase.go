// Package analytics contiene los casos de uso del dashboard de cada portal,
// las métricas de ventas y los insights generados sobre ellas.
package analytics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/palletpro-api/internal/application/dto"
	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
)

const dashboardRecentOrders = 5 // pedidos en el widget del dashboard

// MetricsCache caché de métricas por alcance.
type MetricsCache interface {
	Get(key string) (*entity.SalesMetrics, bool)
	Add(key string, m *entity.SalesMetrics)
}

// DashboardUseCase arma el dashboard de cada rol.
//
// Fuente de datos: AnalyticsRepository (consultas read-only) más el listado de pedidos.
// Las dos consultas de cada rol corren en paralelo.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	customerRepo  repository.CustomerRepository
	orderRepo     repository.OrderRepository
	cache         MetricsCache
	tracer        trace.Tracer
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	cache MetricsCache,
) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		customerRepo:  customerRepo,
		orderRepo:     orderRepo,
		cache:         cache,
		tracer:        otel.Tracer("palletpro/analytics"),
	}
}

// GetDashboard construye el DashboardDTO del rol de la sesión:
//   - admin: métricas globales + pedidos recientes
//   - salesperson: métricas de sus clientes + comisiones
//   - customer: resumen de compras + pedidos recientes
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, viewer *entity.SessionUser) (*dto.DashboardDTO, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthorized
	}
	ctx, span := uc.tracer.Start(ctx, "analytics.GetDashboard",
		trace.WithAttributes(attribute.String("role", string(viewer.Role))))
	defer span.End()

	switch viewer.Role {
	case entity.RoleAdmin:
		return uc.adminDashboard(ctx)
	case entity.RoleSalesperson:
		return uc.salesDashboard(ctx, viewer.ID)
	case entity.RoleCustomer:
		return uc.customerDashboard(ctx, viewer.ID)
	}
	return nil, domain.ErrForbidden
}

// GetMetrics KPIs para las páginas de analítica y desempeño.
func (uc *DashboardUseCase) GetMetrics(ctx context.Context, viewer *entity.SessionUser) (*dto.SalesMetricsDTO, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthorized
	}
	var scope entity.MetricsScope
	switch viewer.Role {
	case entity.RoleAdmin:
	case entity.RoleSalesperson:
		scope.SalespersonID = viewer.ID
	default:
		return nil, domain.ErrForbidden
	}
	m, err := uc.metrics(ctx, scope)
	if err != nil {
		return nil, err
	}
	return ToSalesMetricsDTO(m), nil
}

// ── Goroutines para paralelizar las consultas de cada rol ─────────────────────

type metricsResult struct {
	metrics *entity.SalesMetrics
	err     error
}

type ordersResult struct {
	orders []*entity.Order
	err    error
}

func (uc *DashboardUseCase) adminDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	metricsCh := make(chan metricsResult, 1)
	ordersCh := make(chan ordersResult, 1)

	go func() {
		m, err := uc.metrics(ctx, entity.MetricsScope{})
		metricsCh <- metricsResult{m, err}
	}()
	go func() {
		list, err := uc.orderRepo.List(ctx, repository.OrderFilter{Limit: dashboardRecentOrders})
		ordersCh <- ordersResult{list, err}
	}()

	metrics := <-metricsCh
	orders := <-ordersCh
	if metrics.err != nil {
		return nil, fmt.Errorf("dashboard: métricas globales: %w", metrics.err)
	}
	if orders.err != nil {
		return nil, fmt.Errorf("dashboard: pedidos recientes: %w", orders.err)
	}
	return &dto.DashboardDTO{
		Role:         string(entity.RoleAdmin),
		Metrics:      ToSalesMetricsDTO(metrics.metrics),
		RecentOrders: dto.NewOrderRows(orders.orders),
	}, nil
}

func (uc *DashboardUseCase) salesDashboard(ctx context.Context, salespersonID string) (*dto.DashboardDTO, error) {
	type commissionsResult struct {
		list []*entity.Commission
		err  error
	}
	metricsCh := make(chan metricsResult, 1)
	commCh := make(chan commissionsResult, 1)

	go func() {
		m, err := uc.metrics(ctx, entity.MetricsScope{SalespersonID: salespersonID})
		metricsCh <- metricsResult{m, err}
	}()
	go func() {
		list, err := uc.analyticsRepo.ListCommissions(ctx, salespersonID)
		commCh <- commissionsResult{list, err}
	}()

	metrics := <-metricsCh
	comm := <-commCh
	if metrics.err != nil {
		return nil, fmt.Errorf("dashboard: métricas del vendedor: %w", metrics.err)
	}
	if comm.err != nil {
		return nil, fmt.Errorf("dashboard: comisiones: %w", comm.err)
	}
	rows := make([]dto.CommissionRow, 0, len(comm.list))
	for _, c := range comm.list {
		rows = append(rows, dto.CommissionRow{
			ID:         c.ID,
			OrderID:    c.OrderID,
			Percentage: c.Percentage,
			Amount:     c.Amount.Round(2),
			Paid:       c.IsPaid,
		})
	}
	return &dto.DashboardDTO{
		Role:        string(entity.RoleSalesperson),
		Metrics:     ToSalesMetricsDTO(metrics.metrics),
		Commissions: rows,
	}, nil
}

func (uc *DashboardUseCase) customerDashboard(ctx context.Context, userID string) (*dto.DashboardDTO, error) {
	customer, err := uc.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: cuenta del cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	type summaryResult struct {
		summary *entity.CustomerSummary
		err     error
	}
	summaryCh := make(chan summaryResult, 1)
	ordersCh := make(chan ordersResult, 1)

	go func() {
		s, err := uc.analyticsRepo.GetCustomerSummary(ctx, customer.ID)
		summaryCh <- summaryResult{s, err}
	}()
	go func() {
		list, err := uc.orderRepo.List(ctx, repository.OrderFilter{CustomerID: customer.ID, Limit: dashboardRecentOrders})
		ordersCh <- ordersResult{list, err}
	}()

	summary := <-summaryCh
	orders := <-ordersCh
	if summary.err != nil {
		return nil, fmt.Errorf("dashboard: resumen del cliente: %w", summary.err)
	}
	if orders.err != nil {
		return nil, fmt.Errorf("dashboard: pedidos recientes: %w", orders.err)
	}
	s := toSummaryDTO(summary.summary)
	return &dto.DashboardDTO{
		Role:         string(entity.RoleCustomer),
		Summary:      &s,
		RecentOrders: dto.NewOrderRows(orders.orders),
	}, nil
}

// metrics consulta el repositorio pasando por la caché.
func (uc *DashboardUseCase) metrics(ctx context.Context, scope entity.MetricsScope) (*entity.SalesMetrics, error) {
	key := scope.Key()
	if uc.cache != nil {
		if m, ok := uc.cache.Get(key); ok {
			return m, nil
		}
	}
	m, err := uc.analyticsRepo.GetSalesMetrics(ctx, scope)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.Add(key, m)
	}
	return m, nil
}

// ToSalesMetricsDTO proyecta las métricas redondeando importes a 2 decimales.
func ToSalesMetricsDTO(m *entity.SalesMetrics) *dto.SalesMetricsDTO {
	if m == nil {
		return nil
	}
	out := &dto.SalesMetricsDTO{
		TotalSales:         m.TotalSales.Round(2),
		TotalCommissions:   m.TotalCommissions.Round(2),
		CustomerCount:      m.CustomerCount,
		OrderCount:         m.OrderCount,
		AverageOrderValue:  m.AverageOrderValue.Round(2),
		TopSellingProducts: make([]dto.TopProductDTO, 0, len(m.TopSellingProducts)),
		MonthlySales:       make([]dto.MonthlySalesDTO, 0, len(m.MonthlySales)),
	}
	for _, p := range m.TopSellingProducts {
		out.TopSellingProducts = append(out.TopSellingProducts, dto.TopProductDTO{
			Product: p.Product, Quantity: p.Quantity, Revenue: p.Revenue.Round(2),
		})
	}
	for _, ms := range m.MonthlySales {
		out.MonthlySales = append(out.MonthlySales, dto.MonthlySalesDTO{Month: ms.Month, Sales: ms.Sales.Round(2)})
	}
	return out
}

func toSummaryDTO(s *entity.CustomerSummary) dto.CustomerSummaryDTO {
	if s == nil {
		return dto.CustomerSummaryDTO{}
	}
	return dto.CustomerSummaryDTO{
		TotalOrders:       s.TotalOrders,
		TotalSpent:        s.TotalSpent.Round(2),
		AverageOrderValue: s.AverageOrderValue.Round(2),
		LastOrderDate:     s.LastOrderDate,
	}
}
