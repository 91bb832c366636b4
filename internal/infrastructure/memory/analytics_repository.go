package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

const topProductsLimit = 5

// AnalyticsRepo agrega métricas recorriendo los pedidos en memoria.
type AnalyticsRepo struct{ s *Store }

// NewAnalyticsRepository construye el repositorio sobre el almacén.
func NewAnalyticsRepository(s *Store) *AnalyticsRepo { return &AnalyticsRepo{s: s} }

// GetSalesMetrics KPIs del alcance; los pedidos cancelados no cuentan.
func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, scope entity.MetricsScope) (*entity.SalesMetrics, error) {
	if err := r.s.wait(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m := &entity.SalesMetrics{TotalSales: decimal.Zero, TotalCommissions: decimal.Zero}
	customers := make(map[string]struct{})
	type agg struct {
		qty     int
		revenue decimal.Decimal
	}
	products := make(map[string]*agg)
	months := make(map[time.Time]decimal.Decimal)

	for _, o := range r.s.orders {
		if o.Status == entity.OrderCancelled {
			continue
		}
		if scope.SalespersonID != "" && o.SalespersonID != scope.SalespersonID {
			continue
		}
		m.OrderCount++
		m.TotalSales = m.TotalSales.Add(o.Total)
		customers[o.CustomerID] = struct{}{}
		for _, it := range o.Items {
			a, ok := products[it.ProductName]
			if !ok {
				a = &agg{revenue: decimal.Zero}
				products[it.ProductName] = a
			}
			a.qty += it.Quantity
			a.revenue = a.revenue.Add(it.Subtotal)
		}
		month := time.Date(o.CreatedAt.Year(), o.CreatedAt.Month(), 1, 0, 0, 0, 0, time.UTC)
		months[month] = months[month].Add(o.Total)
	}
	m.CustomerCount = len(customers)
	if m.OrderCount > 0 {
		m.AverageOrderValue = m.TotalSales.Div(decimal.NewFromInt(int64(m.OrderCount))).Round(2)
	}

	for _, c := range r.s.commissions {
		if scope.SalespersonID == "" || c.SalespersonID == scope.SalespersonID {
			m.TotalCommissions = m.TotalCommissions.Add(c.Amount)
		}
	}

	for name, a := range products {
		m.TopSellingProducts = append(m.TopSellingProducts, entity.TopProduct{Product: name, Quantity: a.qty, Revenue: a.revenue})
	}
	sort.Slice(m.TopSellingProducts, func(i, j int) bool {
		a, b := m.TopSellingProducts[i], m.TopSellingProducts[j]
		if c := a.Revenue.Cmp(b.Revenue); c != 0 {
			return c > 0
		}
		return a.Product < b.Product
	})
	if len(m.TopSellingProducts) > topProductsLimit {
		m.TopSellingProducts = m.TopSellingProducts[:topProductsLimit]
	}

	keys := make([]time.Time, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	if len(keys) > 12 {
		keys = keys[len(keys)-12:]
	}
	for _, k := range keys {
		m.MonthlySales = append(m.MonthlySales, entity.MonthlySales{Month: k.Format("Jan"), Sales: months[k]})
	}
	return m, nil
}

// GetCustomerSummary resumen de compras del cliente.
func (r *AnalyticsRepo) GetCustomerSummary(ctx context.Context, customerID string) (*entity.CustomerSummary, error) {
	if err := r.s.wait(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	s := &entity.CustomerSummary{TotalSpent: decimal.Zero}
	for _, o := range r.s.orders {
		if o.CustomerID != customerID || o.Status == entity.OrderCancelled {
			continue
		}
		s.TotalOrders++
		s.TotalSpent = s.TotalSpent.Add(o.Total)
		if s.LastOrderDate == nil || o.CreatedAt.After(*s.LastOrderDate) {
			t := o.CreatedAt
			s.LastOrderDate = &t
		}
	}
	if s.TotalOrders > 0 {
		s.AverageOrderValue = s.TotalSpent.Div(decimal.NewFromInt(int64(s.TotalOrders))).Round(2)
	}
	return s, nil
}

// ListCommissions comisiones del vendedor, más recientes primero.
func (r *AnalyticsRepo) ListCommissions(ctx context.Context, salespersonID string) ([]*entity.Commission, error) {
	if err := r.s.wait(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Commission
	for _, c := range r.s.commissions {
		if c.SalespersonID == salespersonID {
			cp := *c
			list = append(list, &cp)
		}
	}
	created := func(c *entity.Commission) time.Time {
		if o, ok := r.s.orders[c.OrderID]; ok {
			return o.CreatedAt
		}
		return time.Time{}
	}
	sort.SliceStable(list, func(i, j int) bool { return created(list[i]).After(created(list[j])) })
	return list, nil
}
