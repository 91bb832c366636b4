package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// topProductsLimit productos en el ranking del dashboard.
const topProductsLimit = 5

// AnalyticsRepo consultas de solo lectura para el dashboard comercial.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesMetrics agrega ventas, comisiones, ranking de productos y ventas mensuales
// (últimos 12 meses) del alcance. Los pedidos cancelados no cuentan.
func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, scope entity.MetricsScope) (*entity.SalesMetrics, error) {
	sp := scope.SalespersonID
	m := &entity.SalesMetrics{}

	const totalsQuery = `
	SELECT COALESCE(SUM(o.total), 0), COUNT(*), COUNT(DISTINCT o.customer_id)
	FROM orders o
	WHERE o.status <> 'cancelled'
	  AND ($1 = '' OR o.salesperson_id::text = $1)`
	if err := r.q.QueryRow(ctx, totalsQuery, sp).Scan(&m.TotalSales, &m.OrderCount, &m.CustomerCount); err != nil {
		return nil, fmt.Errorf("sales totals: %w", err)
	}
	if m.OrderCount > 0 {
		m.AverageOrderValue = m.TotalSales.Div(decimal.NewFromInt(int64(m.OrderCount))).Round(2)
	}

	const commissionsQuery = `
	SELECT COALESCE(SUM(amount), 0) FROM commissions
	WHERE ($1 = '' OR salesperson_id::text = $1)`
	if err := r.q.QueryRow(ctx, commissionsQuery, sp).Scan(&m.TotalCommissions); err != nil {
		return nil, fmt.Errorf("sales commissions: %w", err)
	}

	const topQuery = `
	SELECT oi.product_name, SUM(oi.quantity)::int, SUM(oi.subtotal)
	FROM order_items oi
	JOIN orders o ON o.id = oi.order_id
	WHERE o.status <> 'cancelled'
	  AND ($1 = '' OR o.salesperson_id::text = $1)
	GROUP BY oi.product_name
	ORDER BY SUM(oi.subtotal) DESC
	LIMIT $2`
	rows, err := r.q.Query(ctx, topQuery, sp, topProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	for rows.Next() {
		var t entity.TopProduct
		if err := rows.Scan(&t.Product, &t.Quantity, &t.Revenue); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		m.TopSellingProducts = append(m.TopSellingProducts, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}

	const monthlyQuery = `
	SELECT to_char(month, 'Mon'), sales FROM (
	    SELECT date_trunc('month', o.created_at) AS month, SUM(o.total) AS sales
	    FROM orders o
	    WHERE o.status <> 'cancelled'
	      AND o.created_at >= date_trunc('month', now()) - interval '11 months'
	      AND ($1 = '' OR o.salesperson_id::text = $1)
	    GROUP BY 1
	) s
	ORDER BY month`
	rows, err = r.q.Query(ctx, monthlyQuery, sp)
	if err != nil {
		return nil, fmt.Errorf("monthly sales: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ms entity.MonthlySales
		if err := rows.Scan(&ms.Month, &ms.Sales); err != nil {
			return nil, fmt.Errorf("scan monthly sales: %w", err)
		}
		m.MonthlySales = append(m.MonthlySales, ms)
	}
	return m, rows.Err()
}

// GetCustomerSummary resumen de compras de un cliente (pedidos no cancelados).
func (r *AnalyticsRepo) GetCustomerSummary(ctx context.Context, customerID string) (*entity.CustomerSummary, error) {
	const query = `
	SELECT COUNT(*), COALESCE(SUM(total), 0), MAX(created_at)
	FROM orders
	WHERE customer_id = $1 AND status <> 'cancelled'`
	var s entity.CustomerSummary
	var last *time.Time
	if err := r.q.QueryRow(ctx, query, customerID).Scan(&s.TotalOrders, &s.TotalSpent, &last); err != nil {
		return nil, fmt.Errorf("customer summary: %w", err)
	}
	s.LastOrderDate = last
	if s.TotalOrders > 0 {
		s.AverageOrderValue = s.TotalSpent.Div(decimal.NewFromInt(int64(s.TotalOrders))).Round(2)
	}
	return &s, nil
}

// ListCommissions comisiones del vendedor, más recientes primero.
func (r *AnalyticsRepo) ListCommissions(ctx context.Context, salespersonID string) ([]*entity.Commission, error) {
	const query = `
	SELECT cm.id, cm.salesperson_id, cm.order_id, cm.percentage, cm.amount, cm.is_paid, cm.paid_date
	FROM commissions cm
	JOIN orders o ON o.id = cm.order_id
	WHERE cm.salesperson_id = $1
	ORDER BY o.created_at DESC`
	rows, err := r.q.Query(ctx, query, salespersonID)
	if err != nil {
		return nil, fmt.Errorf("list commissions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Commission
	for rows.Next() {
		var c entity.Commission
		if err := rows.Scan(&c.ID, &c.SalespersonID, &c.OrderID, &c.Percentage, &c.Amount, &c.IsPaid, &c.PaidDate); err != nil {
			return nil, fmt.Errorf("scan commission: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
