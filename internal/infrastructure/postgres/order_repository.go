package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderSelect = `
	SELECT o.id, o.customer_id, c.company, o.salesperson_id, o.total_pallets, o.subtotal, o.discount, o.total,
	       o.ship_street, o.ship_city, o.ship_state, o.ship_zip_code, o.ship_country,
	       o.status, o.purchase_order_number, o.created_at, o.updated_at
	FROM orders o
	JOIN customers c ON c.id = o.customer_id`

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta cabecera e ítems. La atomicidad la da el TxRunner que entrega la tx.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	s := o.ShippingAddress
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (id, customer_id, salesperson_id, total_pallets, subtotal, discount, total,
			ship_street, ship_city, ship_state, ship_zip_code, ship_country,
			status, purchase_order_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		o.ID, o.CustomerID, nullIfEmpty(o.SalespersonID), o.TotalPallets, o.Subtotal, o.Discount, o.Total,
		s.Street, s.City, s.State, s.ZipCode, s.Country,
		string(o.Status), o.PurchaseOrderNumber, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for _, it := range o.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, product_name, quantity,
				price_per_unit, discounted_price_per_unit, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, o.ID, it.ProductID, it.ProductName, it.Quantity,
			it.PricePerUnit, it.DiscountedPricePerUnit, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un pedido con sus ítems.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.items(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

// List lista pedidos (sin ítems) más recientes primero.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	var (
		where []string
		args  []any
	)
	if f.CustomerID != "" {
		args = append(args, f.CustomerID)
		where = append(where, fmt.Sprintf("o.customer_id = $%d", len(args)))
	}
	if f.SalespersonID != "" {
		args = append(args, f.SalespersonID)
		where = append(where, fmt.Sprintf("o.salesperson_id = $%d", len(args)))
	}
	query := orderSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY o.created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de un pedido.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddCommission registra la comisión del vendedor.
func (r *OrderRepo) AddCommission(ctx context.Context, c *entity.Commission) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO commissions (id, salesperson_id, order_id, percentage, amount, is_paid, paid_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.SalespersonID, c.OrderID, c.Percentage, c.Amount, c.IsPaid, c.PaidDate,
	)
	if err != nil {
		return fmt.Errorf("insert commission: %w", err)
	}
	return nil
}

func (r *OrderRepo) items(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, price_per_unit, discounted_price_per_unit, subtotal
		FROM order_items WHERE order_id = $1 ORDER BY product_name`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity,
			&it.PricePerUnit, &it.DiscountedPricePerUnit, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var salespersonID *string
	var status string
	s := &o.ShippingAddress
	if err := row.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &salespersonID, &o.TotalPallets,
		&o.Subtotal, &o.Discount, &o.Total,
		&s.Street, &s.City, &s.State, &s.ZipCode, &s.Country,
		&status, &o.PurchaseOrderNumber, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.SalespersonID = deref(salespersonID)
	o.Status = entity.OrderStatus(status)
	return &o, nil
}
