package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, user_id, company, contact_name, email, contact_phone,
	billing_street, billing_city, billing_state, billing_zip_code, billing_country,
	salesperson_id, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente con sus direcciones de despacho.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	b := c.BillingAddress
	_, err := r.q.Exec(ctx, query,
		c.ID, nullIfEmpty(c.UserID), c.Company, c.ContactName, c.Email, c.ContactPhone,
		b.Street, b.City, b.State, b.ZipCode, b.Country,
		nullIfEmpty(c.SalespersonID), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	for _, a := range c.ShippingAddresses {
		_, err := r.q.Exec(ctx, `
			INSERT INTO shipping_addresses (id, customer_id, street, city, state, zip_code, country, is_default)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			a.ID, c.ID, a.Street, a.City, a.State, a.ZipCode, a.Country, a.IsDefault,
		)
		if err != nil {
			return fmt.Errorf("insert shipping address: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un cliente por ID, con sus direcciones de despacho.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

// GetByUserID obtiene la cuenta de cliente del usuario.
func (r *CustomerRepo) GetByUserID(ctx context.Context, userID string) (*entity.Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE user_id = $1`, userID)
}

func (r *CustomerRepo) getOne(ctx context.Context, query, arg string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	addrs, err := r.shippingAddresses(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.ShippingAddresses = addrs
	return c, nil
}

// List lista clientes por empresa. No carga direcciones de despacho.
func (r *CustomerRepo) List(ctx context.Context, salespersonID string) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE ($1 = '' OR salesperson_id::text = $1) ORDER BY company`
	rows, err := r.q.Query(ctx, query, salespersonID)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CustomerRepo) shippingAddresses(ctx context.Context, customerID string) ([]entity.ShippingAddress, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, street, city, state, zip_code, country, is_default
		FROM shipping_addresses WHERE customer_id = $1 ORDER BY is_default DESC, id`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list shipping addresses: %w", err)
	}
	defer rows.Close()
	var list []entity.ShippingAddress
	for rows.Next() {
		var a entity.ShippingAddress
		if err := rows.Scan(&a.ID, &a.Street, &a.City, &a.State, &a.ZipCode, &a.Country, &a.IsDefault); err != nil {
			return nil, fmt.Errorf("scan shipping address: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var userID, salespersonID *string
	b := &c.BillingAddress
	if err := row.Scan(&c.ID, &userID, &c.Company, &c.ContactName, &c.Email, &c.ContactPhone,
		&b.Street, &b.City, &b.State, &b.ZipCode, &b.Country,
		&salespersonID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.UserID = deref(userID)
	c.SalespersonID = deref(salespersonID)
	return &c, nil
}
