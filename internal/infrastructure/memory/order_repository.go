package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/palletpro-api/internal/application/usecase"
	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository = (*OrderRepo)(nil)
	_ usecase.OrderTxRunner      = (*TxRunner)(nil)
)

// OrderRepo pedidos en memoria.
type OrderRepo struct{ s *Store }

// NewOrderRepository construye el repositorio sobre el almacén.
func NewOrderRepository(s *Store) *OrderRepo { return &OrderRepo{s: s} }

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	if err := r.s.wait(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.insertOrder(o)
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	if err := r.s.wait(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	if err := r.s.wait(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.listOrders(f), nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	if err := r.s.wait(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

func (r *OrderRepo) AddCommission(ctx context.Context, c *entity.Commission) error {
	if err := r.s.wait(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.commissions = append(r.s.commissions, &cp)
	return nil
}

func (s *Store) insertOrder(o *entity.Order) error {
	if _, ok := s.orders[o.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := cloneOrder(o)
	if c, ok := s.customers[o.CustomerID]; ok {
		cp.CustomerName = c.Company
	}
	s.orders[o.ID] = cp
	return nil
}

func (s *Store) listOrders(f repository.OrderFilter) []*entity.Order {
	var list []*entity.Order
	for _, o := range s.orders {
		if f.CustomerID != "" && o.CustomerID != f.CustomerID {
			continue
		}
		if f.SalespersonID != "" && o.SalespersonID != f.SalespersonID {
			continue
		}
		cp := cloneOrder(o)
		cp.Items = nil
		list = append(list, cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if f.Limit > 0 && len(list) > f.Limit {
		list = list[:f.Limit]
	}
	return list
}

// TxRunner agrupa las escrituras de pedidos y las aplica juntas solo si fn termina sin error.
type TxRunner struct{ s *Store }

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// RunOrders ejecuta fn con un repositorio transaccional.
func (t *TxRunner) RunOrders(ctx context.Context, fn func(orders repository.OrderRepository) error) error {
	tx := &txOrderRepo{base: &OrderRepo{s: t.s}}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, o := range tx.orders {
		if _, ok := t.s.orders[o.ID]; ok {
			return domain.ErrDuplicate
		}
	}
	for _, o := range tx.orders {
		_ = t.s.insertOrder(o)
	}
	for _, c := range tx.commissions {
		t.s.commissions = append(t.s.commissions, c)
	}
	for id, st := range tx.statuses {
		if o, ok := t.s.orders[id]; ok {
			o.Status = st
			o.UpdatedAt = time.Now()
		}
	}
	return nil
}

type txOrderRepo struct {
	base        *OrderRepo
	orders      []*entity.Order
	commissions []*entity.Commission
	statuses    map[string]entity.OrderStatus
}

func (r *txOrderRepo) Create(ctx context.Context, o *entity.Order) error {
	if err := r.base.s.wait(ctx); err != nil {
		return err
	}
	r.orders = append(r.orders, cloneOrder(o))
	return nil
}

func (r *txOrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return cloneOrder(o), nil
		}
	}
	return r.base.GetByID(ctx, id)
}

func (r *txOrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	return r.base.List(ctx, f)
}

func (r *txOrderRepo) UpdateStatus(_ context.Context, id string, status entity.OrderStatus) error {
	if r.statuses == nil {
		r.statuses = make(map[string]entity.OrderStatus)
	}
	r.statuses[id] = status
	return nil
}

func (r *txOrderRepo) AddCommission(_ context.Context, c *entity.Commission) error {
	cp := *c
	r.commissions = append(r.commissions, &cp)
	return nil
}
