package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo cuentas de cliente en memoria.
type CustomerRepo struct{ s *Store }

// NewCustomerRepository construye el repositorio sobre el almacén.
func NewCustomerRepository(s *Store) *CustomerRepo { return &CustomerRepo{s: s} }

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	if err := r.s.wait(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; ok {
		return domain.ErrDuplicate
	}
	if c.UserID != "" {
		for _, other := range r.s.customers {
			if other.UserID == c.UserID {
				return domain.ErrDuplicate
			}
		}
	}
	r.s.customers[c.ID] = cloneCustomer(c)
	return nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	if err := r.s.wait(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return cloneCustomer(c), nil
}

func (r *CustomerRepo) GetByUserID(ctx context.Context, userID string) (*entity.Customer, error) {
	if err := r.s.wait(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.customers {
		if userID != "" && c.UserID == userID {
			return cloneCustomer(c), nil
		}
	}
	return nil, nil
}

func (r *CustomerRepo) List(ctx context.Context, salespersonID string) ([]*entity.Customer, error) {
	if err := r.s.wait(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Customer
	for _, c := range r.s.customers {
		if salespersonID == "" || c.SalespersonID == salespersonID {
			list = append(list, cloneCustomer(c))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Company < list[j].Company })
	return list, nil
}
