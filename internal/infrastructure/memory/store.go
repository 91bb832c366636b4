// Package memory implementa los puertos de persistencia sobre datos de
// demostración en memoria, con una latencia artificial configurable que
// respeta la cancelación del contexto.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/palletpro-api/internal/domain/entity"
)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu      sync.RWMutex
	latency time.Duration

	users       map[string]*entity.User
	customers   map[string]*entity.Customer
	categories  []*entity.ProductCategory
	products    map[string]*entity.Product
	productSeq  []string // orden de inserción
	orders      map[string]*entity.Order
	commissions []*entity.Commission
}

// NewStore crea un almacén vacío.
func NewStore(latency time.Duration) *Store {
	return &Store{
		latency:   latency,
		users:     make(map[string]*entity.User),
		customers: make(map[string]*entity.Customer),
		products:  make(map[string]*entity.Product),
		orders:    make(map[string]*entity.Order),
	}
}

// NewSeededStore crea un almacén cargado con el dataset de demostración.
func NewSeededStore(latency time.Duration) (*Store, error) {
	ds, err := NewDataset()
	if err != nil {
		return nil, err
	}
	s := NewStore(latency)
	s.Load(ds)
	return s, nil
}

// Load reemplaza el contenido del almacén por el dataset.
func (s *Store) Load(ds *Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range ds.Users {
		cp := *u
		s.users[u.ID] = &cp
	}
	for _, c := range ds.Customers {
		s.customers[c.ID] = cloneCustomer(c)
	}
	for _, c := range ds.Categories {
		cp := *c
		s.categories = append(s.categories, &cp)
	}
	for _, p := range ds.Products {
		cp := *p
		s.products[p.ID] = &cp
		s.productSeq = append(s.productSeq, p.ID)
	}
	for _, o := range ds.Orders {
		s.orders[o.ID] = cloneOrder(o)
	}
	for _, c := range ds.Commissions {
		cp := *c
		s.commissions = append(s.commissions, &cp)
	}
}

// wait simula la latencia del origen de datos; devuelve ctx.Err() si se cancela antes.
func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func cloneCustomer(c *entity.Customer) *entity.Customer {
	cp := *c
	cp.ShippingAddresses = append([]entity.ShippingAddress(nil), c.ShippingAddresses...)
	return &cp
}

func cloneOrder(o *entity.Order) *entity.Order {
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	return &cp
}
