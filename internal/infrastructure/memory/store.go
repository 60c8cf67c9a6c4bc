// Package memory implementa los repositorios en memoria (desarrollo y tests).
package memory

import (
	"context"
	"sync"

	"github.com/Caio-C8/inventory-system/internal/domain/entity"
	"github.com/Caio-C8/inventory-system/internal/domain/repository"
)

type state struct {
	products    map[string]entity.Product
	customers   map[string]entity.Customer
	batches     map[string]entity.Batch
	sales       map[string]entity.Sale
	items       map[string]itemRow
	allocations map[string][]entity.AllocationSaleItem
	seq         int
}

// itemRow línea persistida; seq conserva el orden de inserción dentro de la venta.
type itemRow struct {
	item entity.SaleItem
	seq  int
}

func newState() *state {
	return &state{
		products:    make(map[string]entity.Product),
		customers:   make(map[string]entity.Customer),
		batches:     make(map[string]entity.Batch),
		sales:       make(map[string]entity.Sale),
		items:       make(map[string]itemRow),
		allocations: make(map[string][]entity.AllocationSaleItem),
	}
}

// clone copia profunda del estado para poder revertir una transacción fallida.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.batches {
		c.batches[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.allocations {
		c.allocations[k] = append([]entity.AllocationSaleItem(nil), v...)
	}
	c.seq = s.seq
	return c
}

// Store base de datos en memoria con transacciones serializadas.
// Run toma el mutex durante toda la transacción y restaura el snapshot si fn devuelve error.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// Run ejecuta fn con repositorios atados al estado; en error se descartan todos los cambios.
func (s *Store) Run(ctx context.Context, fn func(store repository.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(s.repos()); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

func (s *Store) repos() repository.Store {
	return repository.Store{
		Products:  &productRepo{s: s},
		Customers: &customerRepo{s: s},
		Batches:   &batchRepo{s: s},
		Sales:     &saleRepo{s: s},
		SaleItems: &saleItemRepo{s: s},
	}
}

// PutProduct inserta o reemplaza un producto (seed).
func (s *Store) PutProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.products[p.ID] = p
}

// PutCustomer inserta o reemplaza un cliente (seed).
func (s *Store) PutCustomer(c entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.customers[c.ID] = c
}

// PutBatch inserta o reemplaza un lote sin tocar el stock del producto (seed).
func (s *Store) PutBatch(b entity.Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.batches[b.ID] = b
}

// Product devuelve una copia del producto.
func (s *Store) Product(id string) (entity.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.products[id]
	return p, ok
}

// Batch devuelve una copia del lote.
func (s *Store) Batch(id string) (entity.Batch, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.state.batches[id]
	return b, ok
}

// SaleCount número de ventas persistidas.
func (s *Store) SaleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.sales)
}

// AllocationCount número total de asignaciones persistidas.
func (s *Store) AllocationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, allocs := range s.state.allocations {
		n += len(allocs)
	}
	return n
}
