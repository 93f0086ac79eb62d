package test

import (
	"context"
	"sync"

	domainErrors "github.com/bitenow/bitenow/internal/domain/errors"
	"github.com/bitenow/bitenow/internal/domain/model"
)

// MemOrderRepository is a concurrency-safe in-memory order repository used
// across usecase, simulator and app tests.
type MemOrderRepository struct {
	mu     sync.Mutex
	orders []model.Order
}

// NewMemOrderRepository creates an empty in-memory repository.
func NewMemOrderRepository(seed ...model.Order) *MemOrderRepository {
	repo := &MemOrderRepository{}
	for _, o := range seed {
		repo.orders = append(repo.orders, o.Clone())
	}
	return repo
}

// GetAll returns snapshots of every stored order.
func (r *MemOrderRepository) GetAll(ctx context.Context) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o.Clone())
	}
	return out, nil
}

// GetByID returns a snapshot of the order with the given ID.
func (r *MemOrderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			found := o.Clone()
			return &found, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Insert appends the order.
func (r *MemOrderRepository) Insert(ctx context.Context, order model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, order.Clone())
	return nil
}

// UpdateWhole replaces the stored record.
func (r *MemOrderRepository) UpdateWhole(ctx context.Context, id string, order model.Order) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i] = order.Clone()
			r.orders[i].ID = id
			updated := r.orders[i].Clone()
			return &updated, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Delete removes an order, simulating external removal from the store.
func (r *MemOrderRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return
		}
	}
}

// OrderRepositoryStub provides controllable repository behaviour.
type OrderRepositoryStub struct {
	GetAllFn  func(context.Context) ([]model.Order, error)
	GetByIDFn func(context.Context, string) (*model.Order, error)
	InsertFn  func(context.Context, model.Order) error
	UpdateFn  func(context.Context, string, model.Order) (*model.Order, error)
}

// GetAll delegates to the configured function or returns nothing.
func (s *OrderRepositoryStub) GetAll(ctx context.Context) ([]model.Order, error) {
	if s.GetAllFn != nil {
		return s.GetAllFn(ctx)
	}
	return nil, nil
}

// GetByID delegates to the configured function or reports not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// Insert delegates to the configured function or accepts silently.
func (s *OrderRepositoryStub) Insert(ctx context.Context, order model.Order) error {
	if s.InsertFn != nil {
		return s.InsertFn(ctx, order)
	}
	return nil
}

// UpdateWhole delegates to the configured function or reports not found.
func (s *OrderRepositoryStub) UpdateWhole(ctx context.Context, id string, order model.Order) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, order)
	}
	return nil, domainErrors.ErrNotFound
}

// MenuRepositoryStub serves a fixed menu.
type MenuRepositoryStub struct {
	Items []model.MenuItem
	Err   error
}

// GetAll returns the configured menu or error.
func (s *MenuRepositoryStub) GetAll(ctx context.Context) ([]model.MenuItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Items, nil
}
