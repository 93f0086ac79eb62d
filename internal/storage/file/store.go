package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	domainErrors "github.com/bitenow/bitenow/internal/domain/errors"
	"github.com/bitenow/bitenow/internal/domain/model"
	"github.com/bitenow/bitenow/internal/domain/repository"
)

// Store acts as repository facade backed by flat JSON files. The order
// collection is rewritten in full on every mutation; a mutex serializes
// access so concurrent writers never interleave partial rewrites.
type Store struct {
	ordersPath string
	menuPath   string
	mu         sync.Mutex
	logger     *slog.Logger
}

type orderRepository struct {
	store *Store
}

type menuRepository struct {
	store *Store
}

// New creates a store over the given order and menu file paths. A missing
// orders file is treated as an empty collection and created on first write.
func New(ordersPath, menuPath string, logger *slog.Logger) (*Store, error) {
	store := &Store{ordersPath: ordersPath, menuPath: menuPath, logger: logger}
	if _, err := store.readOrders(); err != nil {
		return nil, err
	}
	return store, nil
}

// Orders returns the order repository view of the store.
func (s *Store) Orders() repository.OrderRepository {
	return &orderRepository{store: s}
}

// Menu returns the read-only menu repository view of the store.
func (s *Store) Menu() repository.MenuRepository {
	return &menuRepository{store: s}
}

func (s *Store) readOrders() ([]model.Order, error) {
	data, err := os.ReadFile(s.ordersPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read orders file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var orders []model.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("decode orders file: %w", err)
	}
	return orders, nil
}

func (s *Store) writeOrders(orders []model.Order) error {
	if orders == nil {
		orders = []model.Order{}
	}
	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}

	// Write-and-rename keeps the collection readable even if the process
	// dies mid-write.
	tmp, err := os.CreateTemp(filepath.Dir(s.ordersPath), "orders-*.json")
	if err != nil {
		return fmt.Errorf("create temp orders file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write orders file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close orders file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.ordersPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace orders file: %w", err)
	}
	return nil
}

func (r *orderRepository) GetAll(ctx context.Context) ([]model.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	orders, err := r.store.readOrders()
	if err != nil {
		return nil, err
	}
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Clone())
	}
	return out, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	orders, err := r.store.readOrders()
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.ID == id {
			found := o.Clone()
			return &found, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r *orderRepository) Insert(ctx context.Context, order model.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	orders, err := r.store.readOrders()
	if err != nil {
		return err
	}
	orders = append(orders, order.Clone())
	return r.store.writeOrders(orders)
}

func (r *orderRepository) UpdateWhole(ctx context.Context, id string, order model.Order) (*model.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	orders, err := r.store.readOrders()
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			orders[i] = order.Clone()
			orders[i].ID = id
			if err := r.store.writeOrders(orders); err != nil {
				return nil, err
			}
			updated := orders[i].Clone()
			return &updated, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r *menuRepository) GetAll(ctx context.Context) ([]model.MenuItem, error) {
	data, err := os.ReadFile(r.store.menuPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read menu file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var items []model.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode menu file: %w", err)
	}
	return items, nil
}
