package repository

import (
	"context"

	"github.com/bitenow/bitenow/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. UpdateWhole
// replaces the stored record; callers are expected to read the latest
// snapshot immediately before writing.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	Insert(ctx context.Context, order model.Order) error
	UpdateWhole(ctx context.Context, id string, order model.Order) (*model.Order, error)
}
