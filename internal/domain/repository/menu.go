package repository

import (
	"context"

	"github.com/bitenow/bitenow/internal/domain/model"
)

// MenuRepository provides read-only access to the menu.
type MenuRepository interface {
	GetAll(ctx context.Context) ([]model.MenuItem, error)
}
