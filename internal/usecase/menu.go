package usecase

import (
	"context"

	"github.com/bitenow/bitenow/internal/domain/model"
	"github.com/bitenow/bitenow/internal/domain/repository"
)

// MenuUseCase exposes the read-only menu.
type MenuUseCase struct {
	menu repository.MenuRepository
}

// NewMenuUseCase constructs MenuUseCase.
func NewMenuUseCase(menu repository.MenuRepository) *MenuUseCase {
	return &MenuUseCase{menu: menu}
}

// Items returns the current menu snapshot.
func (u *MenuUseCase) Items(ctx context.Context) ([]model.MenuItem, error) {
	return u.menu.GetAll(ctx)
}
