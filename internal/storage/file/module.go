package file

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/bitenow/bitenow/internal/config"
	"github.com/bitenow/bitenow/internal/domain/repository"
)

// Module wires file storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStore),
	fx.Provide(
		func(s *Store) repository.OrderRepository { return s.Orders() },
		func(s *Store) repository.MenuRepository { return s.Menu() },
	),
)

type storeParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newStore(p storeParams) (*Store, error) {
	return New(p.Config.OrdersFile, p.Config.MenuFile, p.Logger)
}
