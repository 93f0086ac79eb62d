package di

import (
	"go.uber.org/fx"

	"github.com/bitenow/bitenow/internal/adapter/payment"
	"github.com/bitenow/bitenow/internal/app"
	"github.com/bitenow/bitenow/internal/config"
	"github.com/bitenow/bitenow/internal/logger"
	"github.com/bitenow/bitenow/internal/notifier"
	"github.com/bitenow/bitenow/internal/pkg/auth"
	"github.com/bitenow/bitenow/internal/server/http/handlers"
	"github.com/bitenow/bitenow/internal/server/http/router"
	"github.com/bitenow/bitenow/internal/simulator"
	"github.com/bitenow/bitenow/internal/storage/file"
	"github.com/bitenow/bitenow/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		file.Module,
		notifier.Module,
		payment.Module,
		usecase.Module,
		fx.Provide(
			func(r *simulator.Registry) app.DeliverySimulator { return r },
			func(b *notifier.Broadcaster) app.ChangePublisher { return b },
			func(f *app.OrderingFacade) handlers.OrderingFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
