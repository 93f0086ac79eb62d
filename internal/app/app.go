package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/bitenow/bitenow/internal/config"
	"github.com/bitenow/bitenow/internal/domain/model"
	"github.com/bitenow/bitenow/internal/notifier"
	"github.com/bitenow/bitenow/internal/server/ws"
	"github.com/bitenow/bitenow/internal/simulator"
	"github.com/bitenow/bitenow/internal/usecase"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewOrderingFacade,
		newHTTPServer,
		newSimulatorRegistry,
		newHub,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type simulatorParams struct {
	fx.In

	Orders  *usecase.OrderUseCase
	Changes *notifier.Broadcaster
	Config  *config.Config
	Logger  *slog.Logger
}

func newSimulatorRegistry(p simulatorParams) *simulator.Registry {
	return simulator.NewRegistry(
		p.Orders,
		p.Changes,
		simulator.Options{
			Origin:       model.LatLng{Lat: p.Config.OriginLat, Lng: p.Config.OriginLng},
			Segments:     p.Config.RouteSegments,
			MoveInterval: p.Config.MoveInterval,
			StatusDelays: p.Config.StatusDelays,
		},
		p.Logger,
	)
}

func newHub(changes *notifier.Broadcaster, logger *slog.Logger) *ws.Hub {
	return ws.NewHub(changes, logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Simulator  *simulator.Registry
	Hub        *ws.Hub
	Changes    *notifier.Broadcaster
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting bitenow", slog.String("addr", p.Server.Addr))
			p.Simulator.Start(context.Background())
			p.Hub.Start(context.Background())
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Simulator.Stop()
			p.Hub.Stop()
			p.Changes.Close()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("bitenow stopped")
			return nil
		},
	})
}
