package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bitenow/bitenow/internal/config"
	"github.com/bitenow/bitenow/internal/notifier"
	"github.com/bitenow/bitenow/internal/simulator"
	testhelpers "github.com/bitenow/bitenow/internal/test"
	"github.com/bitenow/bitenow/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestRegistry(changes *notifier.Broadcaster) *simulator.Registry {
	orders := testhelpers.NewMemOrderRepository()
	menu := &testhelpers.MenuRepositoryStub{}
	uc := usecase.NewOrderUseCase(orders, menu, usecase.NewTimestampIDs(orders))
	return simulator.NewRegistry(uc, changes, simulator.Options{}, discardLogger())
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewSimulatorRegistryUsesConfig(t *testing.T) {
	orders := testhelpers.NewMemOrderRepository()
	menu := &testhelpers.MenuRepositoryStub{}
	uc := usecase.NewOrderUseCase(orders, menu, usecase.NewTimestampIDs(orders))

	registry := newSimulatorRegistry(simulatorParams{
		Orders:  uc,
		Changes: notifier.New(1),
		Config: &config.Config{
			OriginLat:     5.6037,
			OriginLng:     -0.1870,
			RouteSegments: 6,
			MoveInterval:  3 * time.Second,
			StatusDelays:  []time.Duration{2 * time.Second},
		},
		Logger: discardLogger(),
	})
	if registry == nil {
		t.Fatal("expected registry instance")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	changes := notifier.New(1)
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     server,
		Simulator:  newTestRegistry(changes),
		Hub:        newHub(changes, discardLogger()),
		Changes:    changes,
		Config:     &config.Config{ShutdownTimeout: 100 * time.Millisecond},
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	hook := recorder.Hooks[0]
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := hook.OnStart(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hook.OnStop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	changes := notifier.New(1)
	server := &http.Server{Addr: "bad addr"}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     server,
		Simulator:  newTestRegistry(changes),
		Hub:        newHub(changes, discardLogger()),
		Changes:    changes,
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}
