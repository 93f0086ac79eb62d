package simulator

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	domainErrors "github.com/bitenow/bitenow/internal/domain/errors"
	"github.com/bitenow/bitenow/internal/domain/model"
)

// Destination fallback: random point within about ±0.025 degrees of the
// origin when the customer supplied no coordinates.
const destSpread = 0.05

// OrderService is the subset of order functionality the simulator drives.
// Every mutation goes through it so the latest persisted snapshot is always
// the base of the write.
type OrderService interface {
	Get(ctx context.Context, id string) (*model.Order, error)
	SetLocation(ctx context.Context, id string, pos model.LatLng) (*model.Order, error)
	AdvanceStatus(ctx context.Context, id string) (*model.Order, error)
}

// Publisher emits order-changed events.
type Publisher interface {
	Publish(order model.Order)
}

// Options configure route shape and timing of a delivery simulation.
type Options struct {
	Origin       model.LatLng
	Segments     int
	MoveInterval time.Duration
	StatusDelays []time.Duration
}

// Registry owns the running delivery simulations, keyed by tracking ID.
// Exactly one simulation is active per order between launch and waypoint
// exhaustion. There is no per-order cancellation API; a simulation ends on
// its own or when the whole registry stops.
type Registry struct {
	orders  OrderService
	changes Publisher
	opts    Options
	logger  *slog.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	runs   map[string]struct{}
	seen   map[string]struct{}
	wg     sync.WaitGroup

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewRegistry constructs the simulation registry.
func NewRegistry(orders OrderService, changes Publisher, opts Options, logger *slog.Logger) *Registry {
	if opts.Segments <= 0 {
		opts.Segments = 6
	}
	if opts.MoveInterval <= 0 {
		opts.MoveInterval = 3 * time.Second
	}
	if len(opts.StatusDelays) == 0 {
		opts.StatusDelays = []time.Duration{2 * time.Second, 7 * time.Second, 14 * time.Second}
	}
	return &Registry{
		orders:  orders,
		changes: changes,
		opts:    opts,
		logger:  logger,
		runs:    make(map[string]struct{}),
		seen:    make(map[string]struct{}),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start makes the registry ready to launch simulations.
func (r *Registry) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctx, r.cancel = context.WithCancel(ctx)
}

// Stop cancels all running simulations and waits for them to finish.
func (r *Registry) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

// Launch starts the delivery simulation for an order. It reports false when
// the registry is not running or this ID was ever launched before, so no
// order gets duplicate timers even if the first simulation already ended.
func (r *Registry) Launch(id string, dest *model.LatLng) bool {
	r.mu.Lock()
	if r.ctx == nil || r.ctx.Err() != nil {
		r.mu.Unlock()
		return false
	}
	if _, exists := r.seen[id]; exists {
		r.mu.Unlock()
		return false
	}
	r.seen[id] = struct{}{}
	r.runs[id] = struct{}{}
	runCtx, cancel := context.WithCancel(r.ctx)
	r.mu.Unlock()

	destination := r.pickDestination(dest)
	waypoints := Route(r.opts.Origin, destination, r.opts.Segments)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()

		var drivers sync.WaitGroup
		drivers.Add(2)
		go func() {
			defer drivers.Done()
			r.drivePosition(runCtx, id, waypoints)
		}()
		go func() {
			defer drivers.Done()
			r.driveStatus(runCtx, id)
		}()
		drivers.Wait()
	}()
	return true
}

// Active reports whether a simulation is currently registered for the ID.
func (r *Registry) Active(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.runs[id]
	return ok
}

func (r *Registry) pickDestination(dest *model.LatLng) model.LatLng {
	if dest != nil {
		return *dest
	}
	r.rngMu.Lock()
	defer r.rngMu.Unlock()
	return model.LatLng{
		Lat: r.opts.Origin.Lat + (r.rng.Float64()-0.5)*destSpread,
		Lng: r.opts.Origin.Lng + (r.rng.Float64()-0.5)*destSpread,
	}
}

// drivePosition walks the order along the waypoints on a fixed interval.
// It self-cancels once the cursor runs past the route or the order vanishes
// from the store, and deregisters the simulation on exit. Outstanding status
// timers keep firing after that; position and status are deliberately
// decoupled.
func (r *Registry) drivePosition(ctx context.Context, id string, waypoints []model.LatLng) {
	defer r.remove(id)

	ticker := time.NewTicker(r.opts.MoveInterval)
	defer ticker.Stop()

	cursor := 0
	last := len(waypoints) - 1
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updated, err := r.orders.SetLocation(ctx, id, waypoints[min(cursor, last)])
			if errors.Is(err, domainErrors.ErrNotFound) {
				return
			}
			if err != nil {
				// Skip this tick; the store may recover before the next one.
				r.logger.Error("position tick failed",
					slog.String("order", id),
					slog.String("error", err.Error()),
				)
				continue
			}
			r.changes.Publish(*updated)
			cursor++
			if cursor > len(waypoints) {
				return
			}
		}
	}
}

// driveStatus fires the three one-shot status timers. Each advance re-reads
// the persisted order, so it composes with concurrent manual updates; a
// missing order makes the timer a silent no-op.
func (r *Registry) driveStatus(ctx context.Context, id string) {
	for _, delay := range r.opts.StatusDelays {
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		updated, err := r.orders.AdvanceStatus(ctx, id)
		if errors.Is(err, domainErrors.ErrNotFound) {
			continue
		}
		if err != nil {
			r.logger.Error("status advance failed",
				slog.String("order", id),
				slog.String("error", err.Error()),
			)
			continue
		}
		r.changes.Publish(*updated)
	}
}

func (r *Registry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.runs, id)
}
