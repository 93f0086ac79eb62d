package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domainErrors "github.com/bitenow/bitenow/internal/domain/errors"
	"github.com/bitenow/bitenow/internal/domain/repository"
)

const (
	trackingPrefix = "BN"
	maxIDAttempts  = 1000
)

// ErrTrackingIDExhausted is returned when no free identifier could be found.
var ErrTrackingIDExhausted = errors.New("tracking id space exhausted")

// TrackingIDs generates unique public tracking identifiers.
type TrackingIDs interface {
	Next(ctx context.Context) (string, error)
}

// TimestampIDs derives identifiers from the last six digits of the current
// millisecond timestamp. The format is customer-visible, so collisions under
// concurrent creation are resolved by probing for a free suffix rather than
// by changing the ID shape. A handed-out identifier is not in the store until
// the caller persists it, so issued suffixes are remembered too; the suffix
// space holds one million entries, keeping the set bounded.
type TimestampIDs struct {
	orders repository.OrderRepository
	now    func() time.Time
	mu     sync.Mutex
	issued map[int64]struct{}
}

// NewTimestampIDs constructs the default tracking ID generator.
func NewTimestampIDs(orders repository.OrderRepository) *TimestampIDs {
	return &TimestampIDs{
		orders: orders,
		now:    time.Now,
		issued: make(map[int64]struct{}),
	}
}

// Next returns a fresh identifier: one neither present in the store nor
// already handed out to a creation still in flight.
func (g *TimestampIDs) Next(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	base := g.now().UnixMilli()
	for attempt := int64(0); attempt < maxIDAttempts; attempt++ {
		suffix := (base + attempt) % 1_000_000
		if _, taken := g.issued[suffix]; taken {
			continue
		}
		id := fmt.Sprintf("%s%06d", trackingPrefix, suffix)

		_, err := g.orders.GetByID(ctx, id)
		if errors.Is(err, domainErrors.ErrNotFound) {
			g.issued[suffix] = struct{}{}
			return id, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", ErrTrackingIDExhausted
}
