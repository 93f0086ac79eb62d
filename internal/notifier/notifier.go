package notifier

import (
	"sync"

	"github.com/bitenow/bitenow/internal/domain/model"
)

const defaultBuffer = 16

// Broadcaster fans out order-changed events to subscribers. Delivery is
// best-effort and at-most-once: a subscriber whose buffer is full misses
// the event, and nothing is replayed to late subscribers.
type Broadcaster struct {
	mu     sync.RWMutex
	subs   map[int]chan model.Order
	nextID int
	buffer int
	closed bool
}

// New creates a broadcaster whose subscriber channels hold up to buffer
// pending snapshots.
func New(buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Broadcaster{subs: make(map[int]chan model.Order), buffer: buffer}
}

// Subscribe registers an observer. The returned cancel function removes the
// subscription and closes the channel; it is safe to call more than once.
func (b *Broadcaster) Subscribe() (<-chan model.Order, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan model.Order, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(ch)
			}
		})
	}
	return ch, cancel
}

// Publish sends a full order snapshot to every subscriber without blocking.
func (b *Broadcaster) Publish(order model.Order) {
	snapshot := order.Clone()

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// Close terminates all subscriptions. Further publishes are dropped.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
