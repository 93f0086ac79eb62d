package test

import (
	"sync"

	"github.com/bitenow/bitenow/internal/domain/model"
)

// PublisherStub records published order snapshots.
type PublisherStub struct {
	mu     sync.Mutex
	Events []model.Order
}

// Publish stores the snapshot.
func (s *PublisherStub) Publish(order model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, order.Clone())
}

// Published returns a copy of everything published so far.
func (s *PublisherStub) Published() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Order, len(s.Events))
	copy(out, s.Events)
	return out
}

// LauncherStub records delivery simulation launches.
type LauncherStub struct {
	mu       sync.Mutex
	Launched []string
	LaunchFn func(id string, dest *model.LatLng) bool
}

// Launch records the call and reports success unless configured otherwise.
func (s *LauncherStub) Launch(id string, dest *model.LatLng) bool {
	s.mu.Lock()
	s.Launched = append(s.Launched, id)
	s.mu.Unlock()
	if s.LaunchFn != nil {
		return s.LaunchFn(id, dest)
	}
	return true
}

// LaunchedIDs returns a copy of the recorded launches.
func (s *LauncherStub) LaunchedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Launched))
	copy(out, s.Launched)
	return out
}
