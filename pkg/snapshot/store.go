package snapshot

import (
	"sync"
	"time"

	"github.com/Ramsey-B/protea/pkg/models"
	"github.com/Ramsey-B/protea/pkg/stats"
)

// Snapshot is one immutable view of the dataset with its derived aggregates.
// Handlers read whole snapshots; a refresh swaps the pointer, so a request
// never observes a half-updated view.
type Snapshot struct {
	Dataset  models.Dataset
	Stats    stats.DashboardStats
	LoadedAt time.Time
}

// Store holds the current snapshot. Until the first successful load Current
// returns nil and the derived-model routes respond 503.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
}

// NewStore creates an empty snapshot store
func NewStore() *Store {
	return &Store{}
}

// Current returns the latest snapshot, or nil when no load has succeeded yet
func (s *Store) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace computes the aggregates for the dataset and swaps it in as the
// current snapshot.
func (s *Store) Replace(dataset models.Dataset) *Snapshot {
	snap := &Snapshot{
		Dataset:  dataset,
		Stats:    stats.Aggregate(dataset),
		LoadedAt: time.Now(),
	}

	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()

	return snap
}
