// Package zones provides the configured threshold-speed lookup consumed by
// the metric catalog.
package zones

import (
	"sync"
	"time"

	"example.com/performance/internal/domain"
)

// Provider resolves the configured threshold speed (m/s) for a discipline
// on a given date. The second return is false when nothing is configured;
// that is a valid, zero-scoring condition, not an error.
type Provider interface {
	ThresholdSpeed(discipline domain.Discipline, date time.Time) (float64, bool)
}

// Range is one dated configuration entry. A zero To means open-ended.
type Range struct {
	From  time.Time
	To    time.Time
	Speed float64
}

func (r Range) contains(date time.Time) bool {
	if date.Before(r.From) {
		return false
	}
	return r.To.IsZero() || date.Before(r.To)
}

// Store is an in-memory Provider. Writes happen during startup seeding;
// lookups afterward may run concurrently.
type Store struct {
	mu     sync.RWMutex
	ranges map[domain.Discipline][]Range
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{ranges: make(map[domain.Discipline][]Range)}
}

// Add appends a configuration range for the discipline. Later additions
// take precedence on overlapping dates.
func (s *Store) Add(discipline domain.Discipline, r Range) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ranges[discipline] = append(s.ranges[discipline], r)
}

// ThresholdSpeed implements Provider.
func (s *Store) ThresholdSpeed(discipline domain.Discipline, date time.Time) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ranges := s.ranges[discipline]
	for i := len(ranges) - 1; i >= 0; i-- {
		if ranges[i].contains(date) {
			return ranges[i].Speed, true
		}
	}
	return 0, false
}
