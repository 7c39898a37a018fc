package esg

import (
	"sync"

	"github.com/oklog/ulid/v2"
)

// Store is an append-only, in-memory log of ESG metrics keyed by project.
//
// Record is safe for concurrent use; the log is sharded by project so
// unrelated projects never contend. Metrics are returned in insertion
// order and are never mutated or removed.
type Store struct {
	mu        sync.RWMutex
	byProject map[string][]Metric
}

// NewStore creates an empty metric store.
func NewStore() *Store {
	return &Store{byProject: make(map[string][]Metric)}
}

// Record appends m to the project's log and returns the stored metric with
// its assigned ID. The caller's copy is not retained.
func (s *Store) Record(m Metric) Metric {
	if m.ID == "" {
		m.ID = ulid.Make().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byProject[m.ProjectID] = append(s.byProject[m.ProjectID], m)
	return m
}

// MetricsFor returns a snapshot of all metrics recorded for projectID in
// insertion order. Unknown projects yield an empty slice, never an error.
func (s *Store) MetricsFor(projectID string) []Metric {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.byProject[projectID]
	out := make([]Metric, len(log))
	copy(out, log)
	return out
}

// MetricsByCategory returns the project's metrics for a single category,
// preserving insertion order.
func (s *Store) MetricsByCategory(projectID string, category Category) []Metric {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Metric
	for _, m := range s.byProject[projectID] {
		if m.Category == category {
			out = append(out, m)
		}
	}
	return out
}

// Count returns the number of metrics recorded for projectID.
func (s *Store) Count(projectID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byProject[projectID])
}
