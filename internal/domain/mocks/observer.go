package mocks

import (
	"sync"
	"time"

	"github.com/ersonp/fightnight/internal/domain/ports"
)

// FetchObserver records observed fetch outcomes.
type FetchObserver struct {
	mu       sync.Mutex
	Outcomes []ports.FetchOutcome
	Events   int
	Sources  int
}

// ObserveFetch records the outcome.
func (m *FetchObserver) ObserveFetch(outcome ports.FetchOutcome, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Outcomes = append(m.Outcomes, outcome)
}

// ObserveEvents records the payload size.
func (m *FetchObserver) ObserveEvents(events, sources int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = events
	m.Sources = sources
}

// Snapshot returns a copy of the recorded outcomes.
func (m *FetchObserver) Snapshot() []ports.FetchOutcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.FetchOutcome, len(m.Outcomes))
	copy(out, m.Outcomes)
	return out
}
