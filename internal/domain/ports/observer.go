package ports

import "time"

// FetchOutcome classifies how a fetch request was served.
type FetchOutcome string

// Fetch outcomes reported to observers.
const (
	OutcomeCacheHit    FetchOutcome = "cache_hit"
	OutcomeFresh       FetchOutcome = "fresh"
	OutcomeDegraded    FetchOutcome = "degraded"
	OutcomeUnavailable FetchOutcome = "unavailable"
)

// FetchObserver receives fetch outcomes, e.g. for metrics.
type FetchObserver interface {
	// ObserveFetch is called once per served fetch request.
	ObserveFetch(outcome FetchOutcome, duration time.Duration)

	// ObserveEvents reports how many events and sources the latest payload carried.
	ObserveEvents(events, sources int)
}
