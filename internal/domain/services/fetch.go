package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/ersonp/fightnight/internal/domain/entities"
	"github.com/ersonp/fightnight/internal/domain/ports"
)

// fetchKey is the singleflight key; there is only one logical data set.
const fetchKey = "events"

// FetchStatus describes where a FetchResult came from.
type FetchStatus string

const (
	// StatusFresh means the payload was fetched from the source just now.
	StatusFresh FetchStatus = "fresh"
	// StatusCached means the payload came from a cache record within its TTL.
	StatusCached FetchStatus = "cached"
	// StatusDegraded means the source failed and an expired record was served.
	StatusDegraded FetchStatus = "degraded"
)

// FetchResult is the payload served to a caller.
type FetchResult struct {
	Payload   entities.Payload
	Status    FetchStatus
	FetchedAt time.Time
}

// Degraded reports whether the result is a stale fallback.
func (r *FetchResult) Degraded() bool {
	return r.Status == StatusDegraded
}

// FetchOrchestrator serves event data from the cache or the source,
// falling back to an expired record only when the source fails.
type FetchOrchestrator struct {
	searcher ports.EventSearcher
	cache    *EventCache
	observer ports.FetchObserver
	logger   *slog.Logger
	group    singleflight.Group

	searchTimeout time.Duration
}

// FetchOption configures a FetchOrchestrator.
type FetchOption func(*FetchOrchestrator)

// WithObserver reports fetch outcomes to observer.
func WithObserver(observer ports.FetchObserver) FetchOption {
	return func(o *FetchOrchestrator) {
		o.observer = observer
	}
}

// WithSearchTimeout bounds the shared source request. Zero leaves it unbounded.
func WithSearchTimeout(d time.Duration) FetchOption {
	return func(o *FetchOrchestrator) {
		o.searchTimeout = d
	}
}

// WithLogger sets the orchestrator logger.
func WithLogger(logger *slog.Logger) FetchOption {
	return func(o *FetchOrchestrator) {
		o.logger = logger
	}
}

// NewFetchOrchestrator creates a new fetch orchestrator.
func NewFetchOrchestrator(searcher ports.EventSearcher, cache *EventCache, opts ...FetchOption) *FetchOrchestrator {
	o := &FetchOrchestrator{
		searcher: searcher,
		cache:    cache,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// FetchEvents returns the cached payload if it is fresh, otherwise fetches
// from the source. Concurrent calls share a single source request.
func (o *FetchOrchestrator) FetchEvents(ctx context.Context) (*FetchResult, error) {
	start := time.Now()

	record, err := o.cache.Read(ctx)
	if err != nil {
		o.logger.Warn("cache read failed", "err", err)
	}
	if record != nil && o.cache.IsFresh(record) {
		o.logger.Debug("serving fresh cache record", "age", o.cache.now().Sub(record.Timestamp))
		o.observe(ports.OutcomeCacheHit, time.Since(start))
		return &FetchResult{
			Payload:   record.Data,
			Status:    StatusCached,
			FetchedAt: record.Timestamp,
		}, nil
	}

	return o.fetchShared(ctx)
}

// Refresh fetches from the source even when the cache is fresh.
// The stale-on-failure fallback still applies.
func (o *FetchOrchestrator) Refresh(ctx context.Context) (*FetchResult, error) {
	return o.fetchShared(ctx)
}

// fetchShared joins or starts the single in-flight source request. The request
// is detached from ctx so one caller's deadline does not fail the others; each
// caller stops waiting when its own ctx ends. Outcomes are observed here, once
// per caller.
func (o *FetchOrchestrator) fetchShared(ctx context.Context) (*FetchResult, error) {
	start := time.Now()

	ch := o.group.DoChan(fetchKey, func() (interface{}, error) {
		searchCtx := context.WithoutCancel(ctx)
		if o.searchTimeout > 0 {
			var cancel context.CancelFunc
			searchCtx, cancel = context.WithTimeout(searchCtx, o.searchTimeout)
			defer cancel()
		}
		return o.fetchLive(searchCtx)
	})

	var (
		result *FetchResult
		err    error
	)
	select {
	case res := <-ch:
		if res.Shared {
			o.logger.Debug("joined in-flight fetch")
		}
		if res.Err != nil {
			err = res.Err
		} else {
			result = res.Val.(*FetchResult)
		}
	case <-ctx.Done():
		o.logger.Warn("gave up waiting for event search", "err", ctx.Err())
		result, err = o.fallback(context.WithoutCancel(ctx), ctx.Err(), o.logger)
	}

	o.observe(outcomeOf(result, err), time.Since(start))
	return result, err
}

func (o *FetchOrchestrator) fetchLive(ctx context.Context) (*FetchResult, error) {
	start := time.Now()
	logger := o.logger.With("fetch_id", uuid.NewString())
	logger.Info("fetching events from source")

	res, err := o.searcher.SearchEvents(ctx)
	if err == nil && res == nil {
		err = errors.New("source returned no result")
	}
	if err != nil {
		logger.Warn("event search failed", "err", err)
		return o.fallback(ctx, err, logger)
	}

	payload := entities.Payload{
		Events:  knownPromotionEvents(res.Events, logger),
		Sources: DedupeSources(res.Citations),
	}

	fetchedAt := o.cache.now().UTC()
	record, err := o.cache.Write(ctx, payload)
	if err != nil {
		logger.Error("cache write failed", "err", err)
	} else {
		fetchedAt = record.Timestamp
	}

	logger.Info("fetched events",
		"events", len(payload.Events),
		"sources", len(payload.Sources),
		"duration", time.Since(start),
	)
	if o.observer != nil {
		o.observer.ObserveEvents(len(payload.Events), len(payload.Sources))
	}

	return &FetchResult{
		Payload:   payload,
		Status:    StatusFresh,
		FetchedAt: fetchedAt,
	}, nil
}

// fallback serves any existing record after the source failed with cause.
func (o *FetchOrchestrator) fallback(ctx context.Context, cause error, logger *slog.Logger) (*FetchResult, error) {
	record, err := o.cache.Read(ctx)
	if err != nil {
		logger.Warn("cache read failed during fallback", "err", err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, cause)
	}

	logger.Warn("serving stale cache record", "age", o.cache.now().Sub(record.Timestamp))
	return &FetchResult{
		Payload:   record.Data,
		Status:    StatusDegraded,
		FetchedAt: record.Timestamp,
	}, nil
}

func outcomeOf(result *FetchResult, err error) ports.FetchOutcome {
	switch {
	case err != nil:
		return ports.OutcomeUnavailable
	case result.Status == StatusDegraded:
		return ports.OutcomeDegraded
	default:
		return ports.OutcomeFresh
	}
}

func (o *FetchOrchestrator) observe(outcome ports.FetchOutcome, d time.Duration) {
	if o.observer != nil {
		o.observer.ObserveFetch(outcome, d)
	}
}

// knownPromotionEvents drops events whose promotion is not recognized.
func knownPromotionEvents(events []entities.FightEvent, logger *slog.Logger) []entities.FightEvent {
	kept := make([]entities.FightEvent, 0, len(events))
	for _, e := range events {
		if !e.Promotion.Valid() {
			logger.Warn("dropping event with unknown promotion",
				"event", e.EventName,
				"promotion", string(e.Promotion),
			)
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
