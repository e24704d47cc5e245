package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ersonp/fightnight/internal/domain/entities"
	"github.com/ersonp/fightnight/internal/domain/ports"
)

const (
	// DefaultCacheKey is the storage key of the cache record. Changing it
	// invalidates every previously stored record.
	DefaultCacheKey = "mma_fights_cache_v2"
	// DefaultCacheTTL is how long a record is considered fresh.
	DefaultCacheTTL = 6 * time.Hour
)

// EventCache stores the last successful fetch result under a fixed key.
type EventCache struct {
	store  ports.KVStore
	key    string
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// CacheOption configures an EventCache.
type CacheOption func(*EventCache)

// WithCacheKey overrides the storage key.
func WithCacheKey(key string) CacheOption {
	return func(c *EventCache) {
		if key != "" {
			c.key = key
		}
	}
}

// WithTTL overrides the freshness window.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *EventCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces time.Now (used in tests).
func WithClock(now func() time.Time) CacheOption {
	return func(c *EventCache) {
		c.now = now
	}
}

// WithCacheLogger sets the logger used for discarded records.
func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *EventCache) {
		c.logger = logger
	}
}

// NewEventCache creates a cache on top of store.
func NewEventCache(store ports.KVStore, opts ...CacheOption) *EventCache {
	c := &EventCache{
		store:  store,
		key:    DefaultCacheKey,
		ttl:    DefaultCacheTTL,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key returns the storage key.
func (c *EventCache) Key() string {
	return c.key
}

// TTL returns the freshness window.
func (c *EventCache) TTL() time.Duration {
	return c.ttl
}

// Read returns the stored record regardless of freshness, or nil if none exists.
// A record that cannot be decoded is reported as absent.
func (c *EventCache) Read(ctx context.Context) (*entities.CacheRecord, error) {
	data, found, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("reading cache record: %w", err)
	}
	if !found {
		return nil, nil
	}

	var record entities.CacheRecord
	if err := json.Unmarshal(data, &record); err != nil {
		c.logger.Warn("discarding unreadable cache record",
			"key", c.key,
			"err", errors.Join(ErrParseFailure, err),
		)
		return nil, nil
	}
	return &record, nil
}

// Write stores payload with the current time, replacing any prior record.
func (c *EventCache) Write(ctx context.Context, payload entities.Payload) (*entities.CacheRecord, error) {
	record := &entities.CacheRecord{
		Data:      payload,
		Timestamp: c.now().UTC().Truncate(time.Millisecond),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshaling cache record: %w", err)
	}

	if err := c.store.Put(ctx, c.key, data); err != nil {
		return nil, fmt.Errorf("writing cache record: %w", err)
	}
	return record, nil
}

// IsFresh reports whether record is younger than the TTL.
func (c *EventCache) IsFresh(record *entities.CacheRecord) bool {
	if record == nil {
		return false
	}
	return c.now().Sub(record.Timestamp) < c.ttl
}
