package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ersonp/fightnight/internal/application/handlers"
	"github.com/ersonp/fightnight/internal/domain/ports"
	"github.com/ersonp/fightnight/internal/domain/services"
	"github.com/ersonp/fightnight/internal/infrastructure/cachestore/redis"
	"github.com/ersonp/fightnight/internal/infrastructure/cachestore/sqlite"
	"github.com/ersonp/fightnight/internal/infrastructure/config"
	llm "github.com/ersonp/fightnight/internal/infrastructure/llm/openai"
	"github.com/ersonp/fightnight/internal/infrastructure/metrics"
)

// Deps holds high-level dependencies for commands.
type Deps struct {
	Config   *config.Config
	Schedule *handlers.ScheduleHandler
	Metrics  *metrics.Observer
}

// cacheDeps holds what commands need to inspect the cache without the LLM.
type cacheDeps struct {
	Config *config.Config
	Cache  *services.EventCache
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	return withCache(ctx, func(c *cacheDeps) error {
		llmClient, err := llm.NewClient(c.Config.LLM)
		if err != nil {
			return fmt.Errorf("creating llm client: %w", err)
		}
		llmClient.SetLogger(slog.Default().With("component", "llm"))

		observer := metrics.NewObserver()
		fetcher := services.NewFetchOrchestrator(llmClient, c.Cache,
			services.WithObserver(observer),
			services.WithSearchTimeout(c.Config.Timeout),
			services.WithLogger(slog.Default().With("component", "fetch")),
		)

		return fn(&Deps{
			Config:   c.Config,
			Schedule: handlers.NewScheduleHandler(fetcher),
			Metrics:  observer,
		})
	})
}

// withCache loads config and opens the configured cache backend.
func withCache(ctx context.Context, fn func(*cacheDeps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	cache := services.NewEventCache(store,
		services.WithCacheKey(cfg.Cache.Key),
		services.WithTTL(cfg.Cache.TTL),
		services.WithCacheLogger(slog.Default().With("component", "cache")),
	)

	return fn(&cacheDeps{Config: cfg, Cache: cache})
}

// openStore opens the KVStore selected by cache.backend.
func openStore(ctx context.Context, cfg *config.Config) (ports.KVStore, func() error, error) {
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		store, err := redis.NewStore(cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("creating redis store: %w", err)
		}
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return store, store.Close, nil
	default:
		store, err := sqlite.NewStore(cfg.SQLite)
		if err != nil {
			return nil, nil, fmt.Errorf("creating sqlite store: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("ensuring sqlite schema: %w", err)
		}
		return store, store.Close, nil
	}
}

// withTimeout bounds ctx by the configured timeout, if any.
func withTimeout(ctx context.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	if cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cfg.Timeout)
}
