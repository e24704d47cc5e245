// Package redis provides a Redis implementation of the KVStore interface,
// for deployments where several processes share one cache record.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/ersonp/fightnight/internal/infrastructure/config"
	redis "github.com/redis/go-redis/v9"
)

// Store implements ports.KVStore on plain Redis strings.
// Values are written without expiry; freshness is decided by the cache record timestamp.
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore creates a Redis-backed store.
func NewStore(cfg config.RedisConfig) (*Store, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis addr is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Store{client: client, prefix: "fightnight:"}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis PING %s: %w", s.client.Options().Addr, err)
	}
	return nil
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	k := s.prefix + key
	value, err := s.client.Get(ctx, k).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis GET %s: %w", k, err)
	}
	return value, true, nil
}

// Put stores value under key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	k := s.prefix + key
	if err := s.client.Set(ctx, k, value, 0).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", k, err)
	}
	return nil
}
