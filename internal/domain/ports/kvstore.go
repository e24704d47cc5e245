package ports

import "context"

// KVStore is durable key-value storage for the cache record.
type KVStore interface {
	// Get returns the value for key. found is false when no value exists.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
}
