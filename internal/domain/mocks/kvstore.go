package mocks

import (
	"context"
	"sync"
)

// KVStore is an in-memory implementation of ports.KVStore.
type KVStore struct {
	GetErr error
	PutErr error

	// Call tracking
	PutCallCount int

	mu   sync.Mutex
	data map[string][]byte
}

// NewKVStore creates an empty in-memory store.
func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string][]byte)}
}

// Get returns the stored value or the configured error.
func (m *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Put stores the value unless PutErr is configured.
func (m *KVStore) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutCallCount++
	if m.PutErr != nil {
		return m.PutErr
	}
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

// Raw returns the bytes stored under key without copying semantics checks.
func (m *KVStore) Raw(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}
