// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/ersonp/fightnight/internal/domain/ports"
)

// EventSearcher is a mock implementation of ports.EventSearcher.
type EventSearcher struct {
	// SearchEvents return values
	Result *ports.SearchResult
	Err    error

	// Block, when set, holds SearchEvents until it is closed or ctx is done.
	Block chan struct{}

	mu        sync.Mutex
	callCount int
}

// SearchEvents returns the configured result or error.
func (m *EventSearcher) SearchEvents(ctx context.Context) (*ports.SearchResult, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.Block != nil {
		select {
		case <-m.Block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// CallCount returns how many times SearchEvents was invoked.
func (m *EventSearcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}
