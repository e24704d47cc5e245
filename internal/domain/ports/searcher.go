// Package ports defines interfaces for external service communication.
package ports

import (
	"context"

	"github.com/ersonp/fightnight/internal/domain/entities"
)

// SearchResult is the raw output of one search-augmented generation call.
// Citations may contain duplicates; callers normalize them.
type SearchResult struct {
	Events    []entities.FightEvent
	Citations []entities.Source
}

// EventSearcher defines the interface for the external event data source.
type EventSearcher interface {
	// SearchEvents finds upcoming events for the known promotions.
	SearchEvents(ctx context.Context) (*SearchResult, error)
}
