package services

import "github.com/ersonp/fightnight/internal/domain/entities"

// DedupeSources removes citations with a repeated or empty URI, keeping the
// first occurrence. A missing title falls back to the URI.
func DedupeSources(citations []entities.Source) []entities.Source {
	seen := make(map[string]struct{}, len(citations))
	sources := make([]entities.Source, 0, len(citations))
	for _, c := range citations {
		if c.URI == "" {
			continue
		}
		if _, ok := seen[c.URI]; ok {
			continue
		}
		seen[c.URI] = struct{}{}
		if c.Title == "" {
			c.Title = c.URI
		}
		sources = append(sources, c)
	}
	return sources
}
