package services

import (
	"sort"
	"time"

	"github.com/ersonp/fightnight/internal/domain/entities"
)

// RecentWindow is how long after its start an event is still listed.
const RecentWindow = 12 * time.Hour

// PromotionCount is the number of listed events for one promotion.
type PromotionCount struct {
	Promotion entities.Promotion `json:"promotion"`
	Count     int                `json:"count"`
}

// Curate drops events that started more than RecentWindow before ref and
// orders the rest by start time. Events sharing a start time keep their
// relative input order.
func Curate(events []entities.FightEvent, ref time.Time) []entities.FightEvent {
	cutoff := ref.Add(-RecentWindow)

	curated := make([]entities.FightEvent, 0, len(events))
	for _, e := range events {
		if e.Date.After(cutoff) {
			curated = append(curated, e)
		}
	}

	sort.SliceStable(curated, func(i, j int) bool {
		return curated[i].Date.Before(curated[j].Date)
	})

	return curated
}

// PromotionCounts counts events per promotion. Promotions without events
// are absent from the map.
func PromotionCounts(events []entities.FightEvent) map[entities.Promotion]int {
	counts := make(map[entities.Promotion]int)
	for _, e := range events {
		counts[e.Promotion]++
	}
	return counts
}

// CountByPromotion returns PromotionCounts as a slice ordered by promotion name.
func CountByPromotion(events []entities.FightEvent) []PromotionCount {
	counts := PromotionCounts(events)

	result := make([]PromotionCount, 0, len(counts))
	for p, n := range counts {
		result = append(result, PromotionCount{Promotion: p, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Promotion < result[j].Promotion
	})
	return result
}

// FilterByPromotion returns the events of a single promotion, preserving order.
func FilterByPromotion(events []entities.FightEvent, p entities.Promotion) []entities.FightEvent {
	var filtered []entities.FightEvent
	for _, e := range events {
		if e.Promotion == p {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
