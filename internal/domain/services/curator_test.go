package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/fightnight/internal/domain/entities"
)

func event(p entities.Promotion, name string, at time.Time) entities.FightEvent {
	return entities.FightEvent{Promotion: p, EventName: name, Date: at}
}

func TestCurate_FiltersAndSorts(t *testing.T) {
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	events := []entities.FightEvent{
		event(entities.PromotionUFC, "future", now.Add(time.Hour)),
		event(entities.PromotionUFC, "long over", now.Add(-13*time.Hour)),
		event(entities.PromotionPFL, "recently live", now.Add(-time.Hour)),
	}

	curated := Curate(events, now)

	require.Len(t, curated, 2)
	assert.Equal(t, "recently live", curated[0].EventName)
	assert.Equal(t, "future", curated[1].EventName)
}

func TestCurate_WindowBoundaryIsExclusive(t *testing.T) {
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	events := []entities.FightEvent{
		event(entities.PromotionUFC, "exactly 12h", now.Add(-RecentWindow)),
		event(entities.PromotionUFC, "just inside", now.Add(-RecentWindow+time.Second)),
	}

	curated := Curate(events, now)

	require.Len(t, curated, 1)
	assert.Equal(t, "just inside", curated[0].EventName)
}

func TestCurate_StableForEqualTimes(t *testing.T) {
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	at := now.Add(24 * time.Hour)
	events := []entities.FightEvent{
		event(entities.PromotionONE, "b", at),
		event(entities.PromotionUFC, "later", at.Add(time.Hour)),
		event(entities.PromotionPFL, "a", at),
		event(entities.PromotionBKFC, "c", at),
		event(entities.PromotionUFC, "first", now),
	}

	curated := Curate(events, now)

	names := make([]string, len(curated))
	for i, e := range curated {
		names[i] = e.EventName
	}
	assert.Equal(t, []string{"first", "b", "a", "c", "later"}, names)
}

func TestCurate_DoesNotMutateInput(t *testing.T) {
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	events := []entities.FightEvent{
		event(entities.PromotionUFC, "second", now.Add(2*time.Hour)),
		event(entities.PromotionUFC, "first", now.Add(time.Hour)),
	}

	_ = Curate(events, now)

	assert.Equal(t, "second", events[0].EventName)
}

func TestCurate_Empty(t *testing.T) {
	curated := Curate(nil, time.Now())
	assert.NotNil(t, curated)
	assert.Empty(t, curated)
}

func TestPromotionCounts_OmitsFilteredPromotions(t *testing.T) {
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	events := []entities.FightEvent{
		event(entities.PromotionBKFC, "old bkfc", now.Add(-20*time.Hour)),
		event(entities.PromotionUFC, "ufc 1", now.Add(time.Hour)),
		event(entities.PromotionUFC, "ufc 2", now.Add(2*time.Hour)),
		event(entities.PromotionONE, "one 1", now.Add(3*time.Hour)),
	}

	counts := PromotionCounts(Curate(events, now))

	assert.Equal(t, map[entities.Promotion]int{
		entities.PromotionUFC: 2,
		entities.PromotionONE: 1,
	}, counts)
	assert.NotContains(t, counts, entities.PromotionBKFC)
}

func TestCountByPromotion_SortedByName(t *testing.T) {
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	events := []entities.FightEvent{
		event(entities.PromotionUFC, "u", now),
		event(entities.PromotionBellator, "b", now),
		event(entities.PromotionPFL, "p", now),
		event(entities.PromotionUFC, "u2", now),
	}

	counts := CountByPromotion(events)

	assert.Equal(t, []PromotionCount{
		{Promotion: entities.PromotionBellator, Count: 1},
		{Promotion: entities.PromotionPFL, Count: 1},
		{Promotion: entities.PromotionUFC, Count: 2},
	}, counts)
}

func TestFilterByPromotion(t *testing.T) {
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	events := []entities.FightEvent{
		event(entities.PromotionUFC, "u1", now),
		event(entities.PromotionPFL, "p", now),
		event(entities.PromotionUFC, "u2", now),
	}

	filtered := FilterByPromotion(events, entities.PromotionUFC)
	require.Len(t, filtered, 2)
	assert.Equal(t, "u1", filtered[0].EventName)
	assert.Equal(t, "u2", filtered[1].EventName)

	assert.Empty(t, FilterByPromotion(events, entities.PromotionRIZIN))
}

func TestDedupeSources(t *testing.T) {
	citations := []entities.Source{
		{Title: "UFC", URI: "https://ufc.com/events"},
		{Title: "", URI: "https://espn.com/mma"},
		{Title: "UFC again", URI: "https://ufc.com/events"},
		{Title: "no uri", URI: ""},
		{Title: "Sherdog", URI: "https://sherdog.com"},
	}

	sources := DedupeSources(citations)

	assert.Equal(t, []entities.Source{
		{Title: "UFC", URI: "https://ufc.com/events"},
		{Title: "https://espn.com/mma", URI: "https://espn.com/mma"},
		{Title: "Sherdog", URI: "https://sherdog.com"},
	}, sources)
}
