// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/ersonp/fightnight/internal/domain/entities"
	"github.com/ersonp/fightnight/internal/domain/services"
)

// ScheduleHandler builds the event schedule view from fetched data.
type ScheduleHandler struct {
	fetcher *services.FetchOrchestrator
	now     func() time.Time
}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler(fetcher *services.FetchOrchestrator) *ScheduleHandler {
	return &ScheduleHandler{
		fetcher: fetcher,
		now:     time.Now,
	}
}

// EventView is a curated event with its start time rendered in IST.
type EventView struct {
	entities.FightEvent
	LocalDate string `json:"localDate"`
	LocalTime string `json:"localTime"`
}

// ScheduleResult contains the curated schedule.
type ScheduleResult struct {
	// Events are the curated events, optionally limited to one promotion.
	Events []EventView `json:"events"`
	// Promotions counts all curated events, regardless of the promotion filter.
	Promotions []services.PromotionCount `json:"promotions"`
	Sources    []entities.Source         `json:"sources"`
	Status     services.FetchStatus      `json:"status"`
	FetchedAt  time.Time                 `json:"fetchedAt"`
}

// Handle fetches events and curates them. An empty promotion selects all.
func (h *ScheduleHandler) Handle(ctx context.Context, promotion entities.Promotion) (*ScheduleResult, error) {
	result, err := h.fetcher.FetchEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}
	return h.build(result, promotion), nil
}

// HandleRefresh is Handle with a forced fetch from the source.
func (h *ScheduleHandler) HandleRefresh(ctx context.Context, promotion entities.Promotion) (*ScheduleResult, error) {
	result, err := h.fetcher.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("refreshing events: %w", err)
	}
	return h.build(result, promotion), nil
}

func (h *ScheduleHandler) build(result *services.FetchResult, promotion entities.Promotion) *ScheduleResult {
	curated := services.Curate(result.Payload.Events, h.now())

	selected := curated
	if promotion != "" {
		selected = services.FilterByPromotion(curated, promotion)
	}

	views := make([]EventView, 0, len(selected))
	for _, e := range selected {
		views = append(views, newEventView(e))
	}

	return &ScheduleResult{
		Events:     views,
		Promotions: services.CountByPromotion(curated),
		Sources:    result.Payload.Sources,
		Status:     result.Status,
		FetchedAt:  result.FetchedAt,
	}
}

// newEventView renders e in IST. Unknown instants render as the TBA sentinel.
func newEventView(e entities.FightEvent) EventView {
	local, _ := services.ToIST(e.Date)
	return EventView{
		FightEvent: e,
		LocalDate:  local.Date,
		LocalTime:  local.Time,
	}
}
