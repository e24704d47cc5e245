package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/fightnight/internal/application/handlers"
	"github.com/ersonp/fightnight/internal/domain/entities"
	"github.com/ersonp/fightnight/internal/domain/mocks"
	"github.com/ersonp/fightnight/internal/domain/ports"
	"github.com/ersonp/fightnight/internal/domain/services"
	"github.com/ersonp/fightnight/internal/infrastructure/config"
	"github.com/ersonp/fightnight/internal/infrastructure/metrics"
)

func upcoming() *ports.SearchResult {
	now := time.Now().UTC().Truncate(time.Hour)
	return &ports.SearchResult{
		Events: []entities.FightEvent{
			{Promotion: entities.PromotionUFC, EventName: "UFC 320", Date: now.Add(48 * time.Hour)},
			{Promotion: entities.PromotionPFL, EventName: "PFL Europe 3", Date: now.Add(24 * time.Hour)},
			{Promotion: entities.PromotionUFC, EventName: "UFC Fight Night", Date: now.Add(96 * time.Hour)},
		},
		Citations: []entities.Source{{Title: "UFC", URI: "https://ufc.com"}},
	}
}

func newTestServer(t *testing.T, searcher *mocks.EventSearcher) (*Server, *mocks.KVStore) {
	t.Helper()
	store := mocks.NewKVStore()
	observer := metrics.NewObserver()
	fetcher := services.NewFetchOrchestrator(searcher, services.NewEventCache(store), services.WithObserver(observer))
	schedule := handlers.NewScheduleHandler(fetcher)
	return NewServer(config.Default(), schedule, observer.Handler(), nil), store
}

func do(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

type scheduleBody struct {
	Events []struct {
		Promotion string `json:"promotion"`
		EventName string `json:"eventName"`
		LocalDate string `json:"localDate"`
		LocalTime string `json:"localTime"`
	} `json:"events"`
	Promotions []struct {
		Promotion string `json:"promotion"`
		Count     int    `json:"count"`
	} `json:"promotions"`
	Sources []entities.Source `json:"sources"`
	Status  string            `json:"status"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) scheduleBody {
	t.Helper()
	var body scheduleBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestServer_Health(t *testing.T) {
	s, _ := newTestServer(t, &mocks.EventSearcher{})

	rec := do(t, s, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_RequestIDPropagated(t *testing.T) {
	s, _ := newTestServer(t, &mocks.EventSearcher{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestServer_Events(t *testing.T) {
	searcher := &mocks.EventSearcher{Result: upcoming()}
	s, _ := newTestServer(t, searcher)

	rec := do(t, s, http.MethodGet, "/events")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	require.Len(t, body.Events, 3)
	assert.Equal(t, "PFL Europe 3", body.Events[0].EventName)
	assert.Equal(t, "UFC 320", body.Events[1].EventName)
	assert.Contains(t, body.Events[0].LocalTime, "IST")
	assert.Equal(t, "fresh", body.Status)
	assert.Len(t, body.Sources, 1)

	// Second request is served from the cache.
	rec = do(t, s, http.MethodGet, "/events")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cached", decode(t, rec).Status)
	assert.Equal(t, 1, searcher.CallCount())
}

func TestServer_EventsByPromotion(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantCount int
	}{
		{name: "canonical name", query: "UFC", wantCode: http.StatusOK, wantCount: 2},
		{name: "case insensitive", query: "pfl", wantCode: http.StatusOK, wantCount: 1},
		{name: "no events", query: "BKFC", wantCode: http.StatusOK, wantCount: 0},
		{name: "unknown", query: "WWE", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, &mocks.EventSearcher{Result: upcoming()})

			rec := do(t, s, http.MethodGet, "/events?promotion="+tt.query)
			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode != http.StatusOK {
				return
			}

			body := decode(t, rec)
			assert.Len(t, body.Events, tt.wantCount)
			// Counts always cover every promotion with events.
			assert.Len(t, body.Promotions, 2)
		})
	}
}

func TestServer_Promotions(t *testing.T) {
	s, _ := newTestServer(t, &mocks.EventSearcher{Result: upcoming()})

	rec := do(t, s, http.MethodGet, "/promotions")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	require.Len(t, body.Promotions, 2)
	assert.Equal(t, "PFL", body.Promotions[0].Promotion)
	assert.Equal(t, 1, body.Promotions[0].Count)
	assert.Equal(t, "UFC", body.Promotions[1].Promotion)
	assert.Equal(t, 2, body.Promotions[1].Count)
	assert.Empty(t, body.Events)
}

func TestServer_Refresh(t *testing.T) {
	searcher := &mocks.EventSearcher{Result: upcoming()}
	s, _ := newTestServer(t, searcher)

	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/events").Code)

	rec := do(t, s, http.MethodPost, "/refresh")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fresh", decode(t, rec).Status)
	assert.Equal(t, 2, searcher.CallCount())
}

func TestServer_Unavailable(t *testing.T) {
	s, _ := newTestServer(t, &mocks.EventSearcher{Err: errors.New("quota exceeded")})

	rec := do(t, s, http.MethodGet, "/events")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "quota exceeded")
}

func TestServer_StoreFailure(t *testing.T) {
	s, store := newTestServer(t, &mocks.EventSearcher{Err: errors.New("quota exceeded")})
	store.GetErr = errors.New("disk on fire")

	rec := do(t, s, http.MethodGet, "/events")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_Metrics(t *testing.T) {
	s, _ := newTestServer(t, &mocks.EventSearcher{Result: upcoming()})
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/events").Code)

	rec := do(t, s, http.MethodGet, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fightnight_fetch_total")
}
