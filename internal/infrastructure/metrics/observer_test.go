package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/fightnight/internal/domain/ports"
)

var _ ports.FetchObserver = (*Observer)(nil)

func TestObserver_ObserveFetch(t *testing.T) {
	o := NewObserver()

	o.ObserveFetch(ports.OutcomeCacheHit, time.Millisecond)
	o.ObserveFetch(ports.OutcomeCacheHit, time.Millisecond)
	o.ObserveFetch(ports.OutcomeDegraded, 3*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(o.fetchTotal.WithLabelValues("cache_hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.fetchTotal.WithLabelValues("degraded")))
	assert.Equal(t, 0.0, testutil.ToFloat64(o.fetchTotal.WithLabelValues("fresh")))
	assert.Equal(t, 0.0, testutil.ToFloat64(o.lastFresh))

	o.ObserveFetch(ports.OutcomeFresh, 20*time.Second)
	assert.Greater(t, testutil.ToFloat64(o.lastFresh), 0.0)
}

func TestObserver_ObserveEvents(t *testing.T) {
	o := NewObserver()

	o.ObserveEvents(7, 3)
	assert.Equal(t, 7.0, testutil.ToFloat64(o.events))
	assert.Equal(t, 3.0, testutil.ToFloat64(o.sources))

	o.ObserveEvents(0, 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(o.events))
}

func TestObserver_Handler(t *testing.T) {
	o := NewObserver()
	o.ObserveFetch(ports.OutcomeUnavailable, time.Second)

	srv := httptest.NewServer(o.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `fightnight_fetch_total{outcome="unavailable"} 1`)
	assert.Contains(t, string(body), "fightnight_fetch_duration_seconds_bucket")
}
