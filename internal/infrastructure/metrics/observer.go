// Package metrics exports fetch outcomes as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ersonp/fightnight/internal/domain/ports"
)

// Observer implements ports.FetchObserver.
type Observer struct {
	registry *prometheus.Registry

	fetchTotal    *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	events        prometheus.Gauge
	sources       prometheus.Gauge
	lastFresh     prometheus.Gauge
}

// NewObserver creates an observer with its own registry.
func NewObserver() *Observer {
	o := &Observer{registry: prometheus.NewRegistry()}

	o.fetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fightnight",
		Name:      "fetch_total",
		Help:      "Number of served fetch requests by outcome",
	}, []string{"outcome"})
	o.fetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fightnight",
		Name:      "fetch_duration_seconds",
		Help:      "Time spent serving fetch requests",
		Buckets:   []float64{.005, .05, .5, 2, 5, 10, 30, 60, 120},
	}, []string{"outcome"})
	o.events = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fightnight",
		Name:      "events",
		Help:      "Events in the latest live payload",
	})
	o.sources = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fightnight",
		Name:      "sources",
		Help:      "Citations in the latest live payload",
	})
	o.lastFresh = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fightnight",
		Name:      "last_fresh_fetch_timestamp_seconds",
		Help:      "Unix timestamp of the last successful live fetch",
	})

	o.registry.MustRegister(
		o.fetchTotal, o.fetchDuration,
		o.events, o.sources, o.lastFresh,
	)
	return o
}

// ObserveFetch records one served request.
func (o *Observer) ObserveFetch(outcome ports.FetchOutcome, duration time.Duration) {
	label := string(outcome)
	o.fetchTotal.WithLabelValues(label).Inc()
	o.fetchDuration.WithLabelValues(label).Observe(duration.Seconds())
	if outcome == ports.OutcomeFresh {
		o.lastFresh.SetToCurrentTime()
	}
}

// ObserveEvents records the size of the latest payload.
func (o *Observer) ObserveEvents(events, sources int) {
	o.events.Set(float64(events))
	o.sources.Set(float64(sources))
}

// Handler serves the registry in the Prometheus exposition format.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})
}
