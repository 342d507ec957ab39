// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for transitions.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeConflict = "conflict"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics holds the application collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Transitions         *prometheus.CounterVec
	GenerationFallbacks *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	HTTPRequests        *prometheus.CounterVec
	HTTPPanics          prometheus.Counter
}

// New registers all collectors on a fresh registry, including Go runtime
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "content_card_transitions_total",
			Help: "Content-card workflow steps by outcome.",
		}, []string{"step", "outcome"}),

		GenerationFallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "generation_fallbacks_total",
			Help: "Generator calls answered by the fallback generator.",
		}, []string{"kind"}),

		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by status code.",
		}, []string{"method", "route", "code"}),

		HTTPPanics: f.NewCounter(prometheus.CounterOpts{
			Name: "http_panics_total",
			Help: "Handler panics recovered by the HTTP stack.",
		}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordTransition(step, outcome string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(step, outcome).Inc()
}

func (m *Metrics) RecordFallback(kind string) {
	if m == nil {
		return
	}
	m.GenerationFallbacks.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveHTTP(method, route, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
	m.HTTPRequests.WithLabelValues(method, route, code).Inc()
}

func (m *Metrics) RecordPanic() {
	if m == nil {
		return
	}
	m.HTTPPanics.Inc()
}
