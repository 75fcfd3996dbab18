// Package metrics exposes Prometheus counters for searches, stream decoding
// and upstream failures.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so that several instances can coexist in tests.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	searches       *prometheus.CounterVec
	segments       *prometheus.CounterVec
	upstreamErrors *prometheus.CounterVec
	profiles       *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "people_finder",
			Name:      "searches_total",
			Help:      "Searches by identity type and outcome.",
		}, []string{"identity_type", "outcome"}),
		segments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "people_finder",
			Name:      "stream_segments_total",
			Help:      "Newline-delimited segments seen while decoding search streams, by disposition.",
		}, []string{"disposition"}),
		upstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "people_finder",
			Name:      "upstream_errors_total",
			Help:      "Failed identity API requests by operation and error code.",
		}, []string{"op", "code"}),
		profiles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "people_finder",
			Name:      "profile_fetches_total",
			Help:      "Profile lookups by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.searches, m.segments, m.upstreamErrors, m.profiles)
	return m
}

// Search records the outcome of one search call.
func (m *Metrics) Search(identityType, outcome string) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(identityType, outcome).Inc()
}

// Segments adds n segments with the given disposition (record, malformed, gated, blank, tail).
func (m *Metrics) Segments(disposition string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.segments.WithLabelValues(disposition).Add(float64(n))
}

// UpstreamError records a failed identity API request.
func (m *Metrics) UpstreamError(op, code string) {
	if m == nil {
		return
	}
	m.upstreamErrors.WithLabelValues(op, code).Inc()
}

// Profile records the outcome of one profile lookup.
func (m *Metrics) Profile(outcome string) {
	if m == nil {
		return
	}
	m.profiles.WithLabelValues(outcome).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// SearchCounter returns the counter for one identity type and outcome.
func (m *Metrics) SearchCounter(identityType, outcome string) prometheus.Counter {
	return m.searches.WithLabelValues(identityType, outcome)
}

// ProfileCounter returns the counter for one profile outcome.
func (m *Metrics) ProfileCounter(outcome string) prometheus.Counter {
	return m.profiles.WithLabelValues(outcome)
}
