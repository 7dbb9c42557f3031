// Package metrics exposes prometheus counters for the portfolio server.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Adapter labels.
const (
	AdapterQuery    = "query"
	AdapterGreeting = "greeting"
)

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeSkipped  = "skipped"
	OutcomeBusy     = "busy"
	OutcomeFailed   = "failed"
)

type Metrics struct {
	registry   *prometheus.Registry
	aiRequests *prometheus.CounterVec
	plays      *prometheus.CounterVec
	listeners  prometheus.Gauge
}

// New registers the collectors on a private registry so tests can build
// as many instances as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		aiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "devify",
			Name:      "ai_requests_total",
			Help:      "AI adapter invocations by adapter and outcome.",
		}, []string{"adapter", "outcome"}),
		plays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "devify",
			Name:      "plays_total",
			Help:      "Projects played from the track list.",
		}, []string{"project"}),
		listeners: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "devify",
			Name:      "active_listeners",
			Help:      "Listener sessions currently held in memory.",
		}),
	}
	m.registry.MustRegister(
		m.aiRequests,
		m.plays,
		m.listeners,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) AIOutcome(adapter, outcome string) {
	if m == nil {
		return
	}
	m.aiRequests.WithLabelValues(adapter, outcome).Inc()
}

func (m *Metrics) Play(projectID string) {
	if m == nil {
		return
	}
	m.plays.WithLabelValues(projectID).Inc()
}

func (m *Metrics) SetListeners(n int) {
	if m == nil {
		return
	}
	m.listeners.Set(float64(n))
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
