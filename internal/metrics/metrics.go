// Package metrics registers the Prometheus instruments for the data layer.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the data-layer instruments. A nil *Metrics is a no-op, so
// pure-logic tests can skip registration entirely.
type Metrics struct {
	probeResults    *prometheus.CounterVec
	fetches         *prometheus.CounterVec
	fallbackServes  prometheus.Counter
	requestDuration *prometheus.HistogramVec
}

// New registers the instruments on reg. A nil registerer gets a private
// registry, which keeps tests isolated from the default one.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	return &Metrics{
		probeResults: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hunter_probe_results_total",
			Help: "Backend reachability probes by outcome.",
		}, []string{"outcome"}),
		fetches: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hunter_resource_fetches_total",
			Help: "Resource fetch completions by resource and data source.",
		}, []string{"resource", "source"}),
		fallbackServes: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "hunter_fallback_serves_total",
			Help: "Responses served from fixture or snapshot data.",
		}),
		requestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hunter_gateway_request_duration_seconds",
			Help:    "Gateway request latencies.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"route", "status"}),
	}
}

// ObserveProbe records one reachability probe outcome.
func (m *Metrics) ObserveProbe(available bool) {
	if m == nil {
		return
	}
	outcome := "available"
	if !available {
		outcome = "unavailable"
	}
	m.probeResults.WithLabelValues(outcome).Inc()
}

// ObserveFetch records a resource fetch completion and its data source.
func (m *Metrics) ObserveFetch(resource, source string) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(resource, source).Inc()
	if source != "live" {
		m.fallbackServes.Inc()
	}
}

// ObserveRequest records one gateway request.
func (m *Metrics) ObserveRequest(route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(route, status).Observe(elapsed.Seconds())
}
