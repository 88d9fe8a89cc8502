// Package metrics exposes the Prometheus collectors for roster mutations
// and HTTP endpoint latency.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the collectors. It satisfies roster.Recorder and is fed
// by the HTTP metrics middleware.
type Metrics struct {
	Mutations       *prometheus.CounterVec
	EndpointLatency *prometheus.HistogramVec
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_mutations_total",
			Help: "Roster mutations by operation and outcome",
		}, []string{"op", "outcome"}),
		EndpointLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roster_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint", "status"}),
	}
}

// Mutation implements roster.Recorder.
func (m *Metrics) Mutation(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Mutations.WithLabelValues(op, outcome).Inc()
}

// ObserveEndpointLatency records the time since start for one request.
// endpoint is the matched route pattern, not the raw path.
func (m *Metrics) ObserveEndpointLatency(method, endpoint, status string, start time.Time) {
	m.EndpointLatency.WithLabelValues(method, endpoint, status).Observe(time.Since(start).Seconds())
}
