package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// APIMetrics tracks latency and failures per API endpoint.
type APIMetrics struct {
	Latency *prometheus.HistogramVec
	Errors  *prometheus.CounterVec
}

// Register creates the endpoint collectors on reg (the default registerer when nil).
func Register(reg prometheus.Registerer) *APIMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &APIMetrics{
		Latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stratlab",
				Subsystem: "api",
				Name:      "latency_seconds",
				Help:      "Latency of API endpoints",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		Errors: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stratlab",
				Subsystem: "api",
				Name:      "errors_total",
				Help:      "Errors by API endpoint and code",
			},
			[]string{"endpoint", "code"},
		),
	}
}

// Observe records one call of endpoint. A non-empty code counts as a failure.
func (m *APIMetrics) Observe(endpoint string, start time.Time, code string) {
	if m == nil {
		return
	}
	m.Latency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if code != "" {
		m.Errors.WithLabelValues(endpoint, code).Inc()
	}
}
