package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements service.Metrics using Prometheus.
type Recorder struct {
	calcTotal        *prometheus.CounterVec
	calcDuration     *prometheus.HistogramVec
	validationTotal  *prometheus.CounterVec
	validationErrors *prometheus.CounterVec
	cacheRequests    *prometheus.CounterVec
}

// New creates a recorder registered on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		calcTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stratlab_calc_total",
				Help: "Indicator calculations by outcome",
			},
			[]string{"indicator", "status"},
		),
		calcDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stratlab_calc_duration_seconds",
				Help:    "Duration of indicator calculations in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"indicator"},
		),
		validationTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stratlab_validation_total",
				Help: "Strategy validations by result",
			},
			[]string{"result"},
		),
		validationErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stratlab_validation_errors_total",
				Help: "Reported strategy validation errors by code",
			},
			[]string{"code"},
		),
		cacheRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stratlab_cache_requests_total",
				Help: "Indicator result cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

// RecordCalc records one indicator calculation.
func (r *Recorder) RecordCalc(indicator, status string, d time.Duration) {
	r.calcTotal.WithLabelValues(indicator, status).Inc()
	r.calcDuration.WithLabelValues(indicator).Observe(d.Seconds())
}

// RecordValidation records a validation outcome and the codes it reported.
func (r *Recorder) RecordValidation(ok bool, codes []string) {
	result := "ok"
	if !ok {
		result = "rejected"
	}
	r.validationTotal.WithLabelValues(result).Inc()
	for _, c := range codes {
		r.validationErrors.WithLabelValues(c).Inc()
	}
}

// RecordCache records a cache lookup result (hit, miss, error).
func (r *Recorder) RecordCache(result string) {
	r.cacheRequests.WithLabelValues(result).Inc()
}
