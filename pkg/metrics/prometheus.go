package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal *prometheus.CounterVec
	cacheTotal   *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	alertsFound  *prometheus.GaugeVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendguard_fetches_total",
				Help: "Provider fetch attempts by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		cacheTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendguard_cache_total",
				Help: "Acquisition cache lookups by result",
			},
			[]string{"result"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trendguard_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		alertsFound: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "trendguard_alerts_found",
				Help: "Alerts flagged by the last analysis per symbol",
			},
			[]string{"symbol"},
		),
	}
}

// RecordFetch records a provider fetch attempt outcome.
func (r *Recorder) RecordFetch(source, outcome string) {
	r.fetchesTotal.WithLabelValues(source, outcome).Inc()
}

// RecordCache records an acquisition cache lookup result.
func (r *Recorder) RecordCache(result string) {
	r.cacheTotal.WithLabelValues(result).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordAlerts records how many alerts the last analysis flagged.
func (r *Recorder) RecordAlerts(symbol string, count int) {
	r.alertsFound.WithLabelValues(symbol).Set(float64(count))
}
