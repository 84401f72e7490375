package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for farewatch
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Business Metrics
	ObservationsRecordedTotal prometheus.Counter
	FetchRunsTotal            prometheus.CounterVec
	UpstreamErrorsTotal       prometheus.Counter
	InsightsComputedTotal     prometheus.Counter
	ScanQueueDepth            prometheus.Gauge
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farewatch_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "farewatch_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "farewatch_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		ObservationsRecordedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "farewatch_observations_recorded_total",
				Help: "Total fare observations appended to the store",
			},
		),
		FetchRunsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farewatch_fetch_runs_total",
				Help: "Total orchestrator fetch runs by final status",
			},
			[]string{"status"},
		),
		UpstreamErrorsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "farewatch_upstream_errors_total",
				Help: "Total per-date upstream fetch failures (isolated, non-fatal)",
			},
		),
		InsightsComputedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "farewatch_insights_computed_total",
				Help: "Total insights computed across all derivation calls",
			},
		),
		ScanQueueDepth: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "farewatch_scan_queue_depth",
				Help: "Current number of pending scan requests in the queue",
			},
		),
	}
}
