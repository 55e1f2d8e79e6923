package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "marine_bulletin"

// Metrics holds the Prometheus counters, histograms, and gauges for the fetch cycle.
type Metrics struct {
	CyclesTotal      *prometheus.CounterVec // labels: outcome={success,failure}
	CycleDuration    prometheus.Histogram
	LastSuccess      prometheus.Gauge
	PipelineRunning  prometheus.Gauge
	ArtifactsWritten *prometheus.CounterVec // labels: kind={BMS,BMR}, mode={raw,pretty}
	FormatErrors     *prometheus.CounterVec // labels: kind
	FetchRequests    *prometheus.CounterVec // labels: request={cookie,BMS,BMR}, outcome={success,error}
	FetchDuration    *prometheus.HistogramVec
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.CyclesTotal,
		m.CycleDuration,
		m.LastSuccess,
		m.PipelineRunning,
		m.ArtifactsWritten,
		m.FormatErrors,
		m.FetchRequests,
		m.FetchDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// build as many as they need.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		CyclesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Fetch cycles by outcome.",
		}, []string{"outcome"}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Duration of a complete fetch-format-write cycle.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful cycle.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the scheduling loop is active, 0 when shut down.",
		}),
		ArtifactsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_written_total",
			Help:      "Report files written by kind and mode.",
		}, []string{"kind", "mode"}),
		FormatErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "format_errors_total",
			Help:      "Reports that could not be rendered.",
		}, []string{"kind"}),
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_requests_total",
			Help:      "Requests to the content service by request and outcome.",
		}, []string{"request", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Content service request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"request"}),
	}
}
