package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchOutcomes *prometheus.CounterVec
	runsTotal     prometheus.Counter
	retryPasses   prometheus.Counter
	runDuration   prometheus.Histogram
	marketRows    prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchOutcomes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wfmarket_fetch_outcomes_total",
				Help: "Total number of per-item fetch outcomes by classification",
			},
			[]string{"outcome"},
		),
		runsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "wfmarket_fetch_runs_total",
				Help: "Total number of market fetch runs started",
			},
		),
		retryPasses: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "wfmarket_fetch_retry_passes_total",
				Help: "Total number of retry passes executed",
			},
		),
		runDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "wfmarket_fetch_run_duration_seconds",
				Help:    "Duration of a full market fetch run in seconds",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
			},
		),
		marketRows: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "wfmarket_market_rows",
				Help: "Number of market rows produced by the most recent run",
			},
		),
	}
}

// RecordFetchOutcome records one per-item fetch classification.
func (r *Recorder) RecordFetchOutcome(outcome string) {
	r.fetchOutcomes.WithLabelValues(outcome).Inc()
}

// RecordRunStarted records a run start.
func (r *Recorder) RecordRunStarted() {
	r.runsTotal.Inc()
}

// RecordRetryPass records a retry pass.
func (r *Recorder) RecordRetryPass() {
	r.retryPasses.Inc()
}

// RecordRunDuration records total run duration in seconds.
func (r *Recorder) RecordRunDuration(seconds float64) {
	r.runDuration.Observe(seconds)
}

// RecordMarketRows records the row count of the latest run.
func (r *Recorder) RecordMarketRows(n int) {
	r.marketRows.Set(float64(n))
}
