package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// swing score pipeline.
type Metrics struct {
	RowsConsumed       prometheus.Counter
	CountiesAggregated prometheus.Counter
	CountiesScored     prometheus.Counter
	StatesProcessed    prometheus.Counter
	StateFailures      prometheus.Counter
	OutOfRangeScores   prometheus.Counter
	PipelineRunning    prometheus.Gauge

	// Batch processing metrics.
	StateProcessingDuration prometheus.Histogram
	SwingScoreDistribution  prometheus.Histogram

	// Tier classification metrics. Labels: tier={S,A,B,C,D}.
	TierAssignments *prometheus.CounterVec
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsConsumed,
		m.CountiesAggregated,
		m.CountiesScored,
		m.StatesProcessed,
		m.StateFailures,
		m.OutOfRangeScores,
		m.PipelineRunning,
		m.StateProcessingDuration,
		m.SwingScoreDistribution,
		m.TierAssignments,
	)
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swing_etl",
			Name:      "rows_consumed_total",
			Help:      "Total raw vote rows read from state CSV files.",
		}),
		CountiesAggregated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swing_etl",
			Name:      "counties_aggregated_total",
			Help:      "Total county-year aggregate rows produced.",
		}),
		CountiesScored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swing_etl",
			Name:      "counties_scored_total",
			Help:      "Total counties that survived the two-year join and were scored.",
		}),
		StatesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swing_etl",
			Name:      "states_processed_total",
			Help:      "Total states scored successfully.",
		}),
		StateFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swing_etl",
			Name:      "state_failures_total",
			Help:      "Total states that failed to score.",
		}),
		OutOfRangeScores: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swing_etl",
			Name:      "out_of_range_scores_total",
			Help:      "Swing scores outside [0,1], indicating mis-weighted input.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "swing_etl",
			Name:      "pipeline_running",
			Help:      "1 while a scoring run is active, 0 otherwise.",
		}),
		StateProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "swing_etl",
			Name:      "state_processing_duration_seconds",
			Help:      "Duration of a complete load-aggregate-score-classify cycle for one state.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		SwingScoreDistribution: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "swing_etl",
			Name:      "swing_score",
			Help:      "Distribution of final swing scores.",
			Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		}),
		TierAssignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swing_etl",
			Name:      "tier_assignments_total",
			Help:      "Counties assigned to each tier.",
		}, []string{"tier"}),
	}
}
