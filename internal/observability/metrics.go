package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "aqdash"

// Metrics holds the Prometheus collectors for loading, reporting and the summary feed.
type Metrics struct {
	DatasetRows         *prometheus.GaugeVec // labels: location
	DatasetLoadDuration prometheus.Histogram

	// Report metrics.
	ReportsComputed prometheus.Counter
	ReportCache     *prometheus.CounterVec // labels: result={hit,miss}
	ReportDuration  prometheus.Histogram
	EmptyViews      prometheus.Counter
	ChartRenders    *prometheus.CounterVec // labels: kind

	// Summary feed metrics.
	SummariesPublished   prometheus.Counter
	SummaryPublishErrors prometheus.Counter
	SummaryFeedRunning   prometheus.Gauge
	SummaryBatchDuration prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.DatasetRows,
		m.DatasetLoadDuration,
		m.ReportsComputed,
		m.ReportCache,
		m.ReportDuration,
		m.EmptyViews,
		m.ChartRenders,
		m.SummariesPublished,
		m.SummaryPublishErrors,
		m.SummaryFeedRunning,
		m.SummaryBatchDuration,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		DatasetRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Rows held in memory per location after load.",
		}, []string{"location"}),
		DatasetLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dataset_load_duration_seconds",
			Help:      "Time taken to load every data file at startup.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		ReportsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_computed_total",
			Help:      "Reports computed from a filtered view.",
		}),
		ReportCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_total",
			Help:      "Report cache lookups by result.",
		}, []string{"result"}),
		ReportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Duration of filtering and aggregating one selection.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		EmptyViews: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_views_total",
			Help:      "Selections that matched no rows.",
		}),
		ChartRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_renders_total",
			Help:      "PNG charts rendered by kind.",
		}, []string{"kind"}),
		SummariesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summaries_published_total",
			Help:      "Monthly summaries written to the sink topic.",
		}),
		SummaryPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summary_publish_errors_total",
			Help:      "Failed summary batch writes.",
		}),
		SummaryFeedRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "summary_feed_running",
			Help:      "1 while the summary feed is publishing, 0 otherwise.",
		}),
		SummaryBatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "summary_batch_duration_seconds",
			Help:      "Duration of one summary batch write.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}
}
