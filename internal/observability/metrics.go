package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the report
// pipeline.
type Metrics struct {
	FilesRead     prometheus.Counter
	ReadErrors    prometheus.Counter
	RecordsParsed prometheus.Counter
	YearsSkipped  prometheus.Counter
	PlotsRendered prometheus.Counter

	CacheLookups *prometheus.CounterVec // labels: result={hit,miss}
	ReadDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FilesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars_report",
			Name:      "files_read_total",
			Help:      "Total census files successfully read and parsed.",
		}),
		ReadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars_report",
			Name:      "read_errors_total",
			Help:      "Total census file reads that failed (missing or malformed).",
		}),
		RecordsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars_report",
			Name:      "records_parsed_total",
			Help:      "Total accident rows parsed across all files.",
		}),
		YearsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars_report",
			Name:      "years_skipped_total",
			Help:      "Years dropped from an aggregation because their file could not be read.",
		}),
		PlotsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars_report",
			Name:      "plots_rendered_total",
			Help:      "State maps rendered to disk.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fars_report",
			Name:      "reader_cache_total",
			Help:      "Record reader cache lookups by result.",
		}, []string{"result"}),
		ReadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fars_report",
			Name:      "read_duration_seconds",
			Help:      "Duration of a census file decompress-and-parse.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}

	prometheus.MustRegister(
		m.FilesRead,
		m.ReadErrors,
		m.RecordsParsed,
		m.YearsSkipped,
		m.PlotsRendered,
		m.CacheLookups,
		m.ReadDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FilesRead:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fars_report", Name: "files_read_total"}),
		ReadErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fars_report", Name: "read_errors_total"}),
		RecordsParsed: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fars_report", Name: "records_parsed_total"}),
		YearsSkipped:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fars_report", Name: "years_skipped_total"}),
		PlotsRendered: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fars_report", Name: "plots_rendered_total"}),
		CacheLookups:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "fars_report", Name: "reader_cache_total"}, []string{"result"}),
		ReadDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "fars_report", Name: "read_duration_seconds"}),
	}
}
