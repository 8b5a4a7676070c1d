// internal/export/metrics.go

package export

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	exportsWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "journal_exports_total",
			Help: "Total number of journal exports written",
		},
	)

	exportsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "journal_export_failures_total",
			Help: "Total number of journal exports the store rejected",
		},
	)

	exportBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "journal_export_bytes",
			Help:    "Size of written journal exports",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
	)
)

// RecordExport records a written export of n bytes
func RecordExport(n int) {
	exportsWritten.Inc()
	exportBytes.Observe(float64(n))
}
