package coach

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coach_reports_total",
			Help: "Insight and pattern reports served, by whether enough data existed",
		},
		[]string{"kind", "sufficient"},
	)

	decisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coach_decisions_total",
			Help: "Relationship decisions evaluated, by outcome",
		},
		[]string{"decision"},
	)
)

func RecordReport(kind string, sufficient bool) {
	reportsTotal.WithLabelValues(kind, strconv.FormatBool(sufficient)).Inc()
}

func RecordDecision(decision string) {
	decisionsTotal.WithLabelValues(decision).Inc()
}
