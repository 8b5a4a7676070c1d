package journal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	datesLoggedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_dates_logged_total",
			Help: "Total number of dates logged",
		},
		[]string{"status"},
	)

	dateRatings = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "journal_date_ratings",
			Help:    "Distribution of ratings on logged dates",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		},
	)

	contactsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "journal_contacts_created_total",
			Help: "Total number of contacts created",
		},
	)

	burnoutBumpsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "journal_burnout_bumps_total",
			Help: "Total number of burnout increments from bad dates",
		},
	)
)

func RecordDateLogged(date *Date) {
	datesLoggedTotal.WithLabelValues(date.Status).Inc()
	if date.Rating != nil {
		dateRatings.Observe(float64(*date.Rating))
	}
}

func RecordContactCreated() {
	contactsCreatedTotal.Inc()
}

func RecordBurnoutBump() {
	burnoutBumpsTotal.Inc()
}
