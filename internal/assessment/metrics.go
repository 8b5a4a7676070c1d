// internal/assessment/metrics.go

package assessment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/imadgeboyega/dating-insights-backend/internal/insights"
)

var (
	assessmentsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessments_recorded_total",
			Help: "Total number of assessments recorded, by compatibility band",
		},
		[]string{"verbal"},
	)

	assessmentScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assessment_overall_scores",
			Help:    "Distribution of overall assessment scores",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		},
	)
)

// RecordAssessment records a newly created assessment
func RecordAssessment(analysis insights.AssessmentAnalysis) {
	assessmentsRecorded.WithLabelValues(analysis.Verbal).Inc()
	assessmentScores.Observe(float64(analysis.OverallScore))
}
