// internal/insights/insights.go
// Rule-based insight messages derived from a user's completed dates

package insights

import (
	"fmt"
	"sort"
	"strings"
)

const (
	MsgNeedMoreData   = "You need more dating experience before getting meaningful insights."
	MsgPoorChoices    = "Your dating choices are consistently poor. Consider being more selective or adjusting your approach."
	MsgMediocreDates  = "You're settling for mediocre dates. Aim higher and be more intentional with your choices."
	msgRedFlags       = "You repeatedly encounter these red flags: %s. Be more aware of these warning signs."
	msgSuccessPattern = "Success pattern: %s. Focus on this more."
	msgIdealDay       = "You tend to have better dates on %ss. Consider scheduling more dates on this day."
	msgBadStreak      = "You had %d bad dates in a row. Consider taking a break to reassess your approach."
)

// Report is the insight view of a user's history. Patterns is nil and
// Message is set when there is not enough data.
type Report struct {
	Message  string       `json:"message,omitempty"`
	Insights []string     `json:"insights"`
	Patterns *Patterns    `json:"patterns"`
	Stats    *ReportStats `json:"stats,omitempty"`
}

// ReportStats summarises the analysed dates.
type ReportStats struct {
	TotalDates           int      `json:"totalDates"`
	AverageRating        float64  `json:"averageRating"`
	GoodDatesPercentage  float64  `json:"goodDatesPercentage"`
	SuccessRate          float64  `json:"successRate"`
	MostCommonActivities []string `json:"mostCommonActivities"`
	CommonRedFlags       []string `json:"commonRedFlags"`
	LongestBadStreak     int      `json:"longestBadStreak"`
}

// GenerateInsights applies the insight rules in order to completed, rated
// dates. The input slice is not modified.
func GenerateInsights(dates []Date) Report {
	patterns, ok := IdentifyPatterns(dates)
	if !ok {
		return Report{Message: MsgNeedMoreData, Insights: []string{}}
	}

	sorted := SortedByTime(dates)
	stats := Aggregate(sorted)
	streak := LongestBadStreak(sorted)

	insights := make([]string, 0, 5)
	switch {
	case stats.AverageRating < PoorAverageBelow:
		insights = append(insights, MsgPoorChoices)
	case stats.AverageRating < MediocreAverageBelow:
		insights = append(insights, MsgMediocreDates)
	}
	if len(patterns.RedFlags) > 0 {
		insights = append(insights, fmt.Sprintf(msgRedFlags, strings.Join(patterns.RedFlags, ", ")))
	}
	if len(patterns.SuccessFactors) > 0 {
		insights = append(insights, fmt.Sprintf(msgSuccessPattern, patterns.SuccessFactors[0]))
	}
	if patterns.IdealDayOfWeek != nil {
		insights = append(insights, fmt.Sprintf(msgIdealDay, patterns.IdealDay))
	}
	if streak >= BadStreakMin {
		insights = append(insights, fmt.Sprintf(msgBadStreak, streak))
	}

	return Report{
		Insights: insights,
		Patterns: patterns,
		Stats: &ReportStats{
			TotalDates:           stats.Count,
			AverageRating:        roundTo(stats.AverageRating, 2),
			GoodDatesPercentage:  roundTo(percentage(patterns.GoodDates, stats.Count), 2),
			SuccessRate:          roundTo(stats.SuccessRate, 2),
			MostCommonActivities: patterns.HighestRatedActivities,
			CommonRedFlags:       patterns.RedFlags,
			LongestBadStreak:     streak,
		},
	}
}

// LongestBadStreak returns the longest run of consecutive bad dates in the
// given order.
func LongestBadStreak(dates []Date) int {
	longest, current := 0, 0
	for _, d := range dates {
		if IsBad(d.Rating) {
			current++
			if current > longest {
				longest = current
			}
			continue
		}
		current = 0
	}
	return longest
}

// SortedByTime returns a copy of dates ordered by ascending time.
func SortedByTime(dates []Date) []Date {
	sorted := make([]Date, len(dates))
	copy(sorted, dates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})
	return sorted
}
