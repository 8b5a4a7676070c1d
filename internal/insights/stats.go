// internal/insights/stats.go
// Aggregate statistics over a list of dates

package insights

import (
	"math"
	"time"
)

// Date is the engine's view of a logged date. Rating is 0 when the date
// has not been rated.
type Date struct {
	Time        time.Time
	Rating      int
	Activities  []string
	RedFlags    []string
	DateNumber  int
	IsNewNumber bool
	Status      string
	CreatedAt   time.Time
}

// Rated reports whether the date carries a rating.
func (d Date) Rated() bool { return d.Rating >= MinRating }

// Stats summarises a list of dates.
type Stats struct {
	Count                int     `json:"count"`
	AverageRating        float64 `json:"averageRating"`
	SuccessRate          float64 `json:"successRate"`
	HighestRated         *Date   `json:"-"`
	SecondDateConversion float64 `json:"secondDateConversion"`
}

// Aggregate computes count, mean rating and success rate. An empty list
// yields zero values.
func Aggregate(dates []Date) Stats {
	stats := Stats{Count: len(dates)}
	if len(dates) == 0 {
		return stats
	}

	var sum, successes, firsts, seconds int
	for i := range dates {
		d := &dates[i]
		sum += d.Rating
		if d.Rating >= SuccessRating {
			successes++
		}
		if stats.HighestRated == nil || d.Rating > stats.HighestRated.Rating {
			stats.HighestRated = d
		}
		switch d.DateNumber {
		case 1:
			firsts++
		case 2:
			seconds++
		}
	}

	n := float64(len(dates))
	stats.AverageRating = float64(sum) / n
	stats.SuccessRate = float64(successes) / n * 100
	stats.SecondDateConversion = percentage(seconds, firsts)
	return stats
}

// CompletedRated keeps the completed dates that carry a rating, in order.
func CompletedRated(dates []Date) []Date {
	out := make([]Date, 0, len(dates))
	for _, d := range dates {
		if d.Status == StatusCompleted && d.Rated() {
			out = append(out, d)
		}
	}
	return out
}

// ContactAverage is the mean rating over a contact's completed, rated dates.
func ContactAverage(dates []Date) float64 {
	rated := CompletedRated(dates)
	if len(rated) == 0 {
		return 0
	}
	var sum int
	for _, d := range rated {
		sum += d.Rating
	}
	return roundTo(float64(sum)/float64(len(rated)), 2)
}

// ContactStatus derives a contact's status from its latest rated date. The
// current status is kept when the rating is in the neutral band on a first
// date.
func ContactStatus(current string, latest Date) string {
	if !latest.Rated() {
		return current
	}
	switch {
	case latest.Rating >= ContactInterestedAt:
		return ContactInterested
	case latest.Rating <= ContactGhostedAt:
		return ContactGhosted
	case latest.DateNumber > 1:
		return ContactRepeat
	}
	return current
}

// UserStats are the per-user counters shown on the dashboard and the
// leaderboard. They are always derived from the date list.
type UserStats struct {
	DateCount            int     `json:"dateCount"`
	NewNumbersCount      int     `json:"newNumbersCount"`
	CompletionPercentage float64 `json:"completionPercentage"`
	DateVariety          int     `json:"dateVariety"`
	AverageRating        float64 `json:"averageRating"`
	SuccessRate          float64 `json:"successRate"`
}

// DeriveUserStats computes the dashboard counters. Weekly completion counts
// dates created since the most recent Sunday midnight in now's location.
func DeriveUserStats(dates []Date, weeklyQuota int, now time.Time) UserStats {
	out := UserStats{DateCount: len(dates)}

	weekStart := StartOfWeek(now)
	activities := make(map[string]struct{})
	thisWeek := 0
	for _, d := range dates {
		if d.IsNewNumber {
			out.NewNumbersCount++
		}
		if !d.CreatedAt.Before(weekStart) {
			thisWeek++
		}
		for _, a := range d.Activities {
			activities[a] = struct{}{}
		}
	}
	out.DateVariety = len(activities)

	out.CompletionPercentage = CompletionPercentage(thisWeek, weeklyQuota)

	agg := Aggregate(CompletedRated(dates))
	out.AverageRating = roundTo(agg.AverageRating, 2)
	out.SuccessRate = roundTo(agg.SuccessRate, 2)
	return out
}

// CompletionPercentage is the share of the weekly quota met, capped at 100.
// A zero quota counts as complete.
func CompletionPercentage(datesThisWeek, weeklyQuota int) float64 {
	if weeklyQuota <= 0 {
		return 100
	}
	return roundTo(math.Min(100, percentage(datesThisWeek, weeklyQuota)), 2)
}

// StartOfWeek returns Sunday 00:00 of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(t.Weekday()))
}

func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
