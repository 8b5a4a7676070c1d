// internal/insights/patterns.go
// Pattern identification over completed dates

package insights

import (
	"sort"
	"time"
)

// Patterns describes what separates a user's good dates from bad ones.
type Patterns struct {
	SuccessFactors         []string        `json:"successFactors"`
	RedFlags               []string        `json:"redFlags"`
	IdealDayOfWeek         *time.Weekday   `json:"-"`
	IdealDay               string          `json:"idealDayOfWeek,omitempty"`
	HighestRatedActivities []string        `json:"highestRatedActivities"`
	ActivityScores         []ActivityScore `json:"activityScores"`
	RatingDistribution     map[int]int     `json:"ratingDistribution"`
	GoodDates              int             `json:"goodDates"`
	BadDates               int             `json:"badDates"`
}

// ActivityScore is the mean rating of dates that included an activity.
type ActivityScore struct {
	Activity      string  `json:"activity"`
	AverageRating float64 `json:"averageRating"`
	Count         int     `json:"count"`
}

// IdentifyPatterns analyses completed dates. It returns false when there
// are fewer than MinSampleSize dates.
func IdentifyPatterns(dates []Date) (*Patterns, bool) {
	if len(dates) < MinSampleSize {
		return nil, false
	}

	var good, bad []Date
	for _, d := range dates {
		switch {
		case IsGood(d.Rating):
			good = append(good, d)
		case IsBad(d.Rating):
			bad = append(bad, d)
		}
	}

	p := &Patterns{
		SuccessFactors:         []string{},
		RedFlags:               []string{},
		HighestRatedActivities: []string{},
		GoodDates:              len(good),
		BadDates:               len(bad),
	}

	if len(good) > 1 {
		for _, activity := range frequentTags(good, func(d Date) []string { return d.Activities }) {
			p.HighestRatedActivities = append(p.HighestRatedActivities, activity)
			p.SuccessFactors = append(p.SuccessFactors, activity+" dates tend to go well for you")
		}
		if day, ok := idealWeekday(good); ok {
			p.IdealDayOfWeek = &day
			p.IdealDay = day.String()
		}
	}

	if len(bad) > 0 {
		p.RedFlags = append(p.RedFlags, frequentTags(bad, func(d Date) []string { return d.RedFlags })...)
	}

	p.ActivityScores = ActivityScores(dates)
	p.RatingDistribution = RatingDistribution(dates)
	return p, true
}

// frequentTags returns, in first-seen order, every tag whose count across
// bucket reaches FrequencyShare of the bucket size.
func frequentTags(bucket []Date, tags func(Date) []string) []string {
	counts := make(map[string]int)
	var order []string
	for _, d := range bucket {
		for _, tag := range tags(d) {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	threshold := float64(len(bucket)) * FrequencyShare
	out := make([]string, 0, len(order))
	for _, tag := range order {
		if float64(counts[tag]) >= threshold {
			out = append(out, tag)
		}
	}
	return out
}

// idealWeekday picks the most frequent weekday, scanning Sunday to Saturday
// so the earliest weekday wins a tie.
func idealWeekday(dates []Date) (time.Weekday, bool) {
	var counts [7]int
	for _, d := range dates {
		counts[d.Time.Weekday()]++
	}

	best, top := time.Weekday(0), 0
	for day := time.Sunday; day <= time.Saturday; day++ {
		if counts[day] > top {
			best, top = day, counts[day]
		}
	}
	return best, top > 0
}

// ActivityScores averages ratings per activity, highest first, capped at
// MaxActivityScores entries.
func ActivityScores(dates []Date) []ActivityScore {
	type acc struct{ sum, n int }
	totals := make(map[string]*acc)
	for _, d := range dates {
		for _, a := range d.Activities {
			t, ok := totals[a]
			if !ok {
				t = &acc{}
				totals[a] = t
			}
			t.sum += d.Rating
			t.n++
		}
	}

	scores := make([]ActivityScore, 0, len(totals))
	for activity, t := range totals {
		scores = append(scores, ActivityScore{
			Activity:      activity,
			AverageRating: roundTo(float64(t.sum)/float64(t.n), 2),
			Count:         t.n,
		})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].AverageRating != scores[j].AverageRating {
			return scores[i].AverageRating > scores[j].AverageRating
		}
		return scores[i].Activity < scores[j].Activity
	})
	if len(scores) > MaxActivityScores {
		scores = scores[:MaxActivityScores]
	}
	return scores
}

// RatingDistribution counts dates per rating value.
func RatingDistribution(dates []Date) map[int]int {
	dist := make(map[int]int)
	for _, d := range dates {
		if d.Rated() {
			dist[d.Rating]++
		}
	}
	return dist
}
