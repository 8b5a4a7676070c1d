// internal/insights/recommendations.go

package insights

import (
	"fmt"
	"strings"
)

const (
	MsgNeedMoreDates      = "Go on more dates before expecting useful recommendations."
	msgScheduleDay        = "Schedule more dates on %ss - they statistically work better for you."
	msgFocusActivities    = "Focus on these activities: %s. They suit you better."
	msgEndOnRedFlags      = "Immediately end dates when you see these red flags: %s. Stop wasting time."
	MsgMonthBreak         = "Take at least a month-long break from dating. Your judgment is compromised right now."
	MsgOneDatePerWeek     = "Limit yourself to one date per week maximum until your burnout level decreases."
	MsgHonestAboutPast    = "Be brutally honest with yourself about why past relationships ended."
	MsgStopSeekingPerfect = "Stop looking for perfection. It doesn't exist, and neither do you."
)

// GenerateRecommendations turns patterns and the current burnout level into
// growth recommendations.
func GenerateRecommendations(dates []Date, burnoutLevel int) []string {
	patterns, ok := IdentifyPatterns(dates)
	if !ok {
		return []string{MsgNeedMoreDates}
	}

	var recs []string
	if patterns.IdealDayOfWeek != nil {
		recs = append(recs, fmt.Sprintf(msgScheduleDay, patterns.IdealDay))
	}
	if len(patterns.HighestRatedActivities) > 0 {
		recs = append(recs, fmt.Sprintf(msgFocusActivities, strings.Join(patterns.HighestRatedActivities, ", ")))
	}
	if len(patterns.RedFlags) > 0 {
		recs = append(recs, fmt.Sprintf(msgEndOnRedFlags, strings.Join(patterns.RedFlags, ", ")))
	}

	switch {
	case burnoutLevel > BurnoutMonthBreakAbove:
		recs = append(recs, MsgMonthBreak)
	case burnoutLevel > BurnoutSlowDownAbove:
		recs = append(recs, MsgOneDatePerWeek)
	}

	return append(recs, MsgHonestAboutPast, MsgStopSeekingPerfect)
}
