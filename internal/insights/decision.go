// internal/insights/decision.go
// Relationship decision scoring

package insights

import "fmt"

// Decision outcomes.
const (
	DecisionTakeBreak = "Take a Break"
	DecisionEndIt     = "End It"
	DecisionCaution   = "Proceed with Caution"
	DecisionPursue    = "Worth Pursuing"
)

const (
	endItScoreBelow   = 20
	cautionScoreBelow = 35
	redFlagOverride   = 3
	maxCountedValues  = 5
	maxCountedDates   = 5
)

// DecisionInput describes one relationship being evaluated.
type DecisionInput struct {
	Name              string `json:"name" validate:"required,max=100"`
	Dates             int    `json:"dates" validate:"min=0"`
	RedFlagCount      int    `json:"redFlagCount" validate:"min=0"`
	GreenFlagCount    int    `json:"greenFlagCount" validate:"min=0"`
	EnjoymentLevel    int    `json:"enjoymentLevel" validate:"min=1,max=10"`
	Values            int    `json:"values" validate:"min=1,max=10"`
	BurnoutIndicators int    `json:"burnoutIndicators" validate:"min=0"`
}

// Decision is the outcome of Evaluate. Score is nil when the burnout gate
// short-circuits scoring.
type Decision struct {
	Decision       string `json:"decision"`
	Explanation    string `json:"explanation"`
	Recommendation string `json:"recommendation"`
	Score          *int   `json:"score,omitempty"`
}

// Score computes the weighted relationship score.
func Score(in DecisionInput) int {
	return in.EnjoymentLevel*2 +
		in.GreenFlagCount*3 -
		in.RedFlagCount*5 +
		min(in.Values, maxCountedValues)*3 +
		min(in.Dates, maxCountedDates)*2
}

// Evaluate decides whether to pursue a relationship. The burnout gate is
// checked first, then the red flag override, then the score bands.
func Evaluate(in DecisionInput, burnoutLevel int) Decision {
	if burnoutLevel > BurnoutBreakAbove || in.BurnoutIndicators > BurnoutIndicatorLimit {
		return Decision{
			Decision:       DecisionTakeBreak,
			Explanation:    "You're showing signs of dating burnout. For your mental health, take a complete break from dating for at least a month.",
			Recommendation: "Delete the dating apps, focus on friends and personal growth. Dating will be there when you're ready.",
		}
	}

	score := Score(in)

	if in.RedFlagCount >= redFlagOverride {
		return Decision{
			Decision:       DecisionEndIt,
			Explanation:    fmt.Sprintf("Despite any positives, %s has too many major red flags (%d). You're ignoring what your gut is telling you.", in.Name, in.RedFlagCount),
			Recommendation: "Don't waste more time. End it clearly and directly.",
			Score:          &score,
		}
	}

	switch {
	case score < endItScoreBelow:
		return Decision{
			Decision:       DecisionEndIt,
			Explanation:    fmt.Sprintf("The math doesn't lie. Your compatibility with %s is too low (score: %d/50).", in.Name, score),
			Recommendation: "End it now before you invest more time in something that isn't working.",
			Score:          &score,
		}
	case score < cautionScoreBelow:
		return Decision{
			Decision:       DecisionCaution,
			Explanation:    fmt.Sprintf("Your relationship with %s shows mixed signals (score: %d/50). It could work, but requires careful evaluation.", in.Name, score),
			Recommendation: "Have a direct conversation about your concerns before investing more emotionally.",
			Score:          &score,
		}
	default:
		return Decision{
			Decision:       DecisionPursue,
			Explanation:    fmt.Sprintf("The data suggests strong compatibility with %s (score: %d/50). This has potential.", in.Name, score),
			Recommendation: "Continue investing in this relationship, but maintain awareness of any new red flags.",
			Score:          &score,
		}
	}
}
