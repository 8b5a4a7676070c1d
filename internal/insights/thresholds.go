// internal/insights/thresholds.go
// Rating scale and rule thresholds shared by every engine function.
// All ratings are on the 1-10 scale.

package insights

const (
	MinRating = 1
	MaxRating = 10

	// MinSampleSize is the number of completed dates required before
	// pattern analysis or insights are produced.
	MinSampleSize = 3

	// A good date is rated strictly above GoodRatingAbove, a bad one
	// strictly below BadRatingBelow.
	GoodRatingAbove = 7
	BadRatingBelow  = 4

	// SuccessRating is the inclusive lower bound counted by the success rate.
	SuccessRating = 7

	// FrequencyShare is the share of a bucket a tag must appear in to be
	// reported as a pattern.
	FrequencyShare = 0.3

	PoorAverageBelow     = 4.0
	MediocreAverageBelow = 6.0

	BadStreakMin = 3

	// Contact status heuristic bounds (inclusive).
	ContactInterestedAt = 8
	ContactGhostedAt    = 4

	// A logged date rated below BurnoutBumpBelow raises burnout by one.
	BurnoutBumpBelow = 4
	MinBurnout       = 0
	MaxBurnout       = 10

	BurnoutBreakAbove     = 7
	BurnoutIndicatorLimit = 3

	// Recommendation burnout bands.
	BurnoutMonthBreakAbove = 6
	BurnoutSlowDownAbove   = 3

	// MaxSuggestions caps conversation starters and date ideas.
	MaxSuggestions = 5

	// MaxActivityScores caps the per-activity rating table.
	MaxActivityScores = 8
)

// Date statuses.
const (
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Contact statuses.
const (
	ContactNew        = "new"
	ContactInterested = "interested"
	ContactRepeat     = "repeat"
	ContactGhosted    = "ghosted"
)

// IsGood reports whether a rating falls in the good bucket.
func IsGood(rating int) bool { return rating > GoodRatingAbove }

// IsBad reports whether a rating falls in the bad bucket.
func IsBad(rating int) bool { return rating < BadRatingBelow }

// ClampBurnout bounds a burnout level to the valid range.
func ClampBurnout(level int) int {
	if level < MinBurnout {
		return MinBurnout
	}
	if level > MaxBurnout {
		return MaxBurnout
	}
	return level
}
