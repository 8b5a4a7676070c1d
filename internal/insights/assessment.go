// internal/insights/assessment.go
// Compatibility analysis for self-assessments

package insights

import (
	"fmt"
	"math"
)

// Assessment holds the fields of a self-assessment the analysis reads.
type Assessment struct {
	Communication             int
	Emotional                 int
	Lifestyle                 int
	ConflictResolution        int
	LongTermPotential         int
	PhysicalAttraction        int
	SharedValues              []string
	CommunicationStyle        string
	PartnerCommunicationStyle string
}

// CommunicationAnalysis describes how two communication styles fit.
// Compatible is "yes", "no" or "somewhat".
type CommunicationAnalysis struct {
	Compatible string `json:"compatible"`
	Message    string `json:"message"`
}

// AssessmentAnalysis is the derived view of an assessment.
type AssessmentAnalysis struct {
	OverallScore  int                    `json:"overallScore"`
	Verbal        string                 `json:"verbal"`
	Communication *CommunicationAnalysis `json:"communication,omitempty"`
	BrutalTruth   string                 `json:"brutalTruth"`
}

// Compatibility answers.
const (
	CompatibleYes      = "yes"
	CompatibleNo       = "no"
	CompatibleSomewhat = "somewhat"
)

var compatibleStyles = [][2]string{
	{"Direct", "Direct"},
	{"Direct", "Analytical"},
	{"Analytical", "Analytical"},
	{"Analytical", "Logical"},
	{"Intuitive", "Intuitive"},
	{"Intuitive", "Emotional"},
	{"Functional", "Functional"},
	{"Functional", "Direct"},
	{"Personal", "Personal"},
	{"Personal", "Receptive"},
	{"Receptive", "Receptive"},
	{"Receptive", "Emotional"},
	{"Emotional", "Emotional"},
	{"Logical", "Logical"},
}

var challengingStyles = [][2]string{
	{"Direct", "Avoidant"},
	{"Logical", "Emotional"},
	{"Analytical", "Intuitive"},
	{"Personal", "Functional"},
}

// OverallScore is the rounded mean of the six sub-scores.
func OverallScore(a Assessment) int {
	sum := a.Communication + a.Emotional + a.Lifestyle +
		a.ConflictResolution + a.LongTermPotential + a.PhysicalAttraction
	return int(math.Round(float64(sum) / 6))
}

// VerbalScore names the compatibility band of an overall score.
func VerbalScore(score int) string {
	switch {
	case score <= 3:
		return "Low Compatibility"
	case score <= 5:
		return "Moderate Compatibility"
	case score <= 7:
		return "Good Compatibility"
	default:
		return "High Compatibility"
	}
}

// AnalyzeCommunication compares two styles. It returns nil when either is
// missing.
func AnalyzeCommunication(yours, theirs string) *CommunicationAnalysis {
	if yours == "" || theirs == "" {
		return nil
	}
	switch {
	case pairIn(compatibleStyles, yours, theirs):
		return &CommunicationAnalysis{
			Compatible: CompatibleYes,
			Message:    fmt.Sprintf("Your %s style is generally compatible with their %s style.", yours, theirs),
		}
	case pairIn(challengingStyles, yours, theirs):
		return &CommunicationAnalysis{
			Compatible: CompatibleNo,
			Message:    fmt.Sprintf("Warning: Your %s style often conflicts with their %s style. This will require significant effort to navigate.", yours, theirs),
		}
	default:
		return &CommunicationAnalysis{
			Compatible: CompatibleSomewhat,
			Message:    fmt.Sprintf("Your %s style and their %s style are somewhat different. This may require extra communication effort.", yours, theirs),
		}
	}
}

func pairIn(pairs [][2]string, a, b string) bool {
	for _, p := range pairs {
		if (p[0] == a && p[1] == b) || (p[0] == b && p[1] == a) {
			return true
		}
	}
	return false
}

// AnalyzeAssessment derives the score, band, style analysis and the
// brutal truth line of an assessment.
func AnalyzeAssessment(a Assessment) AssessmentAnalysis {
	overall := OverallScore(a)
	comm := AnalyzeCommunication(a.CommunicationStyle, a.PartnerCommunicationStyle)
	return AssessmentAnalysis{
		OverallScore:  overall,
		Verbal:        VerbalScore(overall),
		Communication: comm,
		BrutalTruth:   brutalTruth(a, overall, comm),
	}
}

func brutalTruth(a Assessment, overall int, comm *CommunicationAnalysis) string {
	switch {
	case overall <= 4:
		return "You're forcing compatibility where it doesn't exist. This relationship requires too much work for too little reward."
	case comm != nil && comm.Compatible == CompatibleNo:
		return "Your communication styles fundamentally clash. This will be an ongoing source of frustration unless one of you significantly adapts."
	case len(a.SharedValues) <= 1:
		return "You have almost no core values in common. Long-term compatibility is unlikely without shared fundamental beliefs."
	case a.LongTermPotential <= 4:
		return "Even you don't see a future here. Stop wasting both your time on something you know won't last."
	case overall >= 7 && a.ConflictResolution <= 4:
		return "Your inability to resolve conflicts will eventually erode all the good aspects of this relationship."
	case a.PhysicalAttraction >= 8 && a.Communication <= 5 && a.Emotional <= 5:
		return "You're letting physical attraction mask fundamental compatibility issues. This rarely ends well."
	case overall >= 9:
		return "No relationship is this perfect. You're either in the honeymoon phase or not being honest with yourself."
	default:
		return "Be vigilant about the weak areas in your compatibility. They won't fix themselves."
	}
}
