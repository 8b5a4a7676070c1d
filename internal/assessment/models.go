// internal/assessment/models.go

package assessment

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/imadgeboyega/dating-insights-backend/internal/insights"
)

// Assessment is a stored self-assessment of one person
type Assessment struct {
	ID                        uuid.UUID      `json:"id" db:"id"`
	UserID                    uuid.UUID      `json:"-" db:"user_id"`
	ContactName               string         `json:"contactName" db:"contact_name"`
	SharedInterests           pq.StringArray `json:"sharedInterests" db:"shared_interests"`
	SharedValues              pq.StringArray `json:"sharedValues" db:"shared_values"`
	Communication             int            `json:"communication" db:"communication"`
	Emotional                 int            `json:"emotional" db:"emotional"`
	Lifestyle                 int            `json:"lifestyle" db:"lifestyle"`
	ConflictResolution        int            `json:"conflictResolution" db:"conflict_resolution"`
	LongTermPotential         int            `json:"longTermPotential" db:"long_term_potential"`
	PhysicalAttraction        int            `json:"physicalAttraction" db:"physical_attraction"`
	CommunicationStyle        string         `json:"communicationStyle" db:"communication_style"`
	PartnerCommunicationStyle string         `json:"partnerCommunicationStyle" db:"partner_communication_style"`
	RedFlags                  string         `json:"redFlags" db:"red_flags"`
	Notes                     string         `json:"notes" db:"notes"`
	CreatedAt                 time.Time      `json:"createdAt" db:"created_at"`
}

// Insight converts the record into the analyzer input
func (a *Assessment) Insight() insights.Assessment {
	return insights.Assessment{
		Communication:             a.Communication,
		Emotional:                 a.Emotional,
		Lifestyle:                 a.Lifestyle,
		ConflictResolution:        a.ConflictResolution,
		LongTermPotential:         a.LongTermPotential,
		PhysicalAttraction:        a.PhysicalAttraction,
		SharedValues:              a.SharedValues,
		CommunicationStyle:        a.CommunicationStyle,
		PartnerCommunicationStyle: a.PartnerCommunicationStyle,
	}
}

// AnalyzedAssessment is an assessment together with its derived analysis
type AnalyzedAssessment struct {
	*Assessment
	Analysis insights.AssessmentAnalysis `json:"analysis"`
}

// CreateAssessmentRequest represents the request to record an assessment
type CreateAssessmentRequest struct {
	ContactName               string   `json:"contactName" validate:"required,max=100"`
	SharedInterests           []string `json:"sharedInterests" validate:"omitempty,max=50,dive,max=100"`
	SharedValues              []string `json:"sharedValues" validate:"omitempty,max=50,dive,max=100"`
	Communication             int      `json:"communication" validate:"required,min=1,max=10"`
	Emotional                 int      `json:"emotional" validate:"required,min=1,max=10"`
	Lifestyle                 int      `json:"lifestyle" validate:"required,min=1,max=10"`
	ConflictResolution        int      `json:"conflictResolution" validate:"required,min=1,max=10"`
	LongTermPotential         int      `json:"longTermPotential" validate:"required,min=1,max=10"`
	PhysicalAttraction        int      `json:"physicalAttraction" validate:"required,min=1,max=10"`
	CommunicationStyle        string   `json:"communicationStyle" validate:"omitempty,oneof=Direct Analytical Intuitive Functional Personal Receptive Emotional Logical Avoidant"`
	PartnerCommunicationStyle string   `json:"partnerCommunicationStyle" validate:"omitempty,oneof=Direct Analytical Intuitive Functional Personal Receptive Emotional Logical Avoidant"`
	RedFlags                  string   `json:"redFlags" validate:"max=2000"`
	Notes                     string   `json:"notes" validate:"max=5000"`
}
