// internal/assessment/service.go

package assessment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/imadgeboyega/dating-insights-backend/internal/insights"
)

var (
	ErrAssessmentNotFound = errors.New("assessment not found")
)

// Service defines the assessment service interface
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req *CreateAssessmentRequest) (*AnalyzedAssessment, error)
	List(ctx context.Context, userID uuid.UUID) ([]*AnalyzedAssessment, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*AnalyzedAssessment, error)
	// Raw returns the stored records without analysis
	Raw(ctx context.Context, userID uuid.UUID) ([]*Assessment, error)
}

type service struct {
	repo Repository
}

// NewService creates a new assessment service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req *CreateAssessmentRequest) (*AnalyzedAssessment, error) {
	a := &Assessment{
		ID:                        uuid.New(),
		UserID:                    userID,
		ContactName:               strings.TrimSpace(req.ContactName),
		SharedInterests:           nonNil(req.SharedInterests),
		SharedValues:              nonNil(req.SharedValues),
		Communication:             req.Communication,
		Emotional:                 req.Emotional,
		Lifestyle:                 req.Lifestyle,
		ConflictResolution:        req.ConflictResolution,
		LongTermPotential:         req.LongTermPotential,
		PhysicalAttraction:        req.PhysicalAttraction,
		CommunicationStyle:        req.CommunicationStyle,
		PartnerCommunicationStyle: req.PartnerCommunicationStyle,
		RedFlags:                  req.RedFlags,
		Notes:                     req.Notes,
		CreatedAt:                 time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	analyzed := analyze(a)
	RecordAssessment(analyzed.Analysis)
	return analyzed, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]*AnalyzedAssessment, error) {
	records, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*AnalyzedAssessment, len(records))
	for i, a := range records {
		out[i] = analyze(a)
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, userID, id uuid.UUID) (*AnalyzedAssessment, error) {
	a, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return analyze(a), nil
}

func (s *service) Raw(ctx context.Context, userID uuid.UUID) ([]*Assessment, error) {
	return s.repo.List(ctx, userID)
}

func analyze(a *Assessment) *AnalyzedAssessment {
	return &AnalyzedAssessment{
		Assessment: a,
		Analysis:   insights.AnalyzeAssessment(a.Insight()),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
