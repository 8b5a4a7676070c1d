// internal/coach/service.go
// Feedback built from a user's history: insights, patterns with
// recommendations, relationship decisions and suggestions.

package coach

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/imadgeboyega/dating-insights-backend/internal/insights"
)

// DateHistory supplies the user's completed, rated dates, oldest first
type DateHistory interface {
	CompletedHistory(ctx context.Context, userID uuid.UUID) ([]insights.Date, error)
}

// BurnoutReader supplies the user's current burnout level
type BurnoutReader interface {
	BurnoutLevel(ctx context.Context, userID uuid.UUID) (int, error)
}

// PatternsResponse is the patterns view with growth recommendations.
// Patterns is nil and Message set when there is not enough data.
type PatternsResponse struct {
	Message         string             `json:"message,omitempty"`
	Patterns        *insights.Patterns `json:"patterns"`
	Stats           insights.Stats     `json:"stats"`
	Recommendations []string           `json:"recommendations"`
	BurnoutLevel    int                `json:"burnoutLevel"`
}

type Service interface {
	Insights(ctx context.Context, userID uuid.UUID) (*insights.Report, error)
	Patterns(ctx context.Context, userID uuid.UUID) (*PatternsResponse, error)
	EvaluateDecision(ctx context.Context, userID uuid.UUID, in insights.DecisionInput) (*insights.Decision, error)
	ConversationStarters(interests []string) []string
	DateIdeas(prefs insights.DatePreferences) []string
}

type service struct {
	dates   DateHistory
	burnout BurnoutReader

	// guards suggester; the random source is not safe for concurrent use
	mu        sync.Mutex
	suggester *insights.Suggester
}

func NewService(dates DateHistory, burnout BurnoutReader, rnd insights.Rand) Service {
	return &service{
		dates:     dates,
		burnout:   burnout,
		suggester: insights.NewSuggester(rnd),
	}
}

func (s *service) Insights(ctx context.Context, userID uuid.UUID) (*insights.Report, error) {
	dates, err := s.dates.CompletedHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	report := insights.GenerateInsights(dates)
	RecordReport("insights", report.Patterns != nil)
	return &report, nil
}

func (s *service) Patterns(ctx context.Context, userID uuid.UUID) (*PatternsResponse, error) {
	dates, err := s.dates.CompletedHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	level, err := s.burnout.BurnoutLevel(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load burnout level: %w", err)
	}

	resp := &PatternsResponse{
		Stats:           insights.Aggregate(dates),
		Recommendations: insights.GenerateRecommendations(dates, level),
		BurnoutLevel:    level,
	}
	patterns, ok := insights.IdentifyPatterns(dates)
	if ok {
		resp.Patterns = patterns
	} else {
		resp.Message = insights.MsgNeedMoreData
	}

	RecordReport("patterns", ok)
	return resp, nil
}

func (s *service) EvaluateDecision(ctx context.Context, userID uuid.UUID, in insights.DecisionInput) (*insights.Decision, error) {
	level, err := s.burnout.BurnoutLevel(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load burnout level: %w", err)
	}

	decision := insights.Evaluate(in, level)
	RecordDecision(decision.Decision)
	return &decision, nil
}

func (s *service) ConversationStarters(interests []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suggester.ConversationStarters(interests)
}

func (s *service) DateIdeas(prefs insights.DatePreferences) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suggester.DateIdeas(prefs)
}
