// internal/profile/service.go

package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/imadgeboyega/dating-insights-backend/internal/insights"
)

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrDisplayNameRequired = errors.New("display name is required")
)

// leaderboardSize bounds how many users are ranked
const leaderboardSize = 100

// DateHistory supplies all of a user's dates
type DateHistory interface {
	History(ctx context.Context, userID uuid.UUID) ([]insights.Date, error)
}

// Service defines the profile service interface
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*Profile, error)
	SetBurnout(ctx context.Context, userID uuid.UUID, level int) (int, error)
	BurnoutLevel(ctx context.Context, userID uuid.UUID) (int, error)
	Leaderboard(ctx context.Context) (*insights.Leaderboards, error)
}

type service struct {
	repo  Repository
	dates DateHistory
	now   func() time.Time
}

// NewService creates a new profile service
func NewService(repo Repository, dates DateHistory) Service {
	return &service{
		repo:  repo,
		dates: dates,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// GetProfile returns the user with counters derived from their dates
func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	dates, err := s.dates.History(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:  user,
		Stats: insights.DeriveUserStats(dates, user.WeeklyQuota, s.now()),
	}, nil
}

// UpdateProfile applies a partial update and returns the fresh profile
func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*Profile, error) {
	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" {
			return nil, ErrDisplayNameRequired
		}
		req.DisplayName = &name
	}

	if err := s.repo.UpdateProfile(ctx, userID, req); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// SetBurnout stores the level clamped to the burnout scale
func (s *service) SetBurnout(ctx context.Context, userID uuid.UUID, level int) (int, error) {
	level = insights.ClampBurnout(level)
	if err := s.repo.SetBurnout(ctx, userID, level); err != nil {
		return 0, err
	}
	return level, nil
}

func (s *service) BurnoutLevel(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.BurnoutLevel(ctx, userID)
}

// Leaderboard ranks users on the anonymised boards
func (s *service) Leaderboard(ctx context.Context) (*insights.Leaderboards, error) {
	rows, err := s.repo.LeaderboardRows(ctx, insights.StartOfWeek(s.now()), leaderboardSize)
	if err != nil {
		return nil, err
	}

	users := make([]insights.LeaderboardUser, len(rows))
	for i, row := range rows {
		users[i] = insights.LeaderboardUser{
			DisplayName:  row.DisplayName,
			Avatar:       row.Avatar,
			IsAnonymous:  row.IsAnonymous,
			BurnoutLevel: row.BurnoutLevel,
			Stats: insights.UserStats{
				DateCount:            row.DateCount,
				NewNumbersCount:      row.NewNumbers,
				CompletionPercentage: insights.CompletionPercentage(row.DatesThisWeek, row.WeeklyQuota),
				DateVariety:          row.Variety,
			},
		}
	}

	boards := insights.RankLeaderboards(users)
	return &boards, nil
}
