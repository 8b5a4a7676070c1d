// internal/profile/models.go

package profile

import (
	"github.com/imadgeboyega/dating-insights-backend/internal/auth"
	"github.com/imadgeboyega/dating-insights-backend/internal/insights"
)

// Profile is the account with its dashboard counters derived from the
// user's dates
type Profile struct {
	*auth.User
	Stats insights.UserStats `json:"stats"`
}

// UpdateProfileRequest is a partial update; nil fields are left unchanged
type UpdateProfileRequest struct {
	DisplayName   *string  `json:"displayName" validate:"omitempty,min=1,max=100"`
	Avatar        *string  `json:"avatar" validate:"omitempty,url,max=500"`
	WeeklyQuota   *int     `json:"weeklyQuota" validate:"omitempty,min=0,max=10"`
	PersonalGoals []string `json:"personalGoals" validate:"omitempty,max=20,dive,max=200"`
	IsAnonymous   *bool    `json:"isAnonymous"`
}

// BurnoutRequest sets the burnout level to an absolute value
type BurnoutRequest struct {
	BurnoutLevel *int `json:"burnoutLevel" validate:"required,min=0,max=10"`
}

// LeaderboardRow is one user's aggregated counters as read from the store
type LeaderboardRow struct {
	DisplayName   string `db:"display_name"`
	Avatar        string `db:"avatar"`
	IsAnonymous   bool   `db:"is_anonymous"`
	BurnoutLevel  int    `db:"burnout_level"`
	WeeklyQuota   int    `db:"weekly_quota"`
	DateCount     int    `db:"date_count"`
	NewNumbers    int    `db:"new_numbers"`
	DatesThisWeek int    `db:"dates_this_week"`
	Variety       int    `db:"variety"`
}
