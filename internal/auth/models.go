// internal/auth/models.go
// User account and authentication payloads

package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User represents an account
type User struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	DisplayName   string         `json:"displayName" db:"display_name"`
	Email         string         `json:"email" db:"email"`
	PasswordHash  *string        `json:"-" db:"password_hash"`
	GoogleID      *string        `json:"-" db:"google_id"`
	Avatar        string         `json:"avatar" db:"avatar"`
	WeeklyQuota   int            `json:"weeklyQuota" db:"weekly_quota"`
	PersonalGoals pq.StringArray `json:"personalGoals" db:"personal_goals"`
	BurnoutLevel  int            `json:"burnoutLevel" db:"burnout_level"`
	IsAnonymous   bool           `json:"isAnonymous" db:"is_anonymous"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time      `json:"updatedAt" db:"updated_at"`
}

// RegisterRequest is the payload for creating an account
type RegisterRequest struct {
	DisplayName   string   `json:"displayName" validate:"required,max=100"`
	Email         string   `json:"email" validate:"required,email,max=255"`
	Password      string   `json:"password" validate:"required,min=6,max=72"`
	WeeklyQuota   *int     `json:"weeklyQuota" validate:"omitempty,min=0,max=10"`
	PersonalGoals []string `json:"personalGoals" validate:"max=20,dive,max=200"`
}

// LoginRequest is the payload for email/password login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest carries a Google ID token
type GoogleLoginRequest struct {
	Credential string `json:"credential" validate:"required"`
}

// AuthResponse is returned by every successful login
type AuthResponse struct {
	User      *User     `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// GoogleIdentity is the verified subset of a Google ID token
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}
