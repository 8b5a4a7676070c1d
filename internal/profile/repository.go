// internal/profile/repository.go

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/imadgeboyega/dating-insights-backend/internal/auth"
)

// Repository defines the profile repository interface
type Repository interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*auth.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) error
	SetBurnout(ctx context.Context, userID uuid.UUID, level int) error
	BurnoutLevel(ctx context.Context, userID uuid.UUID) (int, error)
	LeaderboardRows(ctx context.Context, weekStart time.Time, limit int) ([]LeaderboardRow, error)
}

// postgresRepository implements Repository using PostgreSQL
type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// GetUser retrieves the account behind a profile
func (r *postgresRepository) GetUser(ctx context.Context, userID uuid.UUID) (*auth.User, error) {
	var user auth.User
	query := `
		SELECT id, display_name, email, password_hash, google_id, avatar, weekly_quota,
			personal_goals, burnout_level, is_anonymous, created_at, updated_at
		FROM users
		WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &user, nil
}

// UpdateProfile updates a user's profile
func (r *postgresRepository) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) error {
	// Build dynamic update query
	var setClauses []string
	var args []interface{}
	argCount := 1

	if req.DisplayName != nil {
		setClauses = append(setClauses, fmt.Sprintf("display_name = $%d", argCount))
		args = append(args, *req.DisplayName)
		argCount++
	}
	if req.Avatar != nil {
		setClauses = append(setClauses, fmt.Sprintf("avatar = $%d", argCount))
		args = append(args, *req.Avatar)
		argCount++
	}
	if req.WeeklyQuota != nil {
		setClauses = append(setClauses, fmt.Sprintf("weekly_quota = $%d", argCount))
		args = append(args, *req.WeeklyQuota)
		argCount++
	}
	if req.PersonalGoals != nil {
		setClauses = append(setClauses, fmt.Sprintf("personal_goals = $%d", argCount))
		args = append(args, pq.Array(req.PersonalGoals))
		argCount++
	}
	if req.IsAnonymous != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_anonymous = $%d", argCount))
		args = append(args, *req.IsAnonymous)
		argCount++
	}
	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argCount)
	args = append(args, userID)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return expectAffected(res)
}

// SetBurnout stores an absolute burnout level
func (r *postgresRepository) SetBurnout(ctx context.Context, userID uuid.UUID, level int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET burnout_level = $2, updated_at = NOW() WHERE id = $1`, userID, level)
	if err != nil {
		return fmt.Errorf("failed to set burnout: %w", err)
	}
	return expectAffected(res)
}

// BurnoutLevel reads the current burnout level
func (r *postgresRepository) BurnoutLevel(ctx context.Context, userID uuid.UUID) (int, error) {
	var level int
	err := r.db.GetContext(ctx, &level, `SELECT burnout_level FROM users WHERE id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrProfileNotFound
		}
		return 0, fmt.Errorf("failed to get burnout level: %w", err)
	}
	return level, nil
}

// LeaderboardRows aggregates every user's date counters in one pass
func (r *postgresRepository) LeaderboardRows(ctx context.Context, weekStart time.Time, limit int) ([]LeaderboardRow, error) {
	query := `
		SELECT u.display_name, u.avatar, u.is_anonymous, u.burnout_level, u.weekly_quota,
			COUNT(d.id) AS date_count,
			COUNT(d.id) FILTER (WHERE d.is_new_number) AS new_numbers,
			COUNT(d.id) FILTER (WHERE d.created_at >= $1) AS dates_this_week,
			(SELECT COUNT(DISTINCT a.activity)
				FROM dates d2, UNNEST(d2.activities) AS a(activity)
				WHERE d2.user_id = u.id) AS variety
		FROM users u
		LEFT JOIN dates d ON d.user_id = u.id
		GROUP BY u.id
		ORDER BY date_count DESC, u.created_at ASC
		LIMIT $2`

	rows := []LeaderboardRow{}
	if err := r.db.SelectContext(ctx, &rows, query, weekStart, limit); err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return rows, nil
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrProfileNotFound
	}
	return nil
}
