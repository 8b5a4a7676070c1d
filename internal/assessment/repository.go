// internal/assessment/repository.go

package assessment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines the assessment repository interface
type Repository interface {
	Create(ctx context.Context, a *Assessment) error
	List(ctx context.Context, userID uuid.UUID) ([]*Assessment, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*Assessment, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const assessmentColumns = `id, user_id, contact_name, shared_interests, shared_values,
	communication, emotional, lifestyle, conflict_resolution, long_term_potential,
	physical_attraction, communication_style, partner_communication_style,
	red_flags, notes, created_at`

// Create inserts an assessment
func (r *postgresRepository) Create(ctx context.Context, a *Assessment) error {
	query := `
		INSERT INTO assessments (` + assessmentColumns + `)
		VALUES (:id, :user_id, :contact_name, :shared_interests, :shared_values,
			:communication, :emotional, :lifestyle, :conflict_resolution, :long_term_potential,
			:physical_attraction, :communication_style, :partner_communication_style,
			:red_flags, :notes, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, a); err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}
	return nil
}

// List returns a user's assessments, newest first
func (r *postgresRepository) List(ctx context.Context, userID uuid.UUID) ([]*Assessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM assessments WHERE user_id = $1 ORDER BY created_at DESC`

	out := []*Assessment{}
	if err := r.db.SelectContext(ctx, &out, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return out, nil
}

// Get returns one assessment owned by the user
func (r *postgresRepository) Get(ctx context.Context, userID, id uuid.UUID) (*Assessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM assessments WHERE id = $1 AND user_id = $2`

	var a Assessment
	if err := r.db.GetContext(ctx, &a, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return &a, nil
}
