// internal/journal/repository.go
// PostgreSQL storage for dates and contacts. Writes that touch a contact
// run inside one transaction holding the contact row lock.

package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines the database operations for the journal
type Repository interface {
	// RunInTx runs fn in a single transaction, committing when fn returns nil.
	RunInTx(ctx context.Context, fn func(tx TxRepository) error) error

	// Dates
	ListDates(ctx context.Context, userID uuid.UUID, filter DateFilter) ([]*Date, error)
	GetDate(ctx context.Context, userID, id uuid.UUID) (*Date, error)
	DeleteDate(ctx context.Context, userID, id uuid.UUID) error
	ListContactDates(ctx context.Context, userID, contactID uuid.UUID) ([]*Date, error)

	// Contacts
	CreateContact(ctx context.Context, contact *Contact) error
	GetContact(ctx context.Context, userID, id uuid.UUID) (*Contact, error)
	ListContacts(ctx context.Context, userID uuid.UUID, filter ContactFilter) ([]*Contact, error)
	UpdateContact(ctx context.Context, userID, id uuid.UUID, req *UpdateContactRequest) error
	DeleteContact(ctx context.Context, userID, id uuid.UUID) error
}

// TxRepository is the set of operations available inside RunInTx
type TxRepository interface {
	LockContact(ctx context.Context, userID, id uuid.UUID) (*Contact, error)
	LockOrCreateContact(ctx context.Context, userID uuid.UUID, name string) (*Contact, bool, error)
	CountContactDates(ctx context.Context, contactID uuid.UUID) (int, error)
	// LatestRatedDate returns nil when the contact has no completed, rated date
	LatestRatedDate(ctx context.Context, contactID uuid.UUID) (*Date, error)
	LockDate(ctx context.Context, userID, id uuid.UUID) (*Date, error)
	InsertDate(ctx context.Context, date *Date) error
	UpdateDate(ctx context.Context, date *Date) error
	SetContactStatus(ctx context.Context, contactID uuid.UUID, status string) error
	BumpBurnout(ctx context.Context, userID uuid.UUID) error
}

type postgresRepository struct {
	db *sqlx.DB
	queries
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db, queries: queries{q: db}}
}

// queries runs statements against either the pool or a transaction
type queries struct {
	q sqlx.ExtContext
}

const dateColumns = `d.id, d.user_id, d.contact_id, c.name AS contact_name, d.date_time,
	d.location, d.notes, d.activities, d.red_flags, d.rating, d.status, d.date_number,
	d.is_new_number, d.follow_up_reminder, d.created_at, d.updated_at`

const contactColumns = `c.id, c.user_id, c.name, c.phone_number, c.status, c.tags, c.notes,
	c.created_at, c.updated_at,
	COALESCE((SELECT ROUND(AVG(d.rating)::numeric, 2)::float8 FROM dates d
		WHERE d.contact_id = c.id AND d.status = 'completed' AND d.rating IS NOT NULL), 0) AS avg_rating,
	(SELECT COUNT(*) FROM dates d WHERE d.contact_id = c.id) AS date_count,
	(SELECT MAX(d.date_time) FROM dates d WHERE d.contact_id = c.id) AS last_date_at`

// RunInTx runs fn inside a transaction
func (r *postgresRepository) RunInTx(ctx context.Context, fn func(tx TxRepository) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&queries{q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Date queries

func (s *queries) ListDates(ctx context.Context, userID uuid.UUID, filter DateFilter) ([]*Date, error) {
	conds := []string{"d.user_id = $1"}
	args := []interface{}{userID}
	argCount := 2

	if filter.Status != "" {
		conds = append(conds, fmt.Sprintf("d.status = $%d", argCount))
		args = append(args, filter.Status)
		argCount++
	}
	if filter.StartDate != nil {
		conds = append(conds, fmt.Sprintf("d.date_time >= $%d", argCount))
		args = append(args, *filter.StartDate)
		argCount++
	}
	if filter.EndDate != nil {
		conds = append(conds, fmt.Sprintf("d.date_time <= $%d", argCount))
		args = append(args, *filter.EndDate)
	}

	query := `SELECT ` + dateColumns + `
		FROM dates d JOIN contacts c ON c.id = d.contact_id
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY d.date_time DESC`

	dates := []*Date{}
	if err := sqlx.SelectContext(ctx, s.q, &dates, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list dates: %w", err)
	}
	return dates, nil
}

func (s *queries) GetDate(ctx context.Context, userID, id uuid.UUID) (*Date, error) {
	return s.getDate(ctx, `SELECT `+dateColumns+`
		FROM dates d JOIN contacts c ON c.id = d.contact_id
		WHERE d.id = $1 AND d.user_id = $2`, id, userID)
}

func (s *queries) LockDate(ctx context.Context, userID, id uuid.UUID) (*Date, error) {
	return s.getDate(ctx, `SELECT `+dateColumns+`
		FROM dates d JOIN contacts c ON c.id = d.contact_id
		WHERE d.id = $1 AND d.user_id = $2
		FOR UPDATE OF d`, id, userID)
}

func (s *queries) getDate(ctx context.Context, query string, args ...interface{}) (*Date, error) {
	var date Date
	if err := sqlx.GetContext(ctx, s.q, &date, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDateNotFound
		}
		return nil, fmt.Errorf("failed to get date: %w", err)
	}
	return &date, nil
}

func (s *queries) ListContactDates(ctx context.Context, userID, contactID uuid.UUID) ([]*Date, error) {
	query := `SELECT ` + dateColumns + `
		FROM dates d JOIN contacts c ON c.id = d.contact_id
		WHERE d.contact_id = $1 AND d.user_id = $2
		ORDER BY d.date_time DESC`

	dates := []*Date{}
	if err := sqlx.SelectContext(ctx, s.q, &dates, query, contactID, userID); err != nil {
		return nil, fmt.Errorf("failed to list contact dates: %w", err)
	}
	return dates, nil
}

func (s *queries) CountContactDates(ctx context.Context, contactID uuid.UUID) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, s.q, &n, `SELECT COUNT(*) FROM dates WHERE contact_id = $1`, contactID); err != nil {
		return 0, fmt.Errorf("failed to count contact dates: %w", err)
	}
	return n, nil
}

func (s *queries) LatestRatedDate(ctx context.Context, contactID uuid.UUID) (*Date, error) {
	date, err := s.getDate(ctx, `SELECT `+dateColumns+`
		FROM dates d JOIN contacts c ON c.id = d.contact_id
		WHERE d.contact_id = $1 AND d.status = 'completed' AND d.rating IS NOT NULL
		ORDER BY d.date_time DESC, d.created_at DESC
		LIMIT 1`, contactID)
	if errors.Is(err, ErrDateNotFound) {
		return nil, nil
	}
	return date, err
}

func (s *queries) InsertDate(ctx context.Context, date *Date) error {
	query := `
		INSERT INTO dates (id, user_id, contact_id, date_time, location, notes, activities,
			red_flags, rating, status, date_number, is_new_number, follow_up_reminder)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`

	err := s.q.QueryRowxContext(ctx, query,
		date.ID, date.UserID, date.ContactID, date.DateTime, date.Location, date.Notes,
		date.Activities, date.RedFlags, date.Rating, date.Status, date.DateNumber,
		date.IsNewNumber, date.FollowUpReminder,
	).Scan(&date.CreatedAt, &date.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert date: %w", err)
	}
	return nil
}

func (s *queries) UpdateDate(ctx context.Context, date *Date) error {
	query := `
		UPDATE dates
		SET date_time = $3, location = $4, notes = $5, activities = $6, red_flags = $7,
			rating = $8, status = $9, is_new_number = $10, follow_up_reminder = $11,
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`

	err := s.q.QueryRowxContext(ctx, query,
		date.ID, date.UserID, date.DateTime, date.Location, date.Notes, date.Activities,
		date.RedFlags, date.Rating, date.Status, date.IsNewNumber, date.FollowUpReminder,
	).Scan(&date.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrDateNotFound
		}
		return fmt.Errorf("failed to update date: %w", err)
	}
	return nil
}

func (s *queries) DeleteDate(ctx context.Context, userID, id uuid.UUID) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM dates WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete date: %w", err)
	}
	return expectAffected(res, ErrDateNotFound)
}

func (s *queries) BumpBurnout(ctx context.Context, userID uuid.UUID) error {
	_, err := s.q.ExecContext(ctx,
		`UPDATE users SET burnout_level = LEAST(burnout_level + 1, 10), updated_at = NOW() WHERE id = $1`,
		userID)
	if err != nil {
		return fmt.Errorf("failed to bump burnout: %w", err)
	}
	return nil
}

// Contact queries

func (s *queries) CreateContact(ctx context.Context, contact *Contact) error {
	query := `
		INSERT INTO contacts (id, user_id, name, phone_number, status, tags, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := s.q.QueryRowxContext(ctx, query,
		contact.ID, contact.UserID, contact.Name, contact.PhoneNumber, contact.Status,
		contact.Tags, contact.Notes,
	).Scan(&contact.CreatedAt, &contact.UpdatedAt)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ErrContactExists
		}
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

func (s *queries) GetContact(ctx context.Context, userID, id uuid.UUID) (*Contact, error) {
	return s.getContact(ctx, `SELECT `+contactColumns+` FROM contacts c WHERE c.id = $1 AND c.user_id = $2`, id, userID)
}

func (s *queries) LockContact(ctx context.Context, userID, id uuid.UUID) (*Contact, error) {
	return s.getContact(ctx, `SELECT `+contactColumns+` FROM contacts c WHERE c.id = $1 AND c.user_id = $2 FOR UPDATE OF c`, id, userID)
}

// LockOrCreateContact finds the user's contact by name, creating it when
// missing, and returns it locked. created reports whether it was inserted.
func (s *queries) LockOrCreateContact(ctx context.Context, userID uuid.UUID, name string) (*Contact, bool, error) {
	res, err := s.q.ExecContext(ctx, `
		INSERT INTO contacts (id, user_id, name, status)
		VALUES ($1, $2, $3, 'new')
		ON CONFLICT (user_id, name) DO NOTHING`,
		uuid.New(), userID, name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create contact: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to create contact: %w", err)
	}

	contact, err := s.getContact(ctx,
		`SELECT `+contactColumns+` FROM contacts c WHERE c.user_id = $1 AND c.name = $2 FOR UPDATE OF c`,
		userID, name)
	if err != nil {
		return nil, false, err
	}
	return contact, n > 0, nil
}

func (s *queries) getContact(ctx context.Context, query string, args ...interface{}) (*Contact, error) {
	var contact Contact
	if err := sqlx.GetContext(ctx, s.q, &contact, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return &contact, nil
}

func (s *queries) ListContacts(ctx context.Context, userID uuid.UUID, filter ContactFilter) ([]*Contact, error) {
	conds := []string{"c.user_id = $1"}
	args := []interface{}{userID}
	argCount := 2

	if filter.Status != "" {
		conds = append(conds, fmt.Sprintf("c.status = $%d", argCount))
		args = append(args, filter.Status)
		argCount++
	}
	if filter.Tag != "" {
		conds = append(conds, fmt.Sprintf("$%d = ANY(c.tags)", argCount))
		args = append(args, filter.Tag)
		argCount++
	}
	if filter.Search != "" {
		conds = append(conds, fmt.Sprintf("c.name ILIKE $%d", argCount))
		args = append(args, "%"+escapeLike(filter.Search)+"%")
	}

	query := `SELECT ` + contactColumns + `
		FROM contacts c
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY c.name ASC`

	contacts := []*Contact{}
	if err := sqlx.SelectContext(ctx, s.q, &contacts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

func (s *queries) UpdateContact(ctx context.Context, userID, id uuid.UUID, req *UpdateContactRequest) error {
	var setClauses []string
	var args []interface{}
	argCount := 1

	if req.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argCount))
		args = append(args, *req.Name)
		argCount++
	}
	if req.PhoneNumber != nil {
		setClauses = append(setClauses, fmt.Sprintf("phone_number = $%d", argCount))
		args = append(args, *req.PhoneNumber)
		argCount++
	}
	if req.Status != nil {
		setClauses = append(setClauses, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *req.Status)
		argCount++
	}
	if req.Tags != nil {
		setClauses = append(setClauses, fmt.Sprintf("tags = $%d", argCount))
		args = append(args, pq.Array(req.Tags))
		argCount++
	}
	if req.Notes != nil {
		setClauses = append(setClauses, fmt.Sprintf("notes = $%d", argCount))
		args = append(args, *req.Notes)
		argCount++
	}
	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(`UPDATE contacts SET %s WHERE id = $%d AND user_id = $%d`,
		strings.Join(setClauses, ", "), argCount, argCount+1)
	args = append(args, id, userID)

	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrContactExists
		}
		return fmt.Errorf("failed to update contact: %w", err)
	}
	return expectAffected(res, ErrContactNotFound)
}

func (s *queries) SetContactStatus(ctx context.Context, contactID uuid.UUID, status string) error {
	_, err := s.q.ExecContext(ctx,
		`UPDATE contacts SET status = $2, updated_at = NOW() WHERE id = $1`, contactID, status)
	if err != nil {
		return fmt.Errorf("failed to set contact status: %w", err)
	}
	return nil
}

// DeleteContact removes a contact. The dates foreign key rejects the delete
// while any date still references it.
func (s *queries) DeleteContact(ctx context.Context, userID, id uuid.UUID) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return ErrContactHasDates
		}
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return expectAffected(res, ErrContactNotFound)
}

func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
