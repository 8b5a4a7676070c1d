package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(sqlx.NewDb(db, "sqlmock")), mock
}

var contactCols = []string{"id", "user_id", "name", "phone_number", "status", "tags", "notes",
	"created_at", "updated_at", "avg_rating", "date_count", "last_date_at"}

func TestRunInTx_CommitsAndRollsBack(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET burnout_level = LEAST").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.RunInTx(context.Background(), func(tx TxRepository) error {
		return tx.BumpBurnout(context.Background(), userID)
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()

	err = repo.RunInTx(context.Background(), func(tx TxRepository) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockOrCreateContact(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	userID := uuid.New()
	contactID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO contacts .* ON CONFLICT \\(user_id, name\\) DO NOTHING").
		WithArgs(sqlmock.AnyArg(), userID, "Alex").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .* FROM contacts c WHERE c.user_id = \\$1 AND c.name = \\$2 FOR UPDATE OF c").
		WithArgs(userID, "Alex").
		WillReturnRows(sqlmock.NewRows(contactCols).
			AddRow(contactID.String(), userID.String(), "Alex", "", "interested", "{}", "", now, now, 8.5, 2, now))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM dates WHERE contact_id").
		WithArgs(contactID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectCommit()

	err := repo.RunInTx(context.Background(), func(tx TxRepository) error {
		contact, created, err := tx.LockOrCreateContact(context.Background(), userID, "Alex")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, contactID, contact.ID)
		assert.Equal(t, 8.5, contact.AvgRating)

		n, err := tx.CountContactDates(context.Background(), contact.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestRatedDate_NoneIsNil(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	contactID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("WHERE d.contact_id = \\$1 AND d.status = 'completed' AND d.rating IS NOT NULL\\s+ORDER BY d.date_time DESC, d.created_at DESC\\s+LIMIT 1").
		WithArgs(contactID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	err := repo.RunInTx(context.Background(), func(tx TxRepository) error {
		date, err := tx.LatestRatedDate(context.Background(), contactID)
		assert.Nil(t, date)
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListContacts_Filters(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	userID := uuid.New()

	mock.ExpectQuery("FROM contacts c\\s+WHERE c.user_id = \\$1 AND c.status = \\$2 AND \\$3 = ANY\\(c.tags\\) AND c.name ILIKE \\$4").
		WithArgs(userID, "repeat", "gym", `%50\%%`).
		WillReturnRows(sqlmock.NewRows(contactCols))

	contacts, err := repo.ListContacts(context.Background(), userID, ContactFilter{Status: "repeat", Tag: "gym", Search: "50%"})
	require.NoError(t, err)
	assert.NotNil(t, contacts)
	assert.Empty(t, contacts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateContact_Duplicate(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery("INSERT INTO contacts").WillReturnError(&pq.Error{Code: "23505"})

	err := repo.CreateContact(context.Background(), &Contact{ID: uuid.New(), UserID: uuid.New(), Name: "A", Tags: pq.StringArray{}})
	assert.ErrorIs(t, err, ErrContactExists)
}

func TestDeleteContact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "deleted",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec("DELETE FROM contacts").WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "referenced by dates",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec("DELETE FROM contacts").WillReturnError(&pq.Error{Code: "23503"})
			},
			wantErr: ErrContactHasDates,
		},
		{
			name: "missing",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec("DELETE FROM contacts").WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: ErrContactNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo, mock := newMockRepo(t)
			tt.setup(mock)

			err := repo.DeleteContact(context.Background(), uuid.New(), uuid.New())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpdateContact_BuildsSetClause(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	userID, id := uuid.New(), uuid.New()

	mock.ExpectExec("UPDATE contacts SET status = \\$1, notes = \\$2, updated_at = NOW\\(\\) WHERE id = \\$3 AND user_id = \\$4").
		WithArgs("ghosted", "", id, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateContact(context.Background(), userID, id, &UpdateContactRequest{Status: strPtr("ghosted"), Notes: strPtr("")})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDate_NotFound(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery("FROM dates d JOIN contacts c").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetDate(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrDateNotFound)
}
