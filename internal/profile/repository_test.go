package profile

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
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

func TestUpdateProfile_BuildsSetClause(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	userID := uuid.New()
	name := "Sam"
	quota := 3

	mock.ExpectExec(`UPDATE users SET display_name = \$1, weekly_quota = \$2, updated_at = NOW\(\) WHERE id = \$3`).
		WithArgs(name, quota, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateProfile(context.Background(), userID, &UpdateProfileRequest{DisplayName: &name, WeeklyQuota: &quota})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetBurnout_MissingUser(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	userID := uuid.New()

	mock.ExpectExec("UPDATE users SET burnout_level").
		WithArgs(userID, 4).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetBurnout(context.Background(), userID, 4)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestBurnoutLevel(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	userID := uuid.New()

	mock.ExpectQuery("SELECT burnout_level FROM users").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"burnout_level"}).AddRow(7))
	mock.ExpectQuery("SELECT burnout_level FROM users").
		WithArgs(userID).
		WillReturnError(sql.ErrNoRows)

	level, err := repo.BurnoutLevel(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 7, level)

	_, err = repo.BurnoutLevel(context.Background(), userID)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestLeaderboardRows(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	weekStart := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)

	cols := []string{"display_name", "avatar", "is_anonymous", "burnout_level", "weekly_quota",
		"date_count", "new_numbers", "dates_this_week", "variety"}
	mock.ExpectQuery("FROM users u").
		WithArgs(weekStart, leaderboardSize).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("Ada", "", false, 2, 1, 4, 2, 1, 3).
			AddRow("Bo", "", true, 0, 2, 1, 1, 0, 1))

	rows, err := repo.LeaderboardRows(context.Background(), weekStart, leaderboardSize)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, LeaderboardRow{DisplayName: "Ada", BurnoutLevel: 2, WeeklyQuota: 1, DateCount: 4, NewNumbers: 2, DatesThisWeek: 1, Variety: 3}, rows[0])
	assert.True(t, rows[1].IsAnonymous)
}
