package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churchconnect/internal/domain"
)

func TestStatsRepository_Counts(t *testing.T) {
	ctx := context.Background()

	t.Run("reads every counter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT \(SELECT COUNT\(\*\) FROM sermons\)`).
			WithArgs(testNow).
			WillReturnRows(sqlmock.NewRows([]string{"s", "e", "u", "t", "a"}).AddRow(12, 4, 2, 7, 1))

		got, err := NewStatsRepository(db).Counts(ctx, testNow)
		require.NoError(t, err)
		assert.Equal(t, domain.DashboardStats{TotalSermons: 12, TotalEvents: 4, UpcomingEvents: 2, TotalTopics: 7, TotalUsers: 1}, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT`).WillReturnError(sql.ErrConnDone)
		_, err = NewStatsRepository(db).Counts(ctx, testNow)
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}
