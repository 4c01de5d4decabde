package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churchconnect/internal/domain"
)

func newTestSermon(t *testing.T, id int64, topics ...domain.TopicRef) *domain.Sermon {
	t.Helper()
	s, err := domain.RestoreSermon(domain.SermonRecord{
		ID: id, Title: "Grace and Truth", Preacher: "John Doe", Category: "Sunday Service",
		AudioURL: "/media/grace.mp3", Date: testNow, Duration: 1800,
		Topics: topics, Version: 2, CreatedAt: testNow, UpdatedAt: testNow,
	})
	require.NoError(t, err)
	return s
}

func TestSermonRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr bool
	}{
		{
			name: "success writes ordered topics",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`INSERT INTO sermons`).
					WithArgs("Grace and Truth", "John Doe", "Sunday Service", nil, "/media/grace.mp3", false, testNow, 1800, testNow, testNow).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
				mock.ExpectExec(`INSERT INTO sermon_topics`).WithArgs(10, 3, 0).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO sermon_topics`).WithArgs(10, 1, 1).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			wantID: 10,
		},
		{
			name: "topic insert failure rolls back",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`INSERT INTO sermons`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
				mock.ExpectExec(`INSERT INTO sermon_topics`).WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewSermonRepository(db)
			created, err := repo.Create(ctx, newTestSermon(t, 0, domain.TopicRef{ID: 3, Name: "Faith"}, domain.TopicRef{ID: 1, Name: "Hope"}))
			require.NoError(t, mock.ExpectationsWereMet())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, created.ID())
			assert.Equal(t, []string{"Faith", "Hope"}, created.Projection().Topics)
		})
	}
}

func TestSermonRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found with topics in position order", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, title, preacher.* FROM sermons WHERE id = \$1`).
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows(sermonCols).
				AddRow(5, "Grace and Truth", "John Doe", "Sunday Service", "About grace", "/media/grace.mp3", true, testNow, 1800, 3, testNow, testNow))
		mock.ExpectQuery(`FROM sermon_topics st`).
			WithArgs(pq.Array([]int64{5})).
			WillReturnRows(sqlmock.NewRows([]string{"sermon_id", "id", "name"}).
				AddRow(5, 2, "Prayer").
				AddRow(5, 1, "Faith"))

		s, err := NewSermonRepository(db).GetByID(ctx, 5)
		require.NoError(t, err)
		p := s.Projection()
		assert.Equal(t, []string{"Prayer", "Faith"}, p.Topics)
		require.NotNil(t, p.Description)
		assert.Equal(t, "About grace", *p.Description)
		assert.True(t, p.IsLocal)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM sermons WHERE id`).WithArgs(99).WillReturnError(sql.ErrNoRows)
		_, err = NewSermonRepository(db).GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid stored row is a server error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM sermons WHERE id`).WithArgs(5).
			WillReturnRows(sqlmock.NewRows(sermonCols).
				AddRow(5, "Grace", "John", "c", nil, "/media/grace.ogg", false, testNow, 10, 1, testNow, testNow))
		mock.ExpectQuery(`FROM sermon_topics`).WillReturnRows(sqlmock.NewRows([]string{"sermon_id", "id", "name"}))

		_, err = NewSermonRepository(db).GetByID(ctx, 5)
		require.Error(t, err)
		assert.False(t, domain.IsValidation(err))
	})
}

func TestSermonRepository_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		filter domain.SermonFilter
		mock   func(mock sqlmock.Sqlmock)
		want   int
	}{
		{
			name:   "search matches title preacher and description",
			filter: domain.SermonFilter{Query: " grace "},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE \(title ILIKE \$1 OR preacher ILIKE \$1 OR description ILIKE \$1\) ORDER BY date DESC`).
					WithArgs("%grace%").
					WillReturnRows(sqlmock.NewRows(sermonCols))
			},
			want: 0,
		},
		{
			name:   "category topic and limit",
			filter: domain.SermonFilter{Category: "Youth", TopicID: 4, Limit: 5},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE category = \$1 AND EXISTS .*topic_id = \$2\) ORDER BY date DESC, id DESC LIMIT \$3`).
					WithArgs("Youth", 4, 5).
					WillReturnRows(sqlmock.NewRows(sermonCols).
						AddRow(8, "Grace and Truth", "John Doe", "Youth", nil, "/a.mp3", false, testNow, 60, 1, testNow, testNow))
				mock.ExpectQuery(`FROM sermon_topics st`).
					WithArgs(pq.Array([]int64{8})).
					WillReturnRows(sqlmock.NewRows([]string{"sermon_id", "id", "name"}).AddRow(8, 4, "Hope"))
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewSermonRepository(db).List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSermonRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("rewrites row and topics in one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE sermons .*version = version \+ 1\s+WHERE id = \$10 AND version = \$11\s+RETURNING version`).
			WithArgs("Grace and Truth", "John Doe", "Sunday Service", sqlmock.AnyArg(), "/media/grace.mp3",
				false, testNow, 1800, testNow, 7, 2).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(3))
		mock.ExpectExec(`DELETE FROM sermon_topics WHERE sermon_id = \$1`).WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`INSERT INTO sermon_topics`).WithArgs(7, 9, 0).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		got, err := NewSermonRepository(db).Update(ctx, newTestSermon(t, 7, domain.TopicRef{ID: 9, Name: "Grace"}))
		require.NoError(t, err)
		assert.Equal(t, 3, got.Version())
		assert.Equal(t, []string{"Grace"}, got.Projection().Topics)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale version is a conflict and leaves topics alone", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE sermons`).WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM sermons WHERE id = \$1\)`).WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		_, err = NewSermonRepository(db).Update(ctx, newTestSermon(t, 7, domain.TopicRef{ID: 9, Name: "Grace"}))
		assert.ErrorIs(t, err, domain.ErrConflict)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE sermons`).WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`SELECT EXISTS`).WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectRollback()

		_, err = NewSermonRepository(db).Update(ctx, newTestSermon(t, 7))
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSermonRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM sermons WHERE id = \$1`).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM sermons WHERE id = \$1`).WithArgs(4).WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewSermonRepository(db)
	require.NoError(t, repo.Delete(ctx, 3))
	assert.ErrorIs(t, repo.Delete(ctx, 4), domain.ErrNotFound)
}

func TestSermonRepository_Categories(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT DISTINCT category FROM sermons ORDER BY category`).
		WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("Bible Study").AddRow("Sunday Service"))

	got, err := NewSermonRepository(db).Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bible Study", "Sunday Service"}, got)
}
