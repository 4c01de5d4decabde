package postgres

import (
	"context"
	"database/sql"
	"time"

	"churchconnect/internal/domain"
)

type statsRepository struct {
	DB *sql.DB
}

func NewStatsRepository(db *sql.DB) domain.StatsRepository {
	return &statsRepository{DB: db}
}

// Counts reads every dashboard counter in a single round trip.
func (r *statsRepository) Counts(ctx context.Context, now time.Time) (domain.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM sermons),
			(SELECT COUNT(*) FROM events),
			(SELECT COUNT(*) FROM events WHERE start_date > $1),
			(SELECT COUNT(*) FROM topics),
			(SELECT COUNT(*) FROM admins)
	`
	var s domain.DashboardStats
	err := r.DB.QueryRowContext(ctx, query, now.UTC()).Scan(
		&s.TotalSermons, &s.TotalEvents, &s.UpcomingEvents, &s.TotalTopics, &s.TotalUsers,
	)
	return s, err
}
