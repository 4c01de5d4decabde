package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"churchconnect/internal/domain"
)

type activityRepository struct {
	DB *sql.DB
}

func NewActivityRepository(db *sql.DB) domain.ActivityRepository {
	return &activityRepository{DB: db}
}

func (r *activityRepository) Create(ctx context.Context, a domain.Activity) error {
	var props sql.NullString
	if a.Properties != nil {
		raw, err := json.Marshal(a.Properties)
		if err != nil {
			return fmt.Errorf("encode activity properties: %w", err)
		}
		props = sql.NullString{String: string(raw), Valid: true}
	}
	var causer sql.NullInt64
	if a.CauserID != nil {
		causer = sql.NullInt64{Int64: *a.CauserID, Valid: true}
	}
	query := `
		INSERT INTO activities (action, subject_type, subject_id, description, causer_id, properties, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query,
		string(a.Action), a.SubjectType, a.SubjectID, a.Description, causer, props, a.CreatedAt,
	)
	return err
}

func (r *activityRepository) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	query := `
		SELECT id, action, subject_type, subject_id, description, causer_id, created_at
		FROM activities
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	activities := make([]domain.Activity, 0, limit)
	for rows.Next() {
		var (
			a      domain.Activity
			action string
			causer sql.NullInt64
		)
		if err := rows.Scan(&a.ID, &action, &a.SubjectType, &a.SubjectID, &a.Description, &causer, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Action = domain.ActivityAction(action)
		if causer.Valid {
			id := causer.Int64
			a.CauserID = &id
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// CountByDay groups by the UTC calendar day of created_at.
func (r *activityRepository) CountByDay(ctx context.Context, since time.Time) (map[string]int, error) {
	query := `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
		FROM activities
		WHERE created_at >= $1
		GROUP BY day
	`
	rows, err := r.DB.QueryContext(ctx, query, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var day string
		var n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, err
		}
		counts[day] = n
	}
	return counts, rows.Err()
}
