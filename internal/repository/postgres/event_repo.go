package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"churchconnect/internal/domain"
)

const eventColumns = `id, title, description, start_date, end_date, location, image_url, category,
	is_recurring, recurrence_rule, requires_registration, max_attendees, current_attendees,
	version, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	rec := e.Record()
	query := `
		INSERT INTO events (title, description, start_date, end_date, location, image_url, category,
			is_recurring, recurrence_rule, requires_registration, max_attendees, current_attendees,
			version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		rec.Title, nullString(rec.Description), rec.StartDate, rec.EndDate, rec.Location,
		nullString(rec.ImageURL), rec.Category, rec.IsRecurring, nullString(rec.RecurrenceRule),
		rec.RequiresRegistration, nullInt(rec.MaxAttendees), rec.CurrentAttendees,
		rec.Version, rec.CreatedAt, rec.UpdatedAt,
	).Scan(&rec.ID)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return domain.RestoreEvent(rec)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, f domain.EventFilter) ([]*domain.Event, error) {
	var (
		where []string
		args  []any
	)
	if f.StartsAfter != nil {
		args = append(args, *f.StartsAfter)
		where = append(where, fmt.Sprintf("start_date > $%d", len(args)))
	}
	query := `SELECT ` + eventColumns + ` FROM events`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	if f.Order == domain.OrderUpcoming {
		query += ` ORDER BY start_date ASC, id ASC`
	} else {
		query += ` ORDER BY start_date DESC, id DESC`
	}
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Update writes e only when the stored version still matches e.Version() and
// returns the stored event with its bumped version.
func (r *eventRepository) Update(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	rec := e.Record()
	query := `
		UPDATE events
		SET title = $1, description = $2, start_date = $3, end_date = $4, location = $5,
		    image_url = $6, category = $7, is_recurring = $8, recurrence_rule = $9,
		    requires_registration = $10, max_attendees = $11, current_attendees = $12,
		    updated_at = $13, version = version + 1
		WHERE id = $14 AND version = $15
		RETURNING ` + eventColumns
	updated, err := scanEvent(r.DB.QueryRowContext(ctx, query,
		rec.Title, nullString(rec.Description), rec.StartDate, rec.EndDate, rec.Location,
		nullString(rec.ImageURL), rec.Category, rec.IsRecurring, nullString(rec.RecurrenceRule),
		rec.RequiresRegistration, nullInt(rec.MaxAttendees), rec.CurrentAttendees,
		rec.UpdatedAt, rec.ID, rec.Version,
	))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err := r.mustExist(ctx, rec.ID); err != nil {
		return nil, err
	}
	return nil, domain.ErrConflict
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementAttendees adds one attendee unless the cap is reached. The guard and
// the increment are a single statement, so concurrent registrations cannot
// overshoot max_attendees.
func (r *eventRepository) IncrementAttendees(ctx context.Context, id int64, now time.Time) (*domain.Event, error) {
	query := `
		UPDATE events
		SET current_attendees = current_attendees + 1, updated_at = $2, version = version + 1
		WHERE id = $1 AND (max_attendees IS NULL OR current_attendees < max_attendees)
		RETURNING ` + eventColumns
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id, now.UTC()))
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err := r.mustExist(ctx, id); err != nil {
		return nil, err
	}
	return nil, domain.ErrEventFull
}

func (r *eventRepository) mustExist(ctx context.Context, id int64) error {
	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return nil
}

func scanEvent(row scanner) (*domain.Event, error) {
	var (
		rec        domain.EventRecord
		desc       sql.NullString
		imageURL   sql.NullString
		recurrence sql.NullString
		maxAtt     sql.NullInt64
	)
	err := row.Scan(&rec.ID, &rec.Title, &desc, &rec.StartDate, &rec.EndDate, &rec.Location,
		&imageURL, &rec.Category, &rec.IsRecurring, &recurrence, &rec.RequiresRegistration,
		&maxAtt, &rec.CurrentAttendees, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rec.Description = desc.String
	rec.ImageURL = imageURL.String
	rec.RecurrenceRule = recurrence.String
	rec.MaxAttendees = intFromNull(maxAtt)
	e, err := domain.RestoreEvent(rec)
	if err != nil {
		return nil, invalidRow("event", rec.ID, err)
	}
	return e, nil
}
