package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"churchconnect/internal/domain"
)

const sermonColumns = `id, title, preacher, category, description, audio_url, is_local, date, duration, version, created_at, updated_at`

type sermonRepository struct {
	DB *sql.DB
}

func NewSermonRepository(db *sql.DB) domain.SermonRepository {
	return &sermonRepository{DB: db}
}

func (r *sermonRepository) Create(ctx context.Context, s *domain.Sermon) (*domain.Sermon, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	rec := s.Record()
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		query := `
			INSERT INTO sermons (title, preacher, category, description, audio_url, is_local, date, duration, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`
		if err := tx.QueryRowContext(ctx, query,
			rec.Title, rec.Preacher, rec.Category, nullString(rec.Description), rec.AudioURL,
			rec.IsLocal, rec.Date, rec.Duration, rec.CreatedAt, rec.UpdatedAt,
		).Scan(&rec.ID); err != nil {
			return err
		}
		return insertSermonTopics(ctx, tx, rec.ID, rec.Topics)
	})
	if err != nil {
		return nil, fmt.Errorf("create sermon: %w", err)
	}
	return domain.RestoreSermon(rec)
}

func (r *sermonRepository) GetByID(ctx context.Context, id int64) (*domain.Sermon, error) {
	query := `SELECT ` + sermonColumns + ` FROM sermons WHERE id = $1`
	rec, err := scanSermon(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	sermons, err := r.attachTopics(ctx, []domain.SermonRecord{rec})
	if err != nil {
		return nil, err
	}
	return sermons[0], nil
}

// List returns sermons newest first. Filters combine with AND.
func (r *sermonRepository) List(ctx context.Context, f domain.SermonFilter) ([]*domain.Sermon, error) {
	var (
		where []string
		args  []any
	)
	if q := strings.TrimSpace(f.Query); q != "" {
		args = append(args, likePattern(q))
		n := len(args)
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR preacher ILIKE $%d OR description ILIKE $%d)", n, n, n))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.TopicID != 0 {
		args = append(args, f.TopicID)
		where = append(where, fmt.Sprintf("EXISTS (SELECT 1 FROM sermon_topics st WHERE st.sermon_id = sermons.id AND st.topic_id = $%d)", len(args)))
	}
	query := `SELECT ` + sermonColumns + ` FROM sermons`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date DESC, id DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var recs []domain.SermonRecord
	for rows.Next() {
		rec, err := scanSermon(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return r.attachTopics(ctx, recs)
}

// Update rewrites the sermon row and its ordered topic association in one
// transaction, only while the stored version still matches s.Version().
func (r *sermonRepository) Update(ctx context.Context, s *domain.Sermon) (*domain.Sermon, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	rec := s.Record()
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		query := `
			UPDATE sermons
			SET title = $1, preacher = $2, category = $3, description = $4, audio_url = $5,
			    is_local = $6, date = $7, duration = $8, updated_at = $9, version = version + 1
			WHERE id = $10 AND version = $11
			RETURNING version
		`
		err := tx.QueryRowContext(ctx, query,
			rec.Title, rec.Preacher, rec.Category, nullString(rec.Description), rec.AudioURL,
			rec.IsLocal, rec.Date, rec.Duration, rec.UpdatedAt, rec.ID, rec.Version,
		).Scan(&rec.Version)
		if errors.Is(err, sql.ErrNoRows) {
			return staleOrMissing(ctx, tx, rec.ID)
		}
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM sermon_topics WHERE sermon_id = $1`, rec.ID); err != nil {
			return err
		}
		return insertSermonTopics(ctx, tx, rec.ID, rec.Topics)
	})
	if err != nil {
		return nil, err
	}
	return domain.RestoreSermon(rec)
}

// staleOrMissing tells a lost version race from a deleted row.
func staleOrMissing(ctx context.Context, tx *sql.Tx, id int64) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM sermons WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}

func (r *sermonRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM sermons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *sermonRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT DISTINCT category FROM sermons ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	categories := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// attachTopics loads the ordered topic names for recs in one query and restores the entities.
func (r *sermonRepository) attachTopics(ctx context.Context, recs []domain.SermonRecord) ([]*domain.Sermon, error) {
	sermons := make([]*domain.Sermon, 0, len(recs))
	if len(recs) == 0 {
		return sermons, nil
	}
	ids := make([]int64, len(recs))
	for i, rec := range recs {
		ids[i] = rec.ID
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT st.sermon_id, t.id, t.name
		FROM sermon_topics st
		JOIN topics t ON t.id = st.topic_id
		WHERE st.sermon_id = ANY($1)
		ORDER BY st.sermon_id, st.position
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	topicsBySermon := make(map[int64][]domain.TopicRef)
	for rows.Next() {
		var sermonID int64
		var ref domain.TopicRef
		if err := rows.Scan(&sermonID, &ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		topicsBySermon[sermonID] = append(topicsBySermon[sermonID], ref)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, rec := range recs {
		rec.Topics = topicsBySermon[rec.ID]
		s, err := domain.RestoreSermon(rec)
		if err != nil {
			return nil, invalidRow("sermon", rec.ID, err)
		}
		sermons = append(sermons, s)
	}
	return sermons, nil
}

func insertSermonTopics(ctx context.Context, tx *sql.Tx, sermonID int64, topics []domain.TopicRef) error {
	for i, ref := range topics {
		if ref.ID == 0 {
			return fmt.Errorf("topic %q has not been stored", ref.Name)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sermon_topics (sermon_id, topic_id, position) VALUES ($1, $2, $3)`,
			sermonID, ref.ID, i,
		); err != nil {
			return err
		}
	}
	return nil
}

func scanSermon(row scanner) (domain.SermonRecord, error) {
	var rec domain.SermonRecord
	var desc sql.NullString
	err := row.Scan(&rec.ID, &rec.Title, &rec.Preacher, &rec.Category, &desc, &rec.AudioURL,
		&rec.IsLocal, &rec.Date, &rec.Duration, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt)
	rec.Description = desc.String
	return rec, err
}
