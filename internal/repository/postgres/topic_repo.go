package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"churchconnect/internal/domain"
)

type topicRepository struct {
	DB *sql.DB
}

func NewTopicRepository(db *sql.DB) domain.TopicRepository {
	return &topicRepository{DB: db}
}

// GetOrCreateByName inserts t unless a topic with the same lower-cased name
// exists, in which case the stored topic is returned. The unique index on
// lower(name) keeps concurrent callers from creating duplicates.
func (r *topicRepository) GetOrCreateByName(ctx context.Context, t *domain.Topic) (*domain.Topic, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	insert := `
		INSERT INTO topics (name, created_at, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT ((lower(name))) DO NOTHING
		RETURNING id, name, created_at, updated_at
	`
	topic, err := scanTopic(r.DB.QueryRowContext(ctx, insert, t.Name(), t.CreatedAt(), t.UpdatedAt()))
	if err == nil {
		return topic, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	lookup := `SELECT id, name, created_at, updated_at FROM topics WHERE lower(name) = lower($1)`
	topic, err = scanTopic(r.DB.QueryRowContext(ctx, lookup, t.Name()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return topic, nil
}

func (r *topicRepository) GetByID(ctx context.Context, id int64) (*domain.Topic, error) {
	topic, err := scanTopic(r.DB.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM topics WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return topic, nil
}

func (r *topicRepository) List(ctx context.Context) ([]domain.TopicWithCount, error) {
	query := `
		SELECT t.id, t.name, t.created_at, t.updated_at, COUNT(st.sermon_id)
		FROM topics t
		LEFT JOIN sermon_topics st ON st.topic_id = t.id
		GROUP BY t.id
		ORDER BY t.name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	topics := make([]domain.TopicWithCount, 0)
	for rows.Next() {
		var (
			id               int64
			name             string
			created, updated time.Time
			count            int
		)
		if err := rows.Scan(&id, &name, &created, &updated, &count); err != nil {
			return nil, err
		}
		topic, err := domain.RestoreTopic(id, name, created, updated)
		if err != nil {
			return nil, invalidRow("topic", id, err)
		}
		topics = append(topics, domain.TopicWithCount{Topic: topic, SermonCount: count})
	}
	return topics, rows.Err()
}

func (r *topicRepository) CountSermons(ctx context.Context, topicID int64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM sermon_topics WHERE topic_id = $1`, topicID).Scan(&n)
	return n, err
}

func scanTopic(row scanner) (*domain.Topic, error) {
	var (
		id               int64
		name             string
		created, updated time.Time
	)
	if err := row.Scan(&id, &name, &created, &updated); err != nil {
		return nil, err
	}
	topic, err := domain.RestoreTopic(id, name, created, updated)
	if err != nil {
		return nil, invalidRow("topic", id, err)
	}
	return topic, nil
}
