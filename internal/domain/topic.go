package domain

import (
	"context"
	"strings"
	"time"
)

// Topic is a shared label cited by sermons. Names are unique across topics,
// compared without surrounding whitespace and case.
type Topic struct {
	Timestamps
	id   int64
	name string
}

// TopicProjection is the canonical JSON view of a Topic.
type TopicProjection struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	SermonCount int    `json:"sermonCount"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// NormalizeTopicName trims the name and checks it against the topic rules.
func NormalizeTopicName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := Check("name", name, Required("name"), Length("name", 2, 100)); err != nil {
		return "", err
	}
	return name, nil
}

// NewTopic builds a Topic from a raw name.
func NewTopic(name string, now time.Time) (*Topic, error) {
	t := &Topic{Timestamps: newTimestamps(now)}
	if err := t.setName(name); err != nil {
		return nil, err
	}
	return t, nil
}

// RestoreTopic rebuilds a stored Topic.
func RestoreTopic(id int64, name string, createdAt, updatedAt time.Time) (*Topic, error) {
	t := &Topic{Timestamps: restoreTimestamps(createdAt, updatedAt), id: id}
	if err := t.setName(name); err != nil {
		return nil, err
	}
	return t, nil
}

// Rename changes the topic name.
func (t *Topic) Rename(name string, now time.Time) error {
	if err := t.setName(name); err != nil {
		return err
	}
	t.touch(now)
	return nil
}

// Validate implements Validatable.
func (t *Topic) Validate() error {
	_, err := NormalizeTopicName(t.name)
	return err
}

// ID returns the store-assigned id.
func (t *Topic) ID() int64 { return t.id }

// Name returns the normalized name.
func (t *Topic) Name() string { return t.name }

// Ref returns the association entry for this topic.
func (t *Topic) Ref() TopicRef { return TopicRef{ID: t.id, Name: t.name} }

// Projection returns the JSON view. sermonCount is supplied by the caller from a
// live count so it is never cached on the entity.
func (t *Topic) Projection(sermonCount int) TopicProjection {
	return TopicProjection{
		ID:          t.id,
		Name:        t.name,
		SermonCount: sermonCount,
		CreatedAt:   isoTime(t.createdAt),
		UpdatedAt:   isoTime(t.updatedAt),
	}
}

func (t *Topic) setName(name string) error {
	normalized, err := NormalizeTopicName(name)
	if err != nil {
		return err
	}
	t.name = normalized
	return nil
}

// TopicWithCount pairs a topic with the number of sermons citing it.
type TopicWithCount struct {
	Topic       *Topic
	SermonCount int
}

// TopicRepository stores topics.
type TopicRepository interface {
	// GetOrCreateByName returns the topic whose name matches ignoring case, or
	// inserts it. It never creates a second row for an existing name.
	GetOrCreateByName(ctx context.Context, t *Topic) (*Topic, error)
	GetByID(ctx context.Context, id int64) (*Topic, error)
	// List returns every topic by name with its live sermon count.
	List(ctx context.Context) ([]TopicWithCount, error)
	CountSermons(ctx context.Context, topicID int64) (int, error)
}

// TopicService defines the topic use cases.
type TopicService interface {
	List(ctx context.Context) ([]TopicWithCount, error)
	Get(ctx context.Context, id int64) (*Topic, int, error)
	Sermons(ctx context.Context, id int64) ([]*Sermon, error)
	Resolve(ctx context.Context, names []string) ([]TopicRef, error)
}
