package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"churchconnect/internal/domain"
)

type topicService struct {
	topics         domain.TopicRepository
	sermons        domain.SermonRepository
	contextTimeout time.Duration
	now            func() time.Time
}

func NewTopicService(topics domain.TopicRepository, sermons domain.SermonRepository, timeout time.Duration) domain.TopicService {
	return &topicService{topics: topics, sermons: sermons, contextTimeout: timeout, now: time.Now}
}

func (s *topicService) List(ctx context.Context) ([]domain.TopicWithCount, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.topics.List(ctx)
}

// Get returns the topic and its live sermon count.
func (s *topicService) Get(ctx context.Context, id int64) (*domain.Topic, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	topic, err := s.topics.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	n, err := s.topics.CountSermons(ctx, id)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count sermons for topic %d: %w", id, err)
	}
	return topic, n, nil
}

// Sermons lists the sermons citing the topic, newest first.
func (s *topicService) Sermons(ctx context.Context, id int64) ([]*domain.Sermon, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.topics.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.sermons.List(ctx, domain.SermonFilter{TopicID: id})
}

// Resolve maps raw names to stored topics, creating missing ones. Names are
// trimmed, blanks dropped, and case-insensitive repeats keep their first spelling.
func (s *topicService) Resolve(ctx context.Context, names []string) ([]domain.TopicRef, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	refs := make([]domain.TopicRef, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		topic, err := domain.NewTopic(name, s.now())
		if err != nil {
			return nil, err
		}
		stored, err := s.topics.GetOrCreateByName(ctx, topic)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve topic %q: %w", name, err)
		}
		refs = append(refs, stored.Ref())
	}
	return refs, nil
}
