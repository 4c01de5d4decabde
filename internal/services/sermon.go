package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"churchconnect/internal/domain"
)

// RecentLimit is the number of sermons and events returned by the "recent" and
// "upcoming" listings.
const RecentLimit = 5

type sermonService struct {
	sermons        domain.SermonRepository
	topics         domain.TopicService
	activity       *activityLog
	contextTimeout time.Duration
	now            func() time.Time
}

// NewSermonService creates a SermonService. Every create, update and delete is
// written to activities; a nil activities repository disables the log.
func NewSermonService(sermons domain.SermonRepository, topics domain.TopicService, activities domain.ActivityRepository, logger *slog.Logger, timeout time.Duration) domain.SermonService {
	return &sermonService{
		sermons:        sermons,
		topics:         topics,
		activity:       newActivityLog(activities, logger),
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *sermonService) List(ctx context.Context) ([]*domain.Sermon, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.sermons.List(ctx, domain.SermonFilter{})
}

func (s *sermonService) Recent(ctx context.Context, limit int) ([]*domain.Sermon, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if limit <= 0 {
		limit = RecentLimit
	}
	return s.sermons.List(ctx, domain.SermonFilter{Limit: limit})
}

// Search matches query against title, preacher and description. An empty query
// lists every sermon.
func (s *sermonService) Search(ctx context.Context, query string) ([]*domain.Sermon, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.sermons.List(ctx, domain.SermonFilter{Query: strings.TrimSpace(query)})
}

func (s *sermonService) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.sermons.Categories(ctx)
}

func (s *sermonService) Get(ctx context.Context, id int64) (*domain.Sermon, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.sermons.GetByID(ctx, id)
}

// Create validates the sermon fields before any topic is resolved, so a rejected
// sermon never creates topics.
func (s *sermonService) Create(ctx context.Context, in domain.SermonInput) (*domain.Sermon, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := s.now()
	attrs := in.Attrs()
	attrs.Topics = nil
	sermon, err := domain.NewSermon(attrs, now)
	if err != nil {
		return nil, err
	}
	if len(in.TopicNames) > 0 {
		refs, err := s.topics.Resolve(ctx, in.TopicNames)
		if err != nil {
			return nil, err
		}
		if err := sermon.Apply(domain.SermonPatch{Topics: refs, ReplaceTopics: true}, now); err != nil {
			return nil, err
		}
	}
	created, err := s.sermons.Create(ctx, sermon)
	if err != nil {
		return nil, fmt.Errorf("failed to create sermon: %w", err)
	}
	s.logActivity(ctx, created, domain.ActivityCreated, now)
	return created, nil
}

// Update applies the non-nil fields of in. Topics are replaced only when
// in.ReplaceTopics is set. A stale in.Version, or a concurrent write between
// load and save, returns domain.ErrConflict.
func (s *sermonService) Update(ctx context.Context, id int64, in domain.SermonInput) (*domain.Sermon, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sermon, err := s.sermons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	patch := in.SermonPatch
	patch.ReplaceTopics = false
	patch.Topics = nil
	if err := sermon.Apply(patch, now); err != nil {
		return nil, err
	}
	if in.ReplaceTopics {
		refs, err := s.topics.Resolve(ctx, in.TopicNames)
		if err != nil {
			return nil, err
		}
		if err := sermon.Apply(domain.SermonPatch{Topics: refs, ReplaceTopics: true}, now); err != nil {
			return nil, err
		}
	}
	updated, err := s.sermons.Update(ctx, sermon)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update sermon %d: %w", id, err)
	}
	s.logActivity(ctx, updated, domain.ActivityUpdated, now)
	return updated, nil
}

func (s *sermonService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sermon, err := s.sermons.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.sermons.Delete(ctx, id); err != nil {
		return err
	}
	s.logActivity(ctx, sermon, domain.ActivityDeleted, s.now())
	return nil
}

func (s *sermonService) logActivity(ctx context.Context, sermon *domain.Sermon, action domain.ActivityAction, now time.Time) {
	p := sermon.Projection()
	s.activity.record(ctx, domain.SubjectSermon, p.ID, p.Title, action, p, now)
}
