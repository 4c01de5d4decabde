package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"churchconnect/internal/domain"
	"churchconnect/internal/metrics"
)

type eventService struct {
	events         domain.EventRepository
	email          domain.EmailService
	activity       *activityLog
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewEventService creates an EventService. email may be nil, in which case
// registrations are stored without a confirmation message. Admin writes are
// recorded in activities unless it is nil.
func NewEventService(events domain.EventRepository, email domain.EmailService, activities domain.ActivityRepository, logger *slog.Logger, timeout time.Duration) domain.EventService {
	return &eventService{
		events:         events,
		email:          email,
		activity:       newActivityLog(activities, logger),
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// List returns every event, latest start first.
func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.events.List(ctx, domain.EventFilter{Order: domain.OrderRecent})
}

// Upcoming returns events starting strictly after now, soonest first.
func (s *eventService) Upcoming(ctx context.Context, limit int) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if limit <= 0 {
		limit = RecentLimit
	}
	now := s.now()
	return s.events.List(ctx, domain.EventFilter{StartsAfter: &now, Order: domain.OrderUpcoming, Limit: limit})
}

func (s *eventService) Get(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.events.GetByID(ctx, id)
}

func (s *eventService) Create(ctx context.Context, attrs domain.EventAttrs) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := domain.NewEvent(attrs, s.now())
	if err != nil {
		return nil, err
	}
	created, err := s.events.Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	s.logActivity(ctx, created, domain.ActivityCreated)
	return created, nil
}

// Update applies patch to the stored event. A patch carrying a stale Version, or
// a concurrent write between load and save, returns domain.ErrConflict.
func (s *eventService) Update(ctx context.Context, id int64, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := event.Apply(patch, s.now()); err != nil {
		return nil, err
	}
	updated, err := s.events.Update(ctx, event)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update event %d: %w", id, err)
	}
	s.logActivity(ctx, updated, domain.ActivityUpdated)
	return updated, nil
}

func (s *eventService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}
	s.logActivity(ctx, event, domain.ActivityDeleted)
	return nil
}

func (s *eventService) logActivity(ctx context.Context, event *domain.Event, action domain.ActivityAction) {
	s.activity.record(ctx, domain.SubjectEvent, event.ID(), event.Title(), action, event.Projection(), s.now())
}

// Register counts one attendee and sends a confirmation email. The seat is kept
// even when the email cannot be sent.
func (s *eventService) Register(ctx context.Context, id int64, reg domain.Registration) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := reg.Validate(); err != nil {
		metrics.EventRegistrations.WithLabelValues("invalid").Inc()
		return nil, err
	}
	event, err := s.events.IncrementAttendees(ctx, id, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrEventFull) {
			metrics.EventRegistrations.WithLabelValues("full").Inc()
		}
		return nil, err
	}
	metrics.EventRegistrations.WithLabelValues("success").Inc()

	if s.email != nil {
		data := &domain.RegistrationEmailData{
			Email:      reg.Email,
			Name:       reg.Name,
			EventTitle: event.Title(),
			StartDate:  event.StartDate().Format("Monday, January 2, 2006 at 3:04 PM MST"),
			Location:   event.Location(),
		}
		if err := s.email.SendRegistrationConfirmation(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "registration confirmation failed", "event_id", id, "err", err)
		}
	}
	return event, nil
}
