package domain

import (
	"context"
	"time"
)

// Event is a scheduled church event. Start/end ordering and the attendee cap are
// cross-field rules, checked whenever either side of the pair is assigned.
type Event struct {
	Timestamps
	id                   int64
	title                string
	description          string
	startDate            time.Time
	endDate              time.Time
	location             string
	imageURL             string
	category             string
	isRecurring          bool
	recurrenceRule       string
	requiresRegistration bool
	maxAttendees         *int
	currentAttendees     int
	version              int
}

// EventAttrs holds the input for NewEvent.
type EventAttrs struct {
	Title                string
	Description          string
	StartDate            time.Time
	EndDate              time.Time
	Location             string
	ImageURL             string
	Category             string
	IsRecurring          bool
	RecurrenceRule       string
	RequiresRegistration bool
	MaxAttendees         *int
	CurrentAttendees     int
}

// EventPatch lists the fields to change in Apply. ClearMaxAttendees removes the
// cap. Version, when set, must equal the stored version.
type EventPatch struct {
	Title                *string
	Description          *string
	StartDate            *time.Time
	EndDate              *time.Time
	Location             *string
	ImageURL             *string
	Category             *string
	IsRecurring          *bool
	RecurrenceRule       *string
	RequiresRegistration *bool
	MaxAttendees         *int
	ClearMaxAttendees    bool
	CurrentAttendees     *int
	Version              *int
}

// EventRecord is the flat storage shape of an Event.
type EventRecord struct {
	ID                   int64
	Title                string
	Description          string
	StartDate            time.Time
	EndDate              time.Time
	Location             string
	ImageURL             string
	Category             string
	IsRecurring          bool
	RecurrenceRule       string
	RequiresRegistration bool
	MaxAttendees         *int
	CurrentAttendees     int
	Version              int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// EventProjection is the canonical JSON view of an Event.
type EventProjection struct {
	ID                   int64   `json:"id"`
	Title                string  `json:"title"`
	Description          *string `json:"description"`
	StartDate            string  `json:"startDate"`
	EndDate              string  `json:"endDate"`
	Location             string  `json:"location"`
	ImageURL             *string `json:"imageUrl"`
	Category             string  `json:"category"`
	IsRecurring          bool    `json:"isRecurring"`
	RecurrenceRule       *string `json:"recurrenceRule"`
	RequiresRegistration bool    `json:"requiresRegistration"`
	MaxAttendees         *int    `json:"maxAttendees"`
	CurrentAttendees     int     `json:"currentAttendees"`
	IsFull               bool    `json:"isFull"`
	Version              int     `json:"version"`
	CreatedAt            string  `json:"createdAt"`
	UpdatedAt            string  `json:"updatedAt"`
}

// NewEvent builds an Event, failing on the first rule violation.
func NewEvent(attrs EventAttrs, now time.Time) (*Event, error) {
	e := &Event{Timestamps: newTimestamps(now), version: 1}
	if err := e.setTitle(attrs.Title); err != nil {
		return nil, err
	}
	if err := e.setSchedule(attrs.StartDate, attrs.EndDate); err != nil {
		return nil, err
	}
	if err := e.setLocation(attrs.Location); err != nil {
		return nil, err
	}
	if err := e.setCategory(attrs.Category); err != nil {
		return nil, err
	}
	if err := e.setAttendance(attrs.CurrentAttendees, attrs.MaxAttendees); err != nil {
		return nil, err
	}
	e.description = attrs.Description
	e.imageURL = attrs.ImageURL
	e.isRecurring = attrs.IsRecurring
	e.recurrenceRule = attrs.RecurrenceRule
	e.requiresRegistration = attrs.RequiresRegistration
	return e, nil
}

// RestoreEvent rebuilds a stored Event, re-checking every rule.
func RestoreEvent(rec EventRecord) (*Event, error) {
	e := &Event{
		Timestamps:           restoreTimestamps(rec.CreatedAt, rec.UpdatedAt),
		id:                   rec.ID,
		title:                rec.Title,
		description:          rec.Description,
		startDate:            rec.StartDate.UTC(),
		endDate:              rec.EndDate.UTC(),
		location:             rec.Location,
		imageURL:             rec.ImageURL,
		category:             rec.Category,
		isRecurring:          rec.IsRecurring,
		recurrenceRule:       rec.RecurrenceRule,
		requiresRegistration: rec.RequiresRegistration,
		maxAttendees:         copyInt(rec.MaxAttendees),
		currentAttendees:     rec.CurrentAttendees,
		version:              rec.Version,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Apply assigns the patch on a copy and keeps it only if every field passes.
// Paired fields are merged with their current counterpart before the
// cross-field rule runs.
func (e *Event) Apply(p EventPatch, now time.Time) error {
	if p.Version != nil && *p.Version != e.version {
		return ErrConflict
	}
	next := *e
	next.maxAttendees = copyInt(e.maxAttendees)
	if p.Title != nil {
		if err := next.setTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.StartDate != nil || p.EndDate != nil {
		start, end := next.startDate, next.endDate
		if p.StartDate != nil {
			start = *p.StartDate
		}
		if p.EndDate != nil {
			end = *p.EndDate
		}
		if err := next.setSchedule(start, end); err != nil {
			return err
		}
	}
	if p.Location != nil {
		if err := next.setLocation(*p.Location); err != nil {
			return err
		}
	}
	if p.Category != nil {
		if err := next.setCategory(*p.Category); err != nil {
			return err
		}
	}
	if p.CurrentAttendees != nil || p.MaxAttendees != nil || p.ClearMaxAttendees {
		current, limit := next.currentAttendees, next.maxAttendees
		if p.CurrentAttendees != nil {
			current = *p.CurrentAttendees
		}
		if p.ClearMaxAttendees {
			limit = nil
		} else if p.MaxAttendees != nil {
			limit = copyInt(p.MaxAttendees)
		}
		if err := next.setAttendance(current, limit); err != nil {
			return err
		}
	}
	if p.Description != nil {
		next.description = *p.Description
	}
	if p.ImageURL != nil {
		next.imageURL = *p.ImageURL
	}
	if p.IsRecurring != nil {
		next.isRecurring = *p.IsRecurring
	}
	if p.RecurrenceRule != nil {
		next.recurrenceRule = *p.RecurrenceRule
	}
	if p.RequiresRegistration != nil {
		next.requiresRegistration = *p.RequiresRegistration
	}
	next.touch(now)
	*e = next
	return nil
}

// Validate implements Validatable.
func (e *Event) Validate() error {
	return firstError(
		validateEventTitle(e.title),
		validateEventSchedule(e.startDate, e.endDate),
		validateEventLocation(e.location),
		validateEventCategory(e.category),
		validateEventAttendance(e.currentAttendees, e.maxAttendees),
	)
}

// ID returns the store-assigned id.
func (e *Event) ID() int64 { return e.id }

// Title returns the event title.
func (e *Event) Title() string { return e.title }

// StartDate returns when the event begins.
func (e *Event) StartDate() time.Time { return e.startDate }

// Location returns where the event takes place.
func (e *Event) Location() string { return e.location }

// Version returns the optimistic concurrency version.
func (e *Event) Version() int { return e.version }

// RequiresRegistration reports whether attendees must register.
func (e *Event) RequiresRegistration() bool { return e.requiresRegistration }

// IsFull reports whether a cap is set and has been reached.
func (e *Event) IsFull() bool {
	return e.maxAttendees != nil && e.currentAttendees >= *e.maxAttendees
}

// Record flattens the Event for storage.
func (e *Event) Record() EventRecord {
	return EventRecord{
		ID:                   e.id,
		Title:                e.title,
		Description:          e.description,
		StartDate:            e.startDate,
		EndDate:              e.endDate,
		Location:             e.location,
		ImageURL:             e.imageURL,
		Category:             e.category,
		IsRecurring:          e.isRecurring,
		RecurrenceRule:       e.recurrenceRule,
		RequiresRegistration: e.requiresRegistration,
		MaxAttendees:         copyInt(e.maxAttendees),
		CurrentAttendees:     e.currentAttendees,
		Version:              e.version,
		CreatedAt:            e.createdAt,
		UpdatedAt:            e.updatedAt,
	}
}

// Projection returns the JSON view, including the derived isFull flag.
func (e *Event) Projection() EventProjection {
	return EventProjection{
		ID:                   e.id,
		Title:                e.title,
		Description:          optionalString(e.description),
		StartDate:            isoTime(e.startDate),
		EndDate:              isoTime(e.endDate),
		Location:             e.location,
		ImageURL:             optionalString(e.imageURL),
		Category:             e.category,
		IsRecurring:          e.isRecurring,
		RecurrenceRule:       optionalString(e.recurrenceRule),
		RequiresRegistration: e.requiresRegistration,
		MaxAttendees:         copyInt(e.maxAttendees),
		CurrentAttendees:     e.currentAttendees,
		IsFull:               e.IsFull(),
		Version:              e.version,
		CreatedAt:            isoTime(e.createdAt),
		UpdatedAt:            isoTime(e.updatedAt),
	}
}

func (e *Event) setTitle(v string) error {
	if err := validateEventTitle(v); err != nil {
		return err
	}
	e.title = v
	return nil
}

func (e *Event) setSchedule(start, end time.Time) error {
	if err := validateEventSchedule(start, end); err != nil {
		return err
	}
	e.startDate, e.endDate = start.UTC(), end.UTC()
	return nil
}

func (e *Event) setLocation(v string) error {
	if err := validateEventLocation(v); err != nil {
		return err
	}
	e.location = v
	return nil
}

func (e *Event) setCategory(v string) error {
	if err := validateEventCategory(v); err != nil {
		return err
	}
	e.category = v
	return nil
}

func (e *Event) setAttendance(current int, limit *int) error {
	if err := validateEventAttendance(current, limit); err != nil {
		return err
	}
	e.currentAttendees, e.maxAttendees = current, copyInt(limit)
	return nil
}

func validateEventTitle(v string) error {
	return Check("title", v, Required("title"), Length("title", 3, 0))
}

func validateEventSchedule(start, end time.Time) error {
	return firstError(
		Check("startDate", start, Required("startDate")),
		Check("endDate", end, Required("endDate"), NotBefore("endDate", "startDate", start)),
	)
}

func validateEventLocation(v string) error {
	return Check("location", v, Required("location"))
}

func validateEventCategory(v string) error {
	return Check("category", v, Required("category"))
}

func validateEventAttendance(current int, limit *int) error {
	return firstError(
		Check("maxAttendees", limit, NonNegative("maxAttendees")),
		Check("currentAttendees", current, NonNegative("currentAttendees"),
			AtMost("currentAttendees", "maxAttendees", limit)),
	)
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

// EventOrder selects the ordering of an event listing.
type EventOrder int

const (
	// OrderRecent sorts by start date, latest first.
	OrderRecent EventOrder = iota
	// OrderUpcoming sorts by start date, earliest first.
	OrderUpcoming
)

// EventFilter narrows an event listing.
type EventFilter struct {
	// StartsAfter keeps events whose start date is strictly later.
	StartsAfter *time.Time
	Order       EventOrder
	// Limit caps the result count; 0 means no limit.
	Limit int
}

// EventRepository stores events.
type EventRepository interface {
	Create(ctx context.Context, e *Event) (*Event, error)
	GetByID(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context, f EventFilter) ([]*Event, error)
	// Update writes e only if the stored version still equals e's version and
	// bumps it; a stale write returns ErrConflict.
	Update(ctx context.Context, e *Event) (*Event, error)
	Delete(ctx context.Context, id int64) error
	// IncrementAttendees adds one attendee in a single guarded write. It returns
	// ErrEventFull when the cap is already reached.
	IncrementAttendees(ctx context.Context, id int64, now time.Time) (*Event, error)
}

// Registration is a request to attend an event.
type Registration struct {
	Name  string
	Email string
}

// Validate checks the registrant fields.
func (r Registration) Validate() error {
	return firstError(
		Check("name", r.Name, Required("name"), Length("name", 2, 0)),
		ValidateEmail(r.Email),
	)
}

// EventService defines the event use cases.
type EventService interface {
	List(ctx context.Context) ([]*Event, error)
	Upcoming(ctx context.Context, limit int) ([]*Event, error)
	Get(ctx context.Context, id int64) (*Event, error)
	Create(ctx context.Context, attrs EventAttrs) (*Event, error)
	Update(ctx context.Context, id int64, patch EventPatch) (*Event, error)
	Delete(ctx context.Context, id int64) error
	Register(ctx context.Context, id int64, reg Registration) (*Event, error)
}
