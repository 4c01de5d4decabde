package domain

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// TopicRef is one entry of a sermon's ordered topic association.
type TopicRef struct {
	ID   int64
	Name string
}

// Sermon is a recorded message with its ordered topics. All fields are assigned
// through rule-checked setters, so a Sermon value is always valid.
type Sermon struct {
	Timestamps
	id          int64
	title       string
	preacher    string
	category    string
	description string
	audioURL    string
	isLocal     bool
	date        time.Time
	duration    int
	topics      []TopicRef
	version     int
}

// SermonAttrs holds the input for NewSermon. A zero Date defaults to the creation time.
type SermonAttrs struct {
	Title       string
	Preacher    string
	Category    string
	Description string
	AudioURL    string
	IsLocal     bool
	Date        time.Time
	Duration    *int
	Topics      []TopicRef
}

// SermonPatch lists the fields to change in Apply; nil fields are left alone.
// Topics replace the association only when ReplaceTopics is set. Version, when
// set, must equal the stored version.
type SermonPatch struct {
	Title         *string
	Preacher      *string
	Category      *string
	Description   *string
	AudioURL      *string
	IsLocal       *bool
	Date          *time.Time
	Duration      *int
	Topics        []TopicRef
	ReplaceTopics bool
	Version       *int
}

// SermonRecord is the flat storage shape of a Sermon.
type SermonRecord struct {
	ID          int64
	Title       string
	Preacher    string
	Category    string
	Description string
	AudioURL    string
	IsLocal     bool
	Date        time.Time
	Duration    int
	Topics      []TopicRef
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SermonProjection is the canonical JSON view of a Sermon.
type SermonProjection struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Preacher    string   `json:"preacher"`
	Category    string   `json:"category"`
	Description *string  `json:"description"`
	AudioURL    string   `json:"audioUrl"`
	IsLocal     bool     `json:"isLocal"`
	Date        string   `json:"date"`
	Duration    int      `json:"duration"`
	Topics      []string `json:"topics"`
	Version     int      `json:"version"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// NewSermon builds a Sermon, assigning fields in declaration order and failing on
// the first rule violation.
func NewSermon(attrs SermonAttrs, now time.Time) (*Sermon, error) {
	s := &Sermon{Timestamps: newTimestamps(now), version: 1}
	date := attrs.Date
	if date.IsZero() {
		date = now
	}
	if err := firstError(
		s.setTitle(attrs.Title),
		s.setPreacher(attrs.Preacher),
		s.setCategory(attrs.Category),
		s.setAudioURL(attrs.AudioURL),
		s.setDuration(attrs.Duration),
	); err != nil {
		return nil, err
	}
	s.description = attrs.Description
	s.isLocal = attrs.IsLocal
	s.date = date.UTC()
	s.setTopics(attrs.Topics)
	return s, nil
}

// RestoreSermon rebuilds a stored Sermon, re-checking every rule.
func RestoreSermon(rec SermonRecord) (*Sermon, error) {
	s := &Sermon{
		Timestamps:  restoreTimestamps(rec.CreatedAt, rec.UpdatedAt),
		id:          rec.ID,
		title:       rec.Title,
		preacher:    rec.Preacher,
		category:    rec.Category,
		description: rec.Description,
		audioURL:    rec.AudioURL,
		isLocal:     rec.IsLocal,
		date:        rec.Date.UTC(),
		duration:    rec.Duration,
		version:     rec.Version,
	}
	s.setTopics(rec.Topics)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply assigns the patch on a copy and keeps it only if every field passes.
func (s *Sermon) Apply(p SermonPatch, now time.Time) error {
	if p.Version != nil && *p.Version != s.version {
		return ErrConflict
	}
	next := *s
	next.topics = append([]TopicRef(nil), s.topics...)
	if p.Title != nil {
		if err := next.setTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Preacher != nil {
		if err := next.setPreacher(*p.Preacher); err != nil {
			return err
		}
	}
	if p.Category != nil {
		if err := next.setCategory(*p.Category); err != nil {
			return err
		}
	}
	if p.AudioURL != nil {
		if err := next.setAudioURL(*p.AudioURL); err != nil {
			return err
		}
	}
	if p.Duration != nil {
		if err := next.setDuration(p.Duration); err != nil {
			return err
		}
	}
	if p.Description != nil {
		next.description = *p.Description
	}
	if p.IsLocal != nil {
		next.isLocal = *p.IsLocal
	}
	if p.Date != nil && !p.Date.IsZero() {
		next.date = p.Date.UTC()
	}
	if p.ReplaceTopics {
		next.setTopics(p.Topics)
	}
	next.touch(now)
	*s = next
	return nil
}

// Validate implements Validatable.
func (s *Sermon) Validate() error {
	return firstError(
		validateSermonTitle(s.title),
		validateSermonPreacher(s.preacher),
		validateSermonCategory(s.category),
		validateSermonAudioURL(s.audioURL),
		validateSermonDuration(&s.duration),
	)
}

// ID returns the store-assigned id, 0 before the first save.
func (s *Sermon) ID() int64 { return s.id }

// Version returns the optimistic concurrency version.
func (s *Sermon) Version() int { return s.version }

// Topics returns a copy of the ordered topic association.
func (s *Sermon) Topics() []TopicRef {
	return append([]TopicRef(nil), s.topics...)
}

// Record flattens the Sermon for storage.
func (s *Sermon) Record() SermonRecord {
	return SermonRecord{
		ID:          s.id,
		Title:       s.title,
		Preacher:    s.preacher,
		Category:    s.category,
		Description: s.description,
		AudioURL:    s.audioURL,
		IsLocal:     s.isLocal,
		Date:        s.date,
		Duration:    s.duration,
		Topics:      s.Topics(),
		Version:     s.version,
		CreatedAt:   s.createdAt,
		UpdatedAt:   s.updatedAt,
	}
}

// Projection returns the JSON view: camelCase keys, ISO-8601 times, topic names in order.
func (s *Sermon) Projection() SermonProjection {
	names := make([]string, 0, len(s.topics))
	for _, t := range s.topics {
		names = append(names, t.Name)
	}
	return SermonProjection{
		ID:          s.id,
		Title:       s.title,
		Preacher:    s.preacher,
		Category:    s.category,
		Description: optionalString(s.description),
		AudioURL:    s.audioURL,
		IsLocal:     s.isLocal,
		Date:        isoTime(s.date),
		Duration:    s.duration,
		Topics:      names,
		Version:     s.version,
		CreatedAt:   isoTime(s.createdAt),
		UpdatedAt:   isoTime(s.updatedAt),
	}
}

func (s *Sermon) setTitle(v string) error {
	if err := validateSermonTitle(v); err != nil {
		return err
	}
	s.title = v
	return nil
}

func (s *Sermon) setPreacher(v string) error {
	if err := validateSermonPreacher(v); err != nil {
		return err
	}
	s.preacher = v
	return nil
}

func (s *Sermon) setCategory(v string) error {
	if err := validateSermonCategory(v); err != nil {
		return err
	}
	s.category = v
	return nil
}

func (s *Sermon) setAudioURL(v string) error {
	if err := validateSermonAudioURL(v); err != nil {
		return err
	}
	s.audioURL = v
	return nil
}

func (s *Sermon) setDuration(v *int) error {
	if err := validateSermonDuration(v); err != nil {
		return err
	}
	s.duration = *v
	return nil
}

// setTopics keeps the first occurrence of each topic, by id or by name when the
// id is not yet known.
func (s *Sermon) setTopics(refs []TopicRef) {
	seen := make(map[string]struct{}, len(refs))
	out := make([]TopicRef, 0, len(refs))
	for _, ref := range refs {
		key := strings.ToLower(ref.Name)
		if ref.ID != 0 {
			key = "#" + strconv.FormatInt(ref.ID, 10)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ref)
	}
	s.topics = out
}

func validateSermonTitle(v string) error {
	return Check("title", v, Required("title"), Length("title", 3, 255))
}

func validateSermonPreacher(v string) error {
	return Check("preacher", v, Required("preacher"), Length("preacher", 2, 0))
}

func validateSermonCategory(v string) error {
	return Check("category", v, Required("category"))
}

func validateSermonAudioURL(v string) error {
	return Check("audioUrl", v, Required("audioUrl"), HasSuffix("audioUrl", AudioExtensions...))
}

func validateSermonDuration(v *int) error {
	return Check("duration", v, Present("duration"), Positive("duration"))
}

// SermonFilter narrows a sermon listing.
type SermonFilter struct {
	// Query matches title, preacher and description case-insensitively.
	Query    string
	Category string
	TopicID  int64
	// Limit caps the result count; 0 means no limit.
	Limit int
}

// SermonRepository stores sermons and their ordered topic association.
// Listings are always ordered by date, newest first.
type SermonRepository interface {
	Create(ctx context.Context, s *Sermon) (*Sermon, error)
	GetByID(ctx context.Context, id int64) (*Sermon, error)
	List(ctx context.Context, f SermonFilter) ([]*Sermon, error)
	// Update writes s and its topics only if the stored version still equals
	// s's version and bumps it; a stale write returns ErrConflict.
	Update(ctx context.Context, s *Sermon) (*Sermon, error)
	Delete(ctx context.Context, id int64) error
	Categories(ctx context.Context) ([]string, error)
}

// SermonInput carries the raw fields of a create or update request. TopicNames
// are resolved to stored topics by the service; they are applied only when
// ReplaceTopics is set.
type SermonInput struct {
	SermonPatch
	TopicNames []string
}

// Attrs converts the input into constructor attributes; absent fields are zero.
func (in SermonInput) Attrs() SermonAttrs {
	attrs := SermonAttrs{Duration: in.Duration, Topics: in.Topics}
	if in.Title != nil {
		attrs.Title = *in.Title
	}
	if in.Preacher != nil {
		attrs.Preacher = *in.Preacher
	}
	if in.Category != nil {
		attrs.Category = *in.Category
	}
	if in.Description != nil {
		attrs.Description = *in.Description
	}
	if in.AudioURL != nil {
		attrs.AudioURL = *in.AudioURL
	}
	if in.IsLocal != nil {
		attrs.IsLocal = *in.IsLocal
	}
	if in.Date != nil {
		attrs.Date = *in.Date
	}
	return attrs
}

// SermonService defines the sermon use cases.
type SermonService interface {
	List(ctx context.Context) ([]*Sermon, error)
	Recent(ctx context.Context, limit int) ([]*Sermon, error)
	Search(ctx context.Context, query string) ([]*Sermon, error)
	Categories(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id int64) (*Sermon, error)
	Create(ctx context.Context, in SermonInput) (*Sermon, error)
	Update(ctx context.Context, id int64, in SermonInput) (*Sermon, error)
	Delete(ctx context.Context, id int64) error
}
