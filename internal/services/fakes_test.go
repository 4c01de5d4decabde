package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"churchconnect/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var testNow = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

// fakeSermonRepo is an in-memory SermonRepository for tests.
type fakeSermonRepo struct {
	recs       map[int64]domain.SermonRecord
	nextID     int64
	err        error // if set, Create and Update return this error
	lastFilter domain.SermonFilter
}

func newFakeSermonRepo() *fakeSermonRepo {
	return &fakeSermonRepo{recs: make(map[int64]domain.SermonRecord), nextID: 1}
}

func (f *fakeSermonRepo) Create(ctx context.Context, s *domain.Sermon) (*domain.Sermon, error) {
	if f.err != nil {
		return nil, f.err
	}
	rec := s.Record()
	rec.ID = f.nextID
	f.nextID++
	f.recs[rec.ID] = rec
	return domain.RestoreSermon(rec)
}

func (f *fakeSermonRepo) GetByID(ctx context.Context, id int64) (*domain.Sermon, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return domain.RestoreSermon(rec)
}

func (f *fakeSermonRepo) List(ctx context.Context, filter domain.SermonFilter) ([]*domain.Sermon, error) {
	f.lastFilter = filter
	var recs []domain.SermonRecord
	q := strings.ToLower(filter.Query)
	for _, rec := range f.recs {
		if q != "" && !strings.Contains(strings.ToLower(rec.Title+" "+rec.Preacher+" "+rec.Description), q) {
			continue
		}
		if filter.Category != "" && rec.Category != filter.Category {
			continue
		}
		if filter.TopicID != 0 && !hasTopic(rec.Topics, filter.TopicID) {
			continue
		}
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Date.Equal(recs[j].Date) {
			return recs[i].ID > recs[j].ID
		}
		return recs[i].Date.After(recs[j].Date)
	})
	if filter.Limit > 0 && len(recs) > filter.Limit {
		recs = recs[:filter.Limit]
	}
	out := make([]*domain.Sermon, 0, len(recs))
	for _, rec := range recs {
		s, err := domain.RestoreSermon(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSermonRepo) Update(ctx context.Context, s *domain.Sermon) (*domain.Sermon, error) {
	if f.err != nil {
		return nil, f.err
	}
	stored, ok := f.recs[s.ID()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	rec := s.Record()
	if stored.Version != rec.Version {
		return nil, domain.ErrConflict
	}
	rec.Version++
	f.recs[rec.ID] = rec
	return domain.RestoreSermon(rec)
}

func (f *fakeSermonRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.recs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.recs, id)
	return nil
}

func (f *fakeSermonRepo) Categories(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, rec := range f.recs {
		if _, ok := seen[rec.Category]; ok {
			continue
		}
		seen[rec.Category] = struct{}{}
		out = append(out, rec.Category)
	}
	sort.Strings(out)
	return out, nil
}

func hasTopic(refs []domain.TopicRef, id int64) bool {
	for _, ref := range refs {
		if ref.ID == id {
			return true
		}
	}
	return false
}

// fakeTopicRepo is an in-memory TopicRepository for tests.
type fakeTopicRepo struct {
	byID    map[int64]*domain.Topic
	counts  map[int64]int
	nextID  int64
	inserts int
	err     error // if set, GetOrCreateByName returns this error
}

func newFakeTopicRepo() *fakeTopicRepo {
	return &fakeTopicRepo{byID: make(map[int64]*domain.Topic), counts: make(map[int64]int), nextID: 1}
}

func (f *fakeTopicRepo) GetOrCreateByName(ctx context.Context, t *domain.Topic) (*domain.Topic, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, existing := range f.byID {
		if strings.EqualFold(existing.Name(), t.Name()) {
			return existing, nil
		}
	}
	stored, err := domain.RestoreTopic(f.nextID, t.Name(), t.CreatedAt(), t.UpdatedAt())
	if err != nil {
		return nil, err
	}
	f.nextID++
	f.inserts++
	f.byID[stored.ID()] = stored
	return stored, nil
}

func (f *fakeTopicRepo) GetByID(ctx context.Context, id int64) (*domain.Topic, error) {
	if t, ok := f.byID[id]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTopicRepo) List(ctx context.Context) ([]domain.TopicWithCount, error) {
	out := make([]domain.TopicWithCount, 0, len(f.byID))
	for id, t := range f.byID {
		out = append(out, domain.TopicWithCount{Topic: t, SermonCount: f.counts[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic.Name() < out[j].Topic.Name() })
	return out, nil
}

func (f *fakeTopicRepo) CountSermons(ctx context.Context, topicID int64) (int, error) {
	return f.counts[topicID], nil
}

// fakeEventRepo is an in-memory EventRepository with the same version and
// attendee guards as the SQL implementation.
type fakeEventRepo struct {
	recs       map[int64]domain.EventRecord
	nextID     int64
	lastFilter domain.EventFilter
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{recs: make(map[int64]domain.EventRecord), nextID: 1}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	rec := e.Record()
	rec.ID = f.nextID
	f.nextID++
	f.recs[rec.ID] = rec
	return domain.RestoreEvent(rec)
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return domain.RestoreEvent(rec)
}

func (f *fakeEventRepo) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	f.lastFilter = filter
	var recs []domain.EventRecord
	for _, rec := range f.recs {
		if filter.StartsAfter != nil && !rec.StartDate.After(*filter.StartsAfter) {
			continue
		}
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if filter.Order == domain.OrderUpcoming {
			return recs[i].StartDate.Before(recs[j].StartDate)
		}
		return recs[i].StartDate.After(recs[j].StartDate)
	})
	if filter.Limit > 0 && len(recs) > filter.Limit {
		recs = recs[:filter.Limit]
	}
	out := make([]*domain.Event, 0, len(recs))
	for _, rec := range recs {
		e, err := domain.RestoreEvent(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	stored, ok := f.recs[e.ID()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if stored.Version != e.Version() {
		return nil, domain.ErrConflict
	}
	rec := e.Record()
	rec.Version++
	f.recs[rec.ID] = rec
	return domain.RestoreEvent(rec)
}

func (f *fakeEventRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.recs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.recs, id)
	return nil
}

func (f *fakeEventRepo) IncrementAttendees(ctx context.Context, id int64, now time.Time) (*domain.Event, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if rec.MaxAttendees != nil && rec.CurrentAttendees >= *rec.MaxAttendees {
		return nil, domain.ErrEventFull
	}
	rec.CurrentAttendees++
	rec.Version++
	rec.UpdatedAt = now
	f.recs[id] = rec
	return domain.RestoreEvent(rec)
}

// fakeAdminRepo is an in-memory AdminRepository for tests.
type fakeAdminRepo struct {
	recs      map[int64]domain.AdminRecord
	nextID    int64
	updateErr error
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{recs: make(map[int64]domain.AdminRecord), nextID: 1}
}

func (f *fakeAdminRepo) Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error) {
	rec := a.Record()
	for _, existing := range f.recs {
		if existing.Username == rec.Username {
			return nil, domain.ErrConflict
		}
	}
	rec.ID = f.nextID
	f.nextID++
	f.recs[rec.ID] = rec
	return domain.RestoreAdmin(rec)
}

func (f *fakeAdminRepo) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return domain.RestoreAdmin(rec)
}

func (f *fakeAdminRepo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	for _, rec := range f.recs {
		if rec.Username == username {
			return domain.RestoreAdmin(rec)
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAdminRepo) Update(ctx context.Context, a *domain.Admin) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.recs[a.ID()]; !ok {
		return domain.ErrNotFound
	}
	f.recs[a.ID()] = a.Record()
	return nil
}

func (f *fakeAdminRepo) Count(ctx context.Context) (int, error) {
	return len(f.recs), nil
}

// stubHasher prefixes the password instead of hashing it.
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (stubHasher) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// countingHasher counts Compare calls.
type countingHasher struct {
	stubHasher
	compares int
}

func (h *countingHasher) Compare(hash, password string) error {
	h.compares++
	return h.stubHasher.Compare(hash, password)
}

// stubIssuer records the last claims and expiry it was asked to sign.
type stubIssuer struct {
	claims domain.Claims
	expiry time.Duration
}

func (s *stubIssuer) Issue(claims domain.Claims, expiry time.Duration) (string, error) {
	s.claims = claims
	s.expiry = expiry
	return "token-for-" + claims.Username, nil
}

// fakeEmailService records confirmations instead of sending them.
type fakeEmailService struct {
	sent []*domain.RegistrationEmailData
	err  error
}

func (f *fakeEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

// fakeMailer records every message.
type fakeMailer struct {
	to, subject, html, text string
	err                     error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	if f.err != nil {
		return f.err
	}
	f.to, f.subject, f.html, f.text = to, subject, html, text
	return nil
}

// fakeRenderer returns fixed strings tagged with the template name.
type fakeRenderer struct {
	err error
}

func (f fakeRenderer) Render(name string, data any) (string, string, string, error) {
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject:" + name, "<p>" + name + "</p>", name, nil
}

// fakeMediaStore keeps uploaded bodies in memory.
type fakeMediaStore struct {
	objects map[string][]byte
	local   bool
	err     error
}

func newFakeMediaStore(local bool) *fakeMediaStore {
	return &fakeMediaStore{objects: make(map[string][]byte), local: local}
}

func (f *fakeMediaStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.objects[key] = b
	return "/media/" + key, nil
}

func (f *fakeMediaStore) Delete(ctx context.Context, key string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeMediaStore) IsLocal() bool { return f.local }

type fakeStatsRepo struct {
	stats domain.DashboardStats
	now   time.Time
}

func (f *fakeStatsRepo) Counts(ctx context.Context, now time.Time) (domain.DashboardStats, error) {
	f.now = now
	return f.stats, nil
}

type fakeActivityRepo struct {
	entries []domain.Activity
	err     error
	since   time.Time
}

func (f *fakeActivityRepo) Create(ctx context.Context, a domain.Activity) error {
	if f.err != nil {
		return f.err
	}
	a.ID = int64(len(f.entries) + 1)
	f.entries = append(f.entries, a)
	return nil
}

func (f *fakeActivityRepo) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Activity, 0, limit)
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.entries[i])
	}
	return out, nil
}

func (f *fakeActivityRepo) CountByDay(ctx context.Context, since time.Time) (map[string]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.since = since
	counts := make(map[string]int)
	for _, a := range f.entries {
		if !a.CreatedAt.Before(since) {
			counts[a.CreatedAt.UTC().Format(time.DateOnly)]++
		}
	}
	return counts, nil
}

func (f *fakeActivityRepo) descriptions() []string {
	out := make([]string, 0, len(f.entries))
	for _, a := range f.entries {
		out = append(out, a.Description)
	}
	return out
}
