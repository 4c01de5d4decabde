package controllers

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"churchconnect/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var testNow = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func testSermon(t *testing.T, id int64, title string, topics ...string) *domain.Sermon {
	t.Helper()
	refs := make([]domain.TopicRef, 0, len(topics))
	for i, name := range topics {
		refs = append(refs, domain.TopicRef{ID: int64(i + 1), Name: name})
	}
	s, err := domain.RestoreSermon(domain.SermonRecord{
		ID:        id,
		Title:     title,
		Preacher:  "Pastor John",
		Category:  "Sunday Service",
		AudioURL:  "/media/audio/grace.mp3",
		Date:      testNow,
		Duration:  1800,
		Topics:    refs,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	})
	require.NoError(t, err)
	return s
}

func testEvent(t *testing.T, id int64, title string, start time.Time, limit *int, current int) *domain.Event {
	t.Helper()
	e, err := domain.RestoreEvent(domain.EventRecord{
		ID:               id,
		Title:            title,
		StartDate:        start,
		EndDate:          start.Add(2 * time.Hour),
		Location:         "Main Hall",
		Category:         "Worship",
		MaxAttendees:     limit,
		CurrentAttendees: current,
		Version:          1,
		CreatedAt:        testNow,
		UpdatedAt:        testNow,
	})
	require.NoError(t, err)
	return e
}

func testAdmin(t *testing.T) *domain.Admin {
	t.Helper()
	a, err := domain.RestoreAdmin(domain.AdminRecord{
		ID:           1,
		Username:     "pastor",
		Email:        "pastor@church.org",
		PasswordHash: "hash",
		IsActive:     true,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	})
	require.NoError(t, err)
	return a
}

type mockAuthService struct {
	result   *domain.LoginResult
	admin    *domain.Admin
	err      error
	username string
	password string
	claims   domain.Claims
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (*domain.LoginResult, error) {
	m.username, m.password = username, password
	return m.result, m.err
}

func (m *mockAuthService) Me(ctx context.Context, claims domain.Claims) (*domain.Admin, error) {
	m.claims = claims
	return m.admin, m.err
}

func (m *mockAuthService) SeedDefaultAdmin(ctx context.Context, attrs domain.AdminAttrs) (bool, error) {
	return false, m.err
}

type mockSermonService struct {
	sermons    []*domain.Sermon
	sermon     *domain.Sermon
	categories []string
	err        error
	query      string
	id         int64
	input      domain.SermonInput
}

func (m *mockSermonService) List(ctx context.Context) ([]*domain.Sermon, error) {
	return m.sermons, m.err
}

func (m *mockSermonService) Recent(ctx context.Context, limit int) ([]*domain.Sermon, error) {
	return m.sermons, m.err
}

func (m *mockSermonService) Search(ctx context.Context, query string) ([]*domain.Sermon, error) {
	m.query = query
	return m.sermons, m.err
}

func (m *mockSermonService) Categories(ctx context.Context) ([]string, error) {
	return m.categories, m.err
}

func (m *mockSermonService) Get(ctx context.Context, id int64) (*domain.Sermon, error) {
	m.id = id
	return m.sermon, m.err
}

func (m *mockSermonService) Create(ctx context.Context, in domain.SermonInput) (*domain.Sermon, error) {
	m.input = in
	if m.err != nil {
		return nil, m.err
	}
	if m.sermon != nil {
		return m.sermon, nil
	}
	return domain.NewSermon(in.Attrs(), testNow)
}

func (m *mockSermonService) Update(ctx context.Context, id int64, in domain.SermonInput) (*domain.Sermon, error) {
	m.id, m.input = id, in
	return m.sermon, m.err
}

func (m *mockSermonService) Delete(ctx context.Context, id int64) error {
	m.id = id
	return m.err
}

type mockTopicService struct {
	topics  []domain.TopicWithCount
	topic   *domain.Topic
	count   int
	sermons []*domain.Sermon
	err     error
}

func (m *mockTopicService) List(ctx context.Context) ([]domain.TopicWithCount, error) {
	return m.topics, m.err
}

func (m *mockTopicService) Get(ctx context.Context, id int64) (*domain.Topic, int, error) {
	return m.topic, m.count, m.err
}

func (m *mockTopicService) Sermons(ctx context.Context, id int64) ([]*domain.Sermon, error) {
	return m.sermons, m.err
}

func (m *mockTopicService) Resolve(ctx context.Context, names []string) ([]domain.TopicRef, error) {
	return nil, m.err
}

type mockEventService struct {
	events []*domain.Event
	event  *domain.Event
	err    error
	id     int64
	attrs  domain.EventAttrs
	patch  domain.EventPatch
	reg    domain.Registration
}

func (m *mockEventService) List(ctx context.Context) ([]*domain.Event, error) {
	return m.events, m.err
}

func (m *mockEventService) Upcoming(ctx context.Context, limit int) ([]*domain.Event, error) {
	return m.events, m.err
}

func (m *mockEventService) Get(ctx context.Context, id int64) (*domain.Event, error) {
	m.id = id
	return m.event, m.err
}

func (m *mockEventService) Create(ctx context.Context, attrs domain.EventAttrs) (*domain.Event, error) {
	m.attrs = attrs
	if m.err != nil {
		return nil, m.err
	}
	return domain.NewEvent(attrs, testNow)
}

func (m *mockEventService) Update(ctx context.Context, id int64, patch domain.EventPatch) (*domain.Event, error) {
	m.id, m.patch = id, patch
	return m.event, m.err
}

func (m *mockEventService) Delete(ctx context.Context, id int64) error {
	m.id = id
	return m.err
}

func (m *mockEventService) Register(ctx context.Context, id int64, reg domain.Registration) (*domain.Event, error) {
	m.id, m.reg = id, reg
	return m.event, m.err
}

type mockMediaService struct {
	stored    domain.StoredMedia
	err       error
	filename  string
	body      string
	discarded []domain.StoredMedia
}

func (m *mockMediaService) record(u domain.Upload) (domain.StoredMedia, error) {
	m.filename = u.Filename
	b, _ := io.ReadAll(u.Body)
	m.body = string(b)
	return m.stored, m.err
}

func (m *mockMediaService) StoreAudio(ctx context.Context, u domain.Upload) (domain.StoredMedia, error) {
	return m.record(u)
}

func (m *mockMediaService) StoreImage(ctx context.Context, u domain.Upload) (domain.StoredMedia, error) {
	return m.record(u)
}

func (m *mockMediaService) Store(ctx context.Context, u domain.Upload) (domain.StoredMedia, error) {
	return m.record(u)
}

func (m *mockMediaService) Discard(ctx context.Context, s domain.StoredMedia) error {
	m.discarded = append(m.discarded, s)
	return nil
}

type mockDashboardService struct {
	stats    domain.DashboardStats
	activity domain.DashboardActivity
	err      error
}

func (m *mockDashboardService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	return m.stats, m.err
}

func (m *mockDashboardService) Activity(ctx context.Context) (domain.DashboardActivity, error) {
	return m.activity, m.err
}
