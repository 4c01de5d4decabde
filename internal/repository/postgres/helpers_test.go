package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

var sermonCols = []string{"id", "title", "preacher", "category", "description", "audio_url", "is_local", "date", "duration", "version", "created_at", "updated_at"}

var eventCols = []string{"id", "title", "description", "start_date", "end_date", "location", "image_url", "category",
	"is_recurring", "recurrence_rule", "requires_registration", "max_attendees", "current_attendees",
	"version", "created_at", "updated_at"}

func eventRow(rows *sqlmock.Rows, id int64, title string, start time.Time, limit any, current, version int) *sqlmock.Rows {
	return rows.AddRow(id, title, nil, start, start.Add(2*time.Hour), "Main Hall", nil, "Worship",
		false, nil, true, limit, current, version, testNow, testNow)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%grace%", likePattern("grace"))
	assert.Equal(t, `%100\%\_a\\b%`, likePattern(`100%_a\b`))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestNullHelpers(t *testing.T) {
	assert.False(t, nullString("").Valid)
	assert.True(t, nullString("x").Valid)
	assert.False(t, nullInt(nil).Valid)
	n := 4
	assert.Equal(t, int64(4), nullInt(&n).Int64)
	assert.Nil(t, intFromNull(nullInt(nil)))
	assert.Equal(t, 4, *intFromNull(nullInt(&n)))
}
