package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestCheck_kinds(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		err   error
		kind  Kind
		field string
	}{
		{"required empty string", Check("title", "", Required("title")), KindMissingField, "title"},
		{"present nil pointer", Check("duration", (*int)(nil), Present("duration")), KindMissingField, "duration"},
		{"required zero time", Check("startDate", time.Time{}, Required("startDate")), KindMissingField, "startDate"},
		{"length too short", Check("title", "ab", Length("title", 3, 255)), KindOutOfRange, "title"},
		{"length too long", Check("name", string(make([]rune, 101)), Length("name", 2, 100)), KindOutOfRange, "name"},
		{"pattern", Check("username", "bad name", Matches("username", usernamePattern, "is invalid")), KindInvalidFormat, "username"},
		{"suffix", Check("audioUrl", "/a.ogg", HasSuffix("audioUrl", AudioExtensions...)), KindInvalidFormat, "audioUrl"},
		{"positive zero", Check("duration", intPtr(0), Positive("duration")), KindInvalidValue, "duration"},
		{"non negative", Check("currentAttendees", -1, NonNegative("currentAttendees")), KindInvalidValue, "currentAttendees"},
		{"at most", Check("currentAttendees", 6, AtMost("currentAttendees", "maxAttendees", intPtr(5))), KindInvalidValue, "currentAttendees"},
		{"not before", Check("endDate", now.Add(-time.Hour), NotBefore("endDate", "startDate", now)), KindInvalidValue, "endDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			var ve *ValidationError
			require.True(t, errors.As(tt.err, &ve))
			assert.Equal(t, tt.kind, ve.Kind)
			assert.Equal(t, tt.field, ve.Field)
			assert.NotEmpty(t, ve.Message)
		})
	}
}

func TestCheck_passes(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	assert.NoError(t, Check("title", "abc", Required("title"), Length("title", 3, 255)))
	assert.NoError(t, Check("audioUrl", "/media/Sermon.MP3", HasSuffix("audioUrl", AudioExtensions...)))
	assert.NoError(t, Check("duration", intPtr(1), Present("duration"), Positive("duration")))
	assert.NoError(t, Check("currentAttendees", 5, AtMost("currentAttendees", "maxAttendees", intPtr(5))))
	assert.NoError(t, Check("currentAttendees", 500, AtMost("currentAttendees", "maxAttendees", nil)))
	assert.NoError(t, Check("endDate", now, NotBefore("endDate", "startDate", now)))
	assert.NoError(t, Check("endDate", now, NotBefore("endDate", "startDate", time.Time{})))
}

func TestValidationError_Is(t *testing.T) {
	err := Check("title", "", Required("title"))
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.False(t, errors.Is(err, ErrInvalidValue))
	assert.True(t, IsValidation(err))
	assert.False(t, IsValidation(ErrNotFound))
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		kind  Kind
	}{
		{"", KindMissingField},
		{"not-an-email", KindInvalidFormat},
		{"a@b", KindInvalidFormat},
		{"a b@c.org", KindInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			var ve *ValidationError
			require.ErrorAs(t, ValidateEmail(tt.email), &ve)
			assert.Equal(t, tt.kind, ve.Kind)
		})
	}
	assert.NoError(t, ValidateEmail("pastor@church.org"))
}
