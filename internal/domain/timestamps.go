package domain

import "time"

// Timestamps is the lifecycle mixin embedded in every entity. createdAt is set
// once; updatedAt moves forward on every mutation.
type Timestamps struct {
	createdAt time.Time
	updatedAt time.Time
}

func newTimestamps(now time.Time) Timestamps {
	now = now.UTC()
	return Timestamps{createdAt: now, updatedAt: now}
}

func restoreTimestamps(createdAt, updatedAt time.Time) Timestamps {
	return Timestamps{createdAt: createdAt.UTC(), updatedAt: updatedAt.UTC()}
}

// CreatedAt returns when the entity was first created.
func (t Timestamps) CreatedAt() time.Time { return t.createdAt }

// UpdatedAt returns when the entity was last changed.
func (t Timestamps) UpdatedAt() time.Time { return t.updatedAt }

func (t *Timestamps) touch(now time.Time) {
	t.updatedAt = now.UTC()
}

// isoTime formats t as an ISO-8601 string in UTC.
func isoTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func isoTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := isoTime(*t)
	return &s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
