package domain

import (
	"context"
	"fmt"
	"time"
)

// ActivityAction is what happened to an activity's subject.
type ActivityAction string

const (
	ActivityCreated ActivityAction = "created"
	ActivityUpdated ActivityAction = "updated"
	ActivityDeleted ActivityAction = "deleted"
)

// Activity subject types.
const (
	SubjectSermon = "Sermon"
	SubjectEvent  = "Event"
)

// Activity is one entry of the admin activity log.
type Activity struct {
	ID          int64
	Action      ActivityAction
	SubjectType string
	SubjectID   int64
	Description string
	// CauserID is the admin who made the change, nil for unauthenticated writes.
	CauserID *int64
	// Properties is a snapshot of the subject, stored as JSON.
	Properties any
	CreatedAt  time.Time
}

// NewActivity describes action on a subject. The causer is taken from the
// authenticated claims on ctx when present.
func NewActivity(ctx context.Context, subjectType string, subjectID int64, label string, action ActivityAction, properties any, now time.Time) Activity {
	a := Activity{
		Action:      action,
		SubjectType: subjectType,
		SubjectID:   subjectID,
		Description: fmt.Sprintf("%s %q was %s", subjectType, label, action),
		Properties:  properties,
		CreatedAt:   now.UTC(),
	}
	if claims, ok := ClaimsFromContext(ctx); ok && claims.UserID != 0 {
		id := claims.UserID
		a.CauserID = &id
	}
	return a
}

// ActivityProjection is the JSON view of an Activity.
type ActivityProjection struct {
	ID          int64          `json:"id"`
	Action      ActivityAction `json:"action"`
	SubjectType string         `json:"subjectType"`
	SubjectID   int64          `json:"subjectId"`
	Description string         `json:"description"`
	CauserID    *int64         `json:"causerId"`
	CreatedAt   string         `json:"createdAt"`
}

func (a Activity) Projection() ActivityProjection {
	return ActivityProjection{
		ID:          a.ID,
		Action:      a.Action,
		SubjectType: a.SubjectType,
		SubjectID:   a.SubjectID,
		Description: a.Description,
		CauserID:    a.CauserID,
		CreatedAt:   isoTime(a.CreatedAt),
	}
}

// ActivityChart counts activities per UTC day, oldest day first.
type ActivityChart struct {
	Dates  []string `json:"dates"`
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// NewActivityChart lays out counts, keyed by YYYY-MM-DD, over the days ending
// with today. Days without activity count zero.
func NewActivityChart(counts map[string]int, today time.Time, days int) ActivityChart {
	chart := ActivityChart{
		Dates:  make([]string, 0, days),
		Labels: make([]string, 0, days),
		Data:   make([]int, 0, days),
	}
	today = today.UTC()
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := day.Format(time.DateOnly)
		chart.Dates = append(chart.Dates, key)
		chart.Labels = append(chart.Labels, day.Format("Mon"))
		chart.Data = append(chart.Data, counts[key])
	}
	return chart
}

// DashboardActivity is the dashboard's activity panel.
type DashboardActivity struct {
	RecentActivity []ActivityProjection `json:"recentActivity"`
	Chart          ActivityChart        `json:"chart"`
}

// ActivityRepository stores the activity log.
type ActivityRepository interface {
	Create(ctx context.Context, a Activity) error
	// Recent returns the latest activities, newest first.
	Recent(ctx context.Context, limit int) ([]Activity, error)
	// CountByDay counts activities created at or after since, keyed by UTC
	// YYYY-MM-DD.
	CountByDay(ctx context.Context, since time.Time) (map[string]int, error)
}
