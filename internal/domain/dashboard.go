package domain

import (
	"context"
	"time"
)

// DashboardStats are the admin dashboard counters, computed from the store on
// every request.
type DashboardStats struct {
	TotalSermons   int `json:"totalSermons"`
	TotalEvents    int `json:"totalEvents"`
	UpcomingEvents int `json:"upcomingEvents"`
	TotalTopics    int `json:"totalTopics"`
	TotalUsers     int `json:"totalUsers"`
}

// StatsRepository counts stored rows for the dashboard.
type StatsRepository interface {
	Counts(ctx context.Context, now time.Time) (DashboardStats, error)
}

// DashboardService defines the dashboard use case.
type DashboardService interface {
	Stats(ctx context.Context) (DashboardStats, error)
	Activity(ctx context.Context) (DashboardActivity, error)
}
