package services

import (
	"context"
	"time"

	"churchconnect/internal/domain"
)

const (
	// RecentActivityLimit is the number of log entries on the dashboard.
	RecentActivityLimit = 10
	// ActivityChartDays is the span of the dashboard activity chart, today included.
	ActivityChartDays = 7
)

type dashboardService struct {
	stats          domain.StatsRepository
	activities     domain.ActivityRepository
	contextTimeout time.Duration
	now            func() time.Time
}

func NewDashboardService(stats domain.StatsRepository, activities domain.ActivityRepository, timeout time.Duration) domain.DashboardService {
	return &dashboardService{stats: stats, activities: activities, contextTimeout: timeout, now: time.Now}
}

// Stats counts the stored rows on every call; nothing is cached.
func (s *dashboardService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.stats.Counts(ctx, s.now())
}

// Activity returns the latest log entries and the per-day counts of the last
// ActivityChartDays UTC days.
func (s *dashboardService) Activity(ctx context.Context) (domain.DashboardActivity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	recent, err := s.activities.Recent(ctx, RecentActivityLimit)
	if err != nil {
		return domain.DashboardActivity{}, err
	}
	today := s.now().UTC()
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(ActivityChartDays - 1))
	counts, err := s.activities.CountByDay(ctx, start)
	if err != nil {
		return domain.DashboardActivity{}, err
	}

	out := domain.DashboardActivity{
		RecentActivity: make([]domain.ActivityProjection, 0, len(recent)),
		Chart:          domain.NewActivityChart(counts, today, ActivityChartDays),
	}
	for _, a := range recent {
		out.RecentActivity = append(out.RecentActivity, a.Projection())
	}
	return out, nil
}
