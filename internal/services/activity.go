package services

import (
	"context"
	"log/slog"
	"time"

	"churchconnect/internal/domain"
)

// activityLog writes the admin activity log for the content services. A failed
// write is logged and never fails the change it describes.
type activityLog struct {
	repo   domain.ActivityRepository
	logger *slog.Logger
}

func newActivityLog(repo domain.ActivityRepository, logger *slog.Logger) *activityLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &activityLog{repo: repo, logger: logger}
}

func (l *activityLog) record(ctx context.Context, subjectType string, subjectID int64, label string, action domain.ActivityAction, properties any, now time.Time) {
	if l == nil || l.repo == nil {
		return
	}
	a := domain.NewActivity(ctx, subjectType, subjectID, label, action, properties, now)
	if err := l.repo.Create(ctx, a); err != nil {
		l.logger.WarnContext(ctx, "failed to record activity",
			"subject", subjectType, "subject_id", subjectID, "action", action, "err", err)
	}
}
