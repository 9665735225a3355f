package workers

import (
	"context"
	"log/slog"
	"time"

	application "creatorhub/contexts/moderation-safety/content-safety-scanner/application"
	"creatorhub/contexts/moderation-safety/content-safety-scanner/ports"
)

const defaultRetention = 90 * 24 * time.Hour

// RetentionJob removes violation logs older than the retention window.
type RetentionJob struct {
	Service   application.Service
	Clock     ports.Clock
	Retention time.Duration
	Logger    *slog.Logger
}

func (j RetentionJob) RunOnce(ctx context.Context) (int64, error) {
	retention := j.Retention
	if retention <= 0 {
		retention = defaultRetention
	}
	now := time.Now().UTC()
	if j.Clock != nil {
		now = j.Clock.Now().UTC()
	}
	removed, err := j.Service.PurgeViolationsBefore(ctx, now.Add(-retention))
	if err != nil {
		application.ResolveLogger(j.Logger).Error("violation retention sweep failed",
			"event", "content_safety_retention_failed",
			"module", "moderation-safety/content-safety-scanner",
			"layer", "worker",
			"retention", retention.String(),
			"error", err.Error(),
		)
		return 0, err
	}
	return removed, nil
}
