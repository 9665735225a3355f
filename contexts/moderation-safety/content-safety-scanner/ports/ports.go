package ports

import (
	"context"
	"time"

	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// ViolationLogger records moderation evidence. Implementations may be slow
// or unavailable; callers never wait on them in the message path.
type ViolationLogger interface {
	LogViolation(ctx context.Context, log entities.ViolationLog) error
}

type AlertPublisher interface {
	PublishHighRiskAlert(ctx context.Context, alert entities.HighRiskAlert) error
}

type ViolationFilter struct {
	ConversationID string
	SenderID       string
	MinRiskScore   int
	Limit          int
	Offset         int
}

type ViolationRepository interface {
	ListViolations(ctx context.Context, filter ViolationFilter) ([]entities.ViolationLog, error)
	PurgeViolationsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
