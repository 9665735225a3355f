package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/entities"
	"creatorhub/contexts/moderation-safety/content-safety-scanner/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu     sync.RWMutex
	logs   []entities.ViolationLog
	alerts []entities.HighRiskAlert
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) LogViolation(_ context.Context, log entities.ViolationLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, cloneLog(log))
	return nil
}

func (s *Store) PublishHighRiskAlert(_ context.Context, alert entities.HighRiskAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	alert.Categories = append([]entities.Category(nil), alert.Categories...)
	s.alerts = append(s.alerts, alert)
	return nil
}

// Alerts returns a snapshot of published alerts.
func (s *Store) Alerts() []entities.HighRiskAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.HighRiskAlert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

func (s *Store) ListViolations(_ context.Context, filter ports.ViolationFilter) ([]entities.ViolationLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.ViolationLog, 0, len(s.logs))
	for _, item := range s.logs {
		if filter.ConversationID != "" && item.ConversationID != filter.ConversationID {
			continue
		}
		if filter.SenderID != "" && item.SenderID != filter.SenderID {
			continue
		}
		if item.RiskScore < filter.MinRiskScore {
			continue
		}
		items = append(items, cloneLog(item))
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	if filter.Offset >= len(items) {
		return []entities.ViolationLog{}, nil
	}
	items = items[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(items) {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (s *Store) PurgeViolationsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.logs[:0]
	var removed int64
	for _, item := range s.logs {
		if item.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	s.logs = kept
	return removed, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func cloneLog(item entities.ViolationLog) entities.ViolationLog {
	item.Categories = append([]entities.Category(nil), item.Categories...)
	item.Violations = append([]entities.Violation(nil), item.Violations...)
	return item
}
