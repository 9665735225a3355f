// Package redisadapter pushes high risk content alerts onto a Redis list
// consumed by the moderation dashboard workers.
package redisadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/entities"

	"github.com/redis/go-redis/v9"
)

const DefaultAlertQueue = "moderation:high-risk-alerts"

type AlertPublisher struct {
	rdb       *redis.Client
	queueName string
	logger    *slog.Logger
}

func NewAlertPublisher(rdb *redis.Client, queueName string, logger *slog.Logger) *AlertPublisher {
	if queueName == "" {
		queueName = DefaultAlertQueue
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AlertPublisher{
		rdb:       rdb,
		queueName: queueName,
		logger:    logger,
	}
}

type alertMessage struct {
	AlertID        string    `json:"alert_id"`
	LogID          string    `json:"log_id"`
	SenderID       string    `json:"sender_id"`
	ConversationID string    `json:"conversation_id"`
	RiskScore      int       `json:"risk_score"`
	RiskLevel      string    `json:"risk_level"`
	Categories     []string  `json:"categories"`
	RaisedAt       time.Time `json:"raised_at"`
}

func encodeAlert(alert entities.HighRiskAlert) ([]byte, error) {
	categories := make([]string, 0, len(alert.Categories))
	for _, item := range alert.Categories {
		categories = append(categories, string(item))
	}
	return json.Marshal(alertMessage{
		AlertID:        alert.AlertID,
		LogID:          alert.LogID,
		SenderID:       alert.SenderID,
		ConversationID: alert.ConversationID,
		RiskScore:      alert.RiskScore,
		RiskLevel:      string(alert.RiskLevel),
		Categories:     categories,
		RaisedAt:       alert.RaisedAt.UTC(),
	})
}

func (p *AlertPublisher) PublishHighRiskAlert(ctx context.Context, alert entities.HighRiskAlert) error {
	payload, err := encodeAlert(alert)
	if err != nil {
		return fmt.Errorf("marshal high risk alert: %w", err)
	}
	if err := p.rdb.LPush(ctx, p.queueName, string(payload)).Err(); err != nil {
		return fmt.Errorf("redis LPUSH: %w", err)
	}
	p.logger.Debug("published high risk alert to queue",
		"event", "content_safety_alert_enqueued",
		"module", "moderation-safety/content-safety-scanner",
		"layer", "adapter",
		"alert_id", alert.AlertID,
		"queue", p.queueName,
	)
	return nil
}

// Ping checks the Redis connection.
func (p *AlertPublisher) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.rdb.Ping(ctx).Err()
}
