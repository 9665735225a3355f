package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	RabbitMQURL           string
	PricingEventsExchange string
	RedisURL              string
	ModerationAlertQueue  string

	PlatformFeePercent  float64
	DisplayLanguage     string
	PatternTablePath    string
	ViolationRetention  time.Duration
	RetentionInterval   time.Duration
	OutboxPollInterval  time.Duration
	OutboxBatchSize     int
	SideEffectTimeout   time.Duration
	IdempotencyTTL      time.Duration
	ShutdownGracePeriod time.Duration

	AutoMigrate                bool
	EnablePricingEventEmission bool
	EnableHighRiskAlerts       bool
}

func setDefaults() {
	viper.SetDefault("SERVICE_NAME", "creatorhub")
	viper.SetDefault("HTTP_PORT", "8080")
	viper.SetDefault("PRICING_EVENTS_EXCHANGE", "pricing.events")
	viper.SetDefault("MODERATION_ALERT_QUEUE", "moderation:high-risk-alerts")
	viper.SetDefault("PLATFORM_FEE_PERCENT", 20.0)
	viper.SetDefault("DISPLAY_LANGUAGE", "en")
	viper.SetDefault("VIOLATION_RETENTION", "2160h")
	viper.SetDefault("RETENTION_INTERVAL", "1h")
	viper.SetDefault("OUTBOX_POLL_INTERVAL", "2s")
	viper.SetDefault("OUTBOX_BATCH_SIZE", 100)
	viper.SetDefault("SIDE_EFFECT_TIMEOUT", "5s")
	viper.SetDefault("IDEMPOTENCY_TTL", "168h")
	viper.SetDefault("SHUTDOWN_GRACE_PERIOD", "10s")
	viper.SetDefault("AUTO_MIGRATE", false)
	viper.SetDefault("ENABLE_PRICING_EVENT_EMISSION", true)
	viper.SetDefault("ENABLE_HIGH_RISK_ALERTS", true)
}

func Load() (Config, error) {
	setDefaults()
	viper.AutomaticEnv()

	cfg := Config{
		ServiceName: strings.TrimSpace(viper.GetString("SERVICE_NAME")),
		HTTPPort:    strings.TrimSpace(viper.GetString("HTTP_PORT")),
		PostgresDSN: strings.TrimSpace(viper.GetString("POSTGRES_DSN")),

		RabbitMQURL:           strings.TrimSpace(viper.GetString("RABBITMQ_URL")),
		PricingEventsExchange: strings.TrimSpace(viper.GetString("PRICING_EVENTS_EXCHANGE")),
		RedisURL:              strings.TrimSpace(viper.GetString("REDIS_URL")),
		ModerationAlertQueue:  strings.TrimSpace(viper.GetString("MODERATION_ALERT_QUEUE")),

		PlatformFeePercent:  viper.GetFloat64("PLATFORM_FEE_PERCENT"),
		DisplayLanguage:     strings.TrimSpace(viper.GetString("DISPLAY_LANGUAGE")),
		PatternTablePath:    strings.TrimSpace(viper.GetString("PATTERN_TABLE_PATH")),
		ViolationRetention:  viper.GetDuration("VIOLATION_RETENTION"),
		RetentionInterval:   viper.GetDuration("RETENTION_INTERVAL"),
		OutboxPollInterval:  viper.GetDuration("OUTBOX_POLL_INTERVAL"),
		OutboxBatchSize:     viper.GetInt("OUTBOX_BATCH_SIZE"),
		SideEffectTimeout:   viper.GetDuration("SIDE_EFFECT_TIMEOUT"),
		IdempotencyTTL:      viper.GetDuration("IDEMPOTENCY_TTL"),
		ShutdownGracePeriod: viper.GetDuration("SHUTDOWN_GRACE_PERIOD"),

		AutoMigrate:                viper.GetBool("AUTO_MIGRATE"),
		EnablePricingEventEmission: viper.GetBool("ENABLE_PRICING_EVENT_EMISSION"),
		EnableHighRiskAlerts:       viper.GetBool("ENABLE_HIGH_RISK_ALERTS"),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.PlatformFeePercent < 0 || c.PlatformFeePercent > 50 {
		return fmt.Errorf("PLATFORM_FEE_PERCENT must be between 0 and 50, got %v", c.PlatformFeePercent)
	}
	for name, value := range map[string]time.Duration{
		"VIOLATION_RETENTION":  c.ViolationRetention,
		"RETENTION_INTERVAL":   c.RetentionInterval,
		"OUTBOX_POLL_INTERVAL": c.OutboxPollInterval,
		"SIDE_EFFECT_TIMEOUT":  c.SideEffectTimeout,
	} {
		if value <= 0 {
			return fmt.Errorf("%s must be a positive duration", name)
		}
	}
	if c.OutboxBatchSize <= 0 {
		return fmt.Errorf("OUTBOX_BATCH_SIZE must be positive, got %d", c.OutboxBatchSize)
	}
	return nil
}
