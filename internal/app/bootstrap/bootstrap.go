package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	offerpricingengine "creatorhub/contexts/finance-core/offer-pricing-engine"
	pricingpostgres "creatorhub/contexts/finance-core/offer-pricing-engine/adapters/postgres"
	pricingentities "creatorhub/contexts/finance-core/offer-pricing-engine/domain/entities"
	contentsafetyscanner "creatorhub/contexts/moderation-safety/content-safety-scanner"
	safetypostgres "creatorhub/contexts/moderation-safety/content-safety-scanner/adapters/postgres"
	safetyredis "creatorhub/contexts/moderation-safety/content-safety-scanner/adapters/redis"
	"creatorhub/contexts/moderation-safety/content-safety-scanner/adapters/yamltable"
	"creatorhub/contexts/moderation-safety/content-safety-scanner/ports"
	"creatorhub/internal/platform/config"
	"creatorhub/internal/platform/db"
	"creatorhub/internal/platform/httpserver"

	"github.com/redis/go-redis/v9"
	"golang.org/x/text/language"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	redis    *redis.Client
	grace    time.Duration
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	pg, err := connectPostgres(cfg)
	if err != nil {
		return nil, err
	}

	pricing, err := buildPricingModule(cfg, pg, logger)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	rdb, alerts, err := connectAlerts(cfg, logger)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}
	safety, err := buildSafetyModule(cfg, pg, alerts, logger)
	if err != nil {
		_ = pg.Close()
		closeRedis(rdb)
		return nil, err
	}

	server := httpserver.New(pricing, safety, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		redis:    rdb,
		grace:    cfg.ShutdownGracePeriod,
		logger:   logger,
	}, nil
}

func connectPostgres(cfg config.Config) (*db.Postgres, error) {
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if !cfg.AutoMigrate {
		return pg, nil
	}
	if err := pg.Migrate(context.Background(), pricingpostgres.AutoMigrate, safetypostgres.AutoMigrate); err != nil {
		_ = pg.Close()
		return nil, err
	}
	return pg, nil
}

func buildPricingModule(cfg config.Config, pg *db.Postgres, logger *slog.Logger) (offerpricingengine.Module, error) {
	displayLanguage, err := language.Parse(cfg.DisplayLanguage)
	if err != nil {
		return offerpricingengine.Module{}, fmt.Errorf("parse DISPLAY_LANGUAGE: %w", err)
	}
	policy := pricingentities.DefaultPolicy()
	policy.DefaultFeePercent = cfg.PlatformFeePercent

	repo := pricingpostgres.NewRepository(pg.DB, logger)
	return offerpricingengine.NewModule(offerpricingengine.Dependencies{
		Repository:                 repo,
		RateCards:                  repo,
		Idempotency:                repo,
		Outbox:                     repo,
		Clock:                      pricingpostgres.SystemClock{},
		IDGenerator:                pricingpostgres.UUIDGenerator{},
		IdempotencyTTL:             cfg.IdempotencyTTL,
		Policy:                     policy,
		DisplayLanguage:            displayLanguage,
		DisablePricedEventEmission: !cfg.EnablePricingEventEmission,
		Logger:                     logger,
	}), nil
}

// connectAlerts returns a nil publisher when no Redis is configured; high
// risk alerts are then only visible in logs.
func connectAlerts(cfg config.Config, logger *slog.Logger) (*redis.Client, ports.AlertPublisher, error) {
	if !cfg.EnableHighRiskAlerts || cfg.RedisURL == "" {
		logger.Warn("high risk alert queue disabled",
			"event", "bootstrap_alerts_disabled",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"alerts_enabled", cfg.EnableHighRiskAlerts,
		)
		return nil, nil, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	publisher := safetyredis.NewAlertPublisher(rdb, cfg.ModerationAlertQueue, logger)
	if err := publisher.Ping(context.Background()); err != nil {
		closeRedis(rdb)
		return nil, nil, err
	}
	return rdb, publisher, nil
}

func buildSafetyModule(
	cfg config.Config,
	pg *db.Postgres,
	alerts ports.AlertPublisher,
	logger *slog.Logger,
) (contentsafetyscanner.Module, error) {
	table, err := yamltable.Load(cfg.PatternTablePath)
	if err != nil {
		return contentsafetyscanner.Module{}, err
	}
	logger.Info("content pattern table loaded",
		"event", "bootstrap_pattern_table_loaded",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"pattern_version", table.Version(),
		"path", cfg.PatternTablePath,
	)

	repo := safetypostgres.NewRepository(pg.DB, logger)
	return contentsafetyscanner.NewModule(contentsafetyscanner.Dependencies{
		Table:                 table,
		Violations:            repo,
		Alerts:                alerts,
		Repository:            repo,
		Clock:                 safetypostgres.SystemClock{},
		IDGenerator:           safetypostgres.UUIDGenerator{},
		SideEffectTimeout:     cfg.SideEffectTimeout,
		DisableHighRiskAlerts: !cfg.EnableHighRiskAlerts,
		Logger:                logger,
	})
}

func (a *APIApp) Run(ctx context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	grace := a.grace
	if grace <= 0 {
		grace = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (a *APIApp) Close() error {
	closeRedis(a.redis)
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func closeRedis(rdb *redis.Client) {
	if rdb != nil {
		_ = rdb.Close()
	}
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
