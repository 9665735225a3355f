package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"time"

	pricingpostgres "creatorhub/contexts/finance-core/offer-pricing-engine/adapters/postgres"
	pricingworkers "creatorhub/contexts/finance-core/offer-pricing-engine/application/workers"
	pricingports "creatorhub/contexts/finance-core/offer-pricing-engine/ports"
	contentsafetyscanner "creatorhub/contexts/moderation-safety/content-safety-scanner"
	safetypostgres "creatorhub/contexts/moderation-safety/content-safety-scanner/adapters/postgres"
	safetyworkers "creatorhub/contexts/moderation-safety/content-safety-scanner/application/workers"
	contractsv1 "creatorhub/contracts/gen/events/v1"
	"creatorhub/internal/platform/config"
	"creatorhub/internal/platform/db"
	"creatorhub/internal/platform/messaging"

	"golang.org/x/sync/errgroup"
)

type WorkerApp struct {
	postgres          *db.Postgres
	bus               *messaging.Bus
	rabbit            *messaging.RabbitMQ
	outboxRelay       pricingworkers.OutboxRelay
	retention         safetyworkers.RetentionJob
	pollInterval      time.Duration
	retentionInterval time.Duration
	logger            *slog.Logger
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	pg, err := connectPostgres(cfg)
	if err != nil {
		return nil, err
	}

	app := &WorkerApp{
		postgres:          pg,
		pollInterval:      cfg.OutboxPollInterval,
		retentionInterval: cfg.RetentionInterval,
		logger:            logger,
	}

	var publisher pricingports.EventPublisher
	if cfg.RabbitMQURL != "" {
		rabbit, err := messaging.NewRabbitMQ(cfg.RabbitMQURL, cfg.PricingEventsExchange, logger)
		if err != nil {
			_ = pg.Close()
			return nil, err
		}
		app.rabbit = rabbit
		publisher = rabbit
	} else {
		app.bus = messaging.NewBus(logger)
		publisher = app.bus
	}

	pricingRepo := pricingpostgres.NewRepository(pg.DB, logger)
	app.outboxRelay = pricingworkers.OutboxRelay{
		Outbox:    pricingRepo,
		Publisher: publisher,
		Clock:     pricingpostgres.SystemClock{},
		BatchSize: cfg.OutboxBatchSize,
		Logger:    logger,
	}

	safetyRepo := safetypostgres.NewRepository(pg.DB, logger)
	safety, err := contentsafetyscanner.NewModule(contentsafetyscanner.Dependencies{
		Repository: safetyRepo,
		Clock:      safetypostgres.SystemClock{},
		Logger:     logger,
	})
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.retention = safetyworkers.RetentionJob{
		Service:   safety.Service,
		Clock:     safetypostgres.SystemClock{},
		Retention: cfg.ViolationRetention,
		Logger:    logger,
	}
	return app, nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
		"retention_interval", w.retentionInterval.String(),
		"external_broker", w.rabbit != nil,
	)

	group, ctx := errgroup.WithContext(ctx)
	if w.bus != nil {
		if err := w.bus.Subscribe(ctx, contractsv1.EventTypeOfferPriced, "pricing-audit-log", w.logPricedEvent); err != nil {
			return err
		}
	}
	group.Go(func() error {
		return runEvery(ctx, w.pollInterval, w.outboxRelay.RunOnce)
	})
	group.Go(func() error {
		return runEvery(ctx, w.retentionInterval, func(ctx context.Context) error {
			_, err := w.retention.RunOnce(ctx)
			return err
		})
	})
	return group.Wait()
}

func (w *WorkerApp) logPricedEvent(_ context.Context, event contractsv1.Envelope) error {
	w.logger.Info("offer priced event observed",
		"event", "bootstrap_offer_priced_observed",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"event_id", event.EventID,
		"partition_key", event.PartitionKey,
	)
	return nil
}

// runEvery runs task immediately and then on every tick until ctx is done.
func runEvery(ctx context.Context, interval time.Duration, task func(context.Context) error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := task(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	var errs []error
	if w.rabbit != nil {
		errs = append(errs, w.rabbit.Close())
	}
	if w.postgres != nil {
		errs = append(errs, w.postgres.Close())
	}
	return errors.Join(errs...)
}
