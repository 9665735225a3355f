package offerpricingengine

import (
	"log/slog"
	"time"

	httpadapter "creatorhub/contexts/finance-core/offer-pricing-engine/adapters/http"
	"creatorhub/contexts/finance-core/offer-pricing-engine/adapters/memory"
	"creatorhub/contexts/finance-core/offer-pricing-engine/application"
	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/entities"
	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/money"
	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/services"
	"creatorhub/contexts/finance-core/offer-pricing-engine/ports"

	"golang.org/x/text/language"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository                 ports.Repository
	RateCards                  ports.RateCardRepository
	Idempotency                ports.IdempotencyStore
	Outbox                     ports.OutboxWriter
	Clock                      ports.Clock
	IDGenerator                ports.IDGenerator
	IdempotencyTTL             time.Duration
	Policy                     entities.Policy
	Rates                      money.RateTable
	DisplayLanguage            language.Tag
	DisablePricedEventEmission bool
	Logger                     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	policy := deps.Policy
	if policy.MaxFeePercent <= 0 {
		policy = entities.DefaultPolicy()
	}
	displayLanguage := deps.DisplayLanguage
	if displayLanguage == language.Und {
		displayLanguage = language.English
	}
	service := application.Service{
		Repo:                       deps.Repository,
		RateCards:                  deps.RateCards,
		Idempotency:                deps.Idempotency,
		Outbox:                     deps.Outbox,
		Clock:                      deps.Clock,
		IDGen:                      deps.IDGenerator,
		Engine:                     services.NewEngine(policy, money.NewConverter(deps.Rates, deps.Logger)),
		IdempotencyTTL:             deps.IdempotencyTTL,
		DisablePricedEventEmission: deps.DisablePricedEventEmission,
		Logger:                     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service:   service,
			Formatter: httpadapter.NewAmountFormatter(displayLanguage),
			Logger:    deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:     store,
		RateCards:      store,
		Idempotency:    store,
		Outbox:         store,
		Clock:          store,
		IDGenerator:    store,
		IdempotencyTTL: 7 * 24 * time.Hour,
		Policy:         entities.DefaultPolicy(),
		Logger:         logger,
	})
	module.Store = store
	return module
}
