package contentsafetyscanner

import (
	"log/slog"
	"time"

	httpadapter "creatorhub/contexts/moderation-safety/content-safety-scanner/adapters/http"
	"creatorhub/contexts/moderation-safety/content-safety-scanner/adapters/memory"
	"creatorhub/contexts/moderation-safety/content-safety-scanner/adapters/yamltable"
	"creatorhub/contexts/moderation-safety/content-safety-scanner/application"
	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/patterns"
	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/scanner"
	"creatorhub/contexts/moderation-safety/content-safety-scanner/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Table                 *patterns.Table
	Violations            ports.ViolationLogger
	Alerts                ports.AlertPublisher
	Repository            ports.ViolationRepository
	Clock                 ports.Clock
	IDGenerator           ports.IDGenerator
	Dispatch              func(func())
	SideEffectTimeout     time.Duration
	DisableHighRiskAlerts bool
	Logger                *slog.Logger
}

// NewModule wires the scanner. A nil table falls back to the embedded
// default pattern table.
func NewModule(deps Dependencies) (Module, error) {
	table := deps.Table
	if table == nil {
		loaded, err := yamltable.LoadDefault()
		if err != nil {
			return Module{}, err
		}
		table = loaded
	}
	service := application.Service{
		Scanner:               scanner.New(table),
		Violations:            deps.Violations,
		Alerts:                deps.Alerts,
		Repo:                  deps.Repository,
		Clock:                 deps.Clock,
		IDGen:                 deps.IDGenerator,
		Dispatch:              deps.Dispatch,
		SideEffectTimeout:     deps.SideEffectTimeout,
		DisableHighRiskAlerts: deps.DisableHighRiskAlerts,
		Logger:                deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}, nil
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module, err := NewModule(Dependencies{
		Table:       yamltable.MustLoadDefault(),
		Violations:  store,
		Alerts:      store,
		Repository:  store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	if err != nil {
		panic(err)
	}
	module.Store = store
	return module
}
