package initializer

import (
	"context"
	"fmt"

	"github.com/amirasaad/ledger/infra"
	infra_eventbus "github.com/amirasaad/ledger/infra/eventbus"
	infra_repository "github.com/amirasaad/ledger/infra/repository"
	"github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/eventbus"
)

// openDB is replaced in tests.
var openDB = infra.NewDBConnection

// InitializeDependencies builds the logger, database, unit of work and event
// bus. The returned cleanup releases whatever was opened.
func InitializeDependencies(ctx context.Context, cfg *config.App) (
	deps *app.Deps,
	cleanup func(),
	err error,
) {
	deps = &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	db, err := openDB(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, nil, err
	}
	deps.Uow = infra_repository.NewUoW(db)

	closers := []func() error{}
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		closers = append(closers, sqlDB.Close)
	}
	cleanup = func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("cleanup failed", "error", err)
			}
		}
	}

	if cfg.Redis.URL != "" {
		bus, err := infra_eventbus.NewWithRedis(
			ctx,
			cfg.Redis.URL,
			cfg.Redis.Stream,
			cfg.Redis.Group,
			EventFactories(),
			logger,
		)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to create Redis event bus: %w", err)
		}
		go bus.Start(ctx)
		closers = append(closers, bus.Close)
		deps.EventBus = bus
	} else {
		deps.EventBus = infra_eventbus.NewWithMemory(logger)
	}

	return deps, cleanup, nil
}

// EventFactories lists the events that can be decoded from the Redis stream.
func EventFactories() infra_eventbus.Factories {
	return infra_eventbus.Factories{
		account.TransactionRecordedEventType: func() eventbus.Event { return &account.TransactionRecorded{} },
	}
}
