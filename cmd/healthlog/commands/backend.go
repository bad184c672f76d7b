package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"healthlog/internal/adapter/memory"
	"healthlog/internal/adapter/postgres"
	"healthlog/internal/adapter/sqlite"
	"healthlog/internal/app"
	"healthlog/internal/config"
	"healthlog/internal/domain"
)

// services is the loaded record store and everything built on it.
type services struct {
	store    *app.RecordStore
	sessions domain.SessionRepository

	glucose *app.GlucoseService
	weight  *app.WeightService
	profile *app.ProfileService
	stats   *app.StatsService

	close func() error
}

// open connects the configured backend and loads the persisted state.
func (g *globalOptions) open(ctx context.Context) (*services, error) {
	var (
		kv       domain.KeyValueStore
		sessions domain.SessionRepository = memory.NewSessionRepo()
		closeFn                           = func() error { return nil }
	)

	switch g.cfg.StoreDriver {
	case config.DriverSQLite:
		db, err := sqlite.NewFileStore(g.cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		kv, closeFn = db, db.Close
	case config.DriverPostgres:
		db, err := postgres.Open(g.cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		kv, closeFn = db, db.Close
		sessions = postgres.NewSessionRepo(db)
	case config.DriverMemory:
		kv = memory.New()
	default:
		return nil, fmt.Errorf("unknown store driver %q", g.cfg.StoreDriver)
	}

	store := app.NewRecordStore(kv, g.log)
	if _, err := store.Load(ctx); err != nil {
		_ = closeFn()
		return nil, err
	}
	g.log.Debug("store opened", zap.String("driver", g.cfg.StoreDriver))

	ws := app.NewWeightService(store)
	return &services{
		store:    store,
		sessions: sessions,
		glucose:  app.NewGlucoseService(store),
		weight:   ws,
		profile:  app.NewProfileService(store, ws),
		stats:    app.NewStatsService(store),
		close:    closeFn,
	}, nil
}
