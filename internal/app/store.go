package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/amistad-translator/internal/adapter/postgres"
	"github.com/heartmarshall/amistad-translator/internal/adapter/sqlite"
	"github.com/heartmarshall/amistad-translator/internal/cache"
	"github.com/heartmarshall/amistad-translator/internal/config"
)

// OpenStore opens the persistent cache tier selected by cfg.Backend and
// applies pending migrations. The memory backend returns a nil store. The
// returned close function is never nil.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (cache.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Cache.Backend {
	case config.BackendMemory:
		logger.Info("cache store disabled", slog.String("backend", config.BackendMemory))
		return nil, noop, nil

	case config.BackendSQLite:
		store, err := sqlite.Open(ctx, cfg.Cache.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite cache: %w", err)
		}
		logger.Info("cache store opened",
			slog.String("backend", config.BackendSQLite),
			slog.String("path", cfg.Cache.SQLitePath),
		)
		return store, store.Close, nil

	case config.BackendPostgres:
		applied, err := postgres.Migrate(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, noop, fmt.Errorf("migrate postgres cache: %w", err)
		}
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, noop, fmt.Errorf("connect postgres cache: %w", err)
		}
		logger.Info("cache store opened",
			slog.String("backend", config.BackendPostgres),
			slog.Int("migrations_applied", len(applied)),
		)
		return postgres.NewCacheStore(pool), func() error { pool.Close(); return nil }, nil

	default:
		return nil, noop, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
