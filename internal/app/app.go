package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/amistad-translator/internal/cache"
	"github.com/heartmarshall/amistad-translator/internal/config"
	"github.com/heartmarshall/amistad-translator/internal/dictionary"
	"github.com/heartmarshall/amistad-translator/internal/metrics"
	"github.com/heartmarshall/amistad-translator/internal/service/translation"
)

// Stack is the wired translation engine.
type Stack struct {
	Router  *dictionary.Router
	Cache   *cache.Cache
	Cascade *translation.Cascade
	Service *translation.Service
	Metrics *metrics.Metrics

	closeStore func() error
}

// Build wires the engine from cfg: dictionary tables, cache store, metrics,
// provider tiers, cascade and facade. cfg is validated first so a config
// built by hand gets its provider list parsed.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Stack, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("app: validate config: %w", err)
	}

	reg, err := dictionary.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("app: load dictionaries: %w", err)
	}
	router := dictionary.NewRouter(reg)

	store, closeStore, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	m := metrics.New(cfg.Metrics.Namespace)
	c := cache.New(logger, store, cfg.Cache.TTL, m)
	cascade := translation.NewCascade(logger, c, m, cfg.Translation.ProviderTimeout,
		BuildProviders(cfg, router, logger)...)

	logger.Info("translation engine ready",
		slog.String("version", BuildVersion()),
		slog.String("cache_backend", cfg.Cache.Backend),
		slog.Any("providers", cascade.Providers()),
		slog.Int("dictionary_pairs", len(reg.Pairs())),
	)

	return &Stack{
		Router:     router,
		Cache:      c,
		Cascade:    cascade,
		Service:    translation.NewService(logger, cascade, router),
		Metrics:    m,
		closeStore: closeStore,
	}, nil
}

// Close releases the cache store.
func (s *Stack) Close() error {
	if s == nil || s.closeStore == nil {
		return nil
	}
	return s.closeStore()
}
