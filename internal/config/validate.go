package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

const maxProviderTimeout = time.Minute

var knownProviders = []string{ProviderLibreTranslate, ProviderGoogle, ProviderMyMemory}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Translation.validate(); err != nil {
		return fmt.Errorf("translation: %w", err)
	}

	if err := c.Cache.validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	if c.Cache.Backend == BackendPostgres && strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required when cache.backend is %q", BackendPostgres)
	}

	return nil
}

func (t *TranslationConfig) validate() error {
	if t.ProviderTimeout <= 0 || t.ProviderTimeout > maxProviderTimeout {
		return fmt.Errorf("provider_timeout must be in (0, %s] (got %s)", maxProviderTimeout, t.ProviderTimeout)
	}

	providers, err := ParseProviders(t.ProvidersRaw)
	if err != nil {
		return fmt.Errorf("providers: %w", err)
	}
	t.Providers = providers

	return nil
}

func (c *CacheConfig) validate() error {
	switch c.Backend {
	case BackendSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("sqlite_path is required for the %q backend", BackendSQLite)
		}
	case BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}

	if c.TTL <= 0 {
		return fmt.Errorf("ttl must be > 0 (got %s)", c.TTL)
	}

	return nil
}

// ParseProviders parses a comma-separated, ordered list of remote provider
// names (e.g. "google,mymemory"). An empty string returns a nil slice.
func ParseProviders(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	providers := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !slices.Contains(knownProviders, p) {
			return nil, fmt.Errorf("unknown provider %q", p)
		}
		if slices.Contains(providers, p) {
			return nil, fmt.Errorf("provider %q listed twice", p)
		}
		providers = append(providers, p)
	}

	return providers, nil
}
