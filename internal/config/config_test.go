package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
log:
  level: "debug"
  format: "text"

translation:
  provider_timeout: "4s"
  providers: "google, mymemory"

cache:
  backend: "postgres"
  ttl: "720h"
  sqlite_path: "/tmp/cache.db"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 4
  min_conns: 2

providers:
  libretranslate_url: "http://localhost:5000"
  libretranslate_api_key: "key"
  mymemory_email: "dev@example.com"

metrics:
  namespace: "test"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}

	// Translation
	if cfg.Translation.ProviderTimeout != 4*time.Second {
		t.Errorf("translation.provider_timeout = %v, want 4s", cfg.Translation.ProviderTimeout)
	}
	if len(cfg.Translation.Providers) != 2 {
		t.Fatalf("translation.providers len = %d, want 2", len(cfg.Translation.Providers))
	}
	if cfg.Translation.Providers[0] != ProviderGoogle || cfg.Translation.Providers[1] != ProviderMyMemory {
		t.Errorf("translation.providers = %v, want [google mymemory]", cfg.Translation.Providers)
	}

	// Cache
	if cfg.Cache.Backend != BackendPostgres {
		t.Errorf("cache.backend = %q, want %q", cfg.Cache.Backend, BackendPostgres)
	}
	if cfg.Cache.TTL != 30*24*time.Hour {
		t.Errorf("cache.ttl = %v, want 720h", cfg.Cache.TTL)
	}

	// Database
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/testdb" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 4 {
		t.Errorf("database.max_conns = %d, want 4", cfg.Database.MaxConns)
	}

	// Providers
	if cfg.Providers.LibreTranslateURL != "http://localhost:5000" {
		t.Errorf("providers.libretranslate_url = %q", cfg.Providers.LibreTranslateURL)
	}
	if cfg.Providers.GoogleURL != "https://translate.googleapis.com" {
		t.Errorf("providers.google_url = %q, want default", cfg.Providers.GoogleURL)
	}
	if cfg.Providers.MyMemoryEmail != "dev@example.com" {
		t.Errorf("providers.mymemory_email = %q", cfg.Providers.MyMemoryEmail)
	}

	// Metrics
	if cfg.Metrics.Namespace != "test" {
		t.Errorf("metrics.namespace = %q, want %q", cfg.Metrics.Namespace, "test")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("CACHE_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Cache.Backend != BackendMemory {
		t.Errorf("cache.backend = %q, want %q (ENV override)", cfg.Cache.Backend, BackendMemory)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	// Unset CONFIG_PATH so the fallback kicks in and the file is just absent.
	t.Setenv("CONFIG_PATH", "")
	// Set working dir to a temp dir with no config.yaml
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Translation.ProviderTimeout != 6*time.Second {
		t.Errorf("translation.provider_timeout = %v, want 6s (default)", cfg.Translation.ProviderTimeout)
	}
	if cfg.Cache.TTL != 60*24*time.Hour {
		t.Errorf("cache.ttl = %v, want 60 days (default)", cfg.Cache.TTL)
	}
	if cfg.Cache.Backend != BackendSQLite {
		t.Errorf("cache.backend = %q, want %q (default)", cfg.Cache.Backend, BackendSQLite)
	}
	if got := len(cfg.Translation.Providers); got != 3 {
		t.Errorf("translation.providers len = %d, want 3 (default)", got)
	}
	if cfg.Providers.LibreTranslateURL != "" {
		t.Errorf("providers.libretranslate_url = %q, want empty (default)", cfg.Providers.LibreTranslateURL)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "timeout zero", mutate: func(c *Config) { c.Translation.ProviderTimeout = 0 }, wantErr: true},
		{name: "timeout too long", mutate: func(c *Config) { c.Translation.ProviderTimeout = 2 * time.Minute }, wantErr: true},
		{name: "timeout upper bound", mutate: func(c *Config) { c.Translation.ProviderTimeout = time.Minute }},
		{name: "unknown provider", mutate: func(c *Config) { c.Translation.ProvidersRaw = "google,deepl" }, wantErr: true},
		{name: "duplicate provider", mutate: func(c *Config) { c.Translation.ProvidersRaw = "google,GOOGLE" }, wantErr: true},
		{name: "no remote providers", mutate: func(c *Config) { c.Translation.ProvidersRaw = "" }},
		{name: "unknown backend", mutate: func(c *Config) { c.Cache.Backend = "redis" }, wantErr: true},
		{name: "ttl zero", mutate: func(c *Config) { c.Cache.TTL = 0 }, wantErr: true},
		{name: "sqlite without path", mutate: func(c *Config) { c.Cache.SQLitePath = " " }, wantErr: true},
		{name: "memory without path", mutate: func(c *Config) { c.Cache.Backend = BackendMemory; c.Cache.SQLitePath = "" }},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Cache.Backend = BackendPostgres }, wantErr: true},
		{name: "postgres with dsn", mutate: func(c *Config) {
			c.Cache.Backend = BackendPostgres
			c.Database.DSN = "postgres://localhost/db"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseProviders(t *testing.T) {
	got, err := ParseProviders(" mymemory , Google,, libretranslate ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"mymemory", "google", "libretranslate"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("providers[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	got, err = ParseProviders("   ")
	if err != nil || got != nil {
		t.Fatalf("ParseProviders(blank) = %v, %v; want nil, nil", got, err)
	}
}

func validConfig() Config {
	return Config{
		Log: LogConfig{Level: "info", Format: "json"},
		Translation: TranslationConfig{
			ProviderTimeout: 6 * time.Second,
			ProvidersRaw:    "libretranslate,google,mymemory",
		},
		Cache: CacheConfig{
			Backend:    BackendSQLite,
			TTL:        60 * 24 * time.Hour,
			SQLitePath: "./translation_cache.db",
		},
	}
}
