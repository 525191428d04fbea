package config

import (
	"time"
)

// Config is the root engine configuration.
type Config struct {
	Log         LogConfig         `yaml:"log"`
	Translation TranslationConfig `yaml:"translation"`
	Cache       CacheConfig       `yaml:"cache"`
	Database    DatabaseConfig    `yaml:"database"`
	Providers   ProvidersConfig   `yaml:"providers"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// TranslationConfig holds provider cascade settings.
type TranslationConfig struct {
	ProviderTimeout time.Duration `yaml:"provider_timeout" env:"TRANSLATION_PROVIDER_TIMEOUT" env-default:"6s"`
	ProvidersRaw    string        `yaml:"providers"        env:"TRANSLATION_PROVIDERS"        env-default:"libretranslate,google,mymemory"`

	// Providers is parsed from ProvidersRaw during validation. The local
	// dictionary is always tried first and is not listed.
	Providers []string `yaml:"-" env:"-"`
}

// CacheConfig holds translation cache settings.
type CacheConfig struct {
	Backend    string        `yaml:"backend"     env:"CACHE_BACKEND"     env-default:"sqlite"`
	TTL        time.Duration `yaml:"ttl"         env:"CACHE_TTL"         env-default:"1440h"`
	SQLitePath string        `yaml:"sqlite_path" env:"CACHE_SQLITE_PATH" env-default:"./translation_cache.db"`
}

// DatabaseConfig holds PostgreSQL connection settings. Only used when the
// cache backend is postgres.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// ProvidersConfig holds the endpoints of the remote translation providers.
type ProvidersConfig struct {
	// LibreTranslateURL is empty by default: the provider needs a
	// self-hosted or keyed instance and is skipped without one.
	LibreTranslateURL    string `yaml:"libretranslate_url"     env:"PROVIDERS_LIBRETRANSLATE_URL"`
	LibreTranslateAPIKey string `yaml:"libretranslate_api_key" env:"PROVIDERS_LIBRETRANSLATE_API_KEY"`
	GoogleURL            string `yaml:"google_url"             env:"PROVIDERS_GOOGLE_URL"             env-default:"https://translate.googleapis.com"`
	MyMemoryURL          string `yaml:"mymemory_url"           env:"PROVIDERS_MYMEMORY_URL"           env-default:"https://api.mymemory.translated.net"`
	MyMemoryEmail        string `yaml:"mymemory_email"         env:"PROVIDERS_MYMEMORY_EMAIL"`
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	Namespace string `yaml:"namespace" env:"METRICS_NAMESPACE" env-default:"amistad"`
}

// Cache backends.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Remote provider names accepted in translation.providers.
const (
	ProviderLibreTranslate = "libretranslate"
	ProviderGoogle         = "google"
	ProviderMyMemory       = "mymemory"
)
