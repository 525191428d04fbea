package app

import (
	"log/slog"

	"github.com/heartmarshall/amistad-translator/internal/adapter/provider/google"
	"github.com/heartmarshall/amistad-translator/internal/adapter/provider/libretranslate"
	"github.com/heartmarshall/amistad-translator/internal/adapter/provider/local"
	"github.com/heartmarshall/amistad-translator/internal/adapter/provider/mymemory"
	"github.com/heartmarshall/amistad-translator/internal/config"
	"github.com/heartmarshall/amistad-translator/internal/dictionary"
	"github.com/heartmarshall/amistad-translator/internal/provider"
)

// BuildProviders returns the cascade tiers: the local dictionary first, then
// the remote providers in the configured order. LibreTranslate is skipped
// when no URL is configured.
func BuildProviders(cfg *config.Config, router *dictionary.Router, logger *slog.Logger) []provider.Translator {
	httpClient := provider.NewHTTPClient(cfg.Translation.ProviderTimeout)
	pc := cfg.Providers

	tiers := []provider.Translator{local.NewProvider(router)}
	for _, name := range cfg.Translation.Providers {
		switch name {
		case config.ProviderLibreTranslate:
			if pc.LibreTranslateURL == "" {
				logger.Info("provider disabled: no url configured", slog.String("provider", name))
				continue
			}
			tiers = append(tiers, libretranslate.NewProvider(pc.LibreTranslateURL, pc.LibreTranslateAPIKey, httpClient, logger))
		case config.ProviderGoogle:
			tiers = append(tiers, google.NewProvider(pc.GoogleURL, httpClient, logger))
		case config.ProviderMyMemory:
			tiers = append(tiers, mymemory.NewProvider(pc.MyMemoryURL, pc.MyMemoryEmail, httpClient, logger))
		default:
			logger.Warn("unknown provider ignored", slog.String("provider", name))
		}
	}
	return tiers
}
