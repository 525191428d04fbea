package translation

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/amistad-translator/internal/domain"
	"github.com/heartmarshall/amistad-translator/internal/provider"
)

type resolver interface {
	Resolve(ctx context.Context, req provider.Request) Resolution
}

type glossRouter interface {
	Gloss(word string, from, to domain.Language) string
	SentenceTokens(sentence string, from, to domain.Language) []string
	PhraseGloss(tokens []string, index int, from, to domain.Language) (string, bool)
}

// Service is the resolution facade: the only entry point UI collaborators
// use. Every operation is total: it returns a value for any input and never
// surfaces provider failures.
type Service struct {
	cascade resolver
	router  glossRouter
	log     *slog.Logger
}

// NewService creates a new translation service.
func NewService(
	log *slog.Logger,
	cascade resolver,
	router glossRouter,
) *Service {
	return &Service{
		cascade: cascade,
		router:  router,
		log:     log.With("service", "translation"),
	}
}
