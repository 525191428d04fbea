// Package engine is the public entry point of the translation engine. It
// wires dictionaries, cache, providers and the cascade from a config and
// exposes the resolution facade.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/amistad-translator/internal/app"
	"github.com/heartmarshall/amistad-translator/internal/config"
	"github.com/heartmarshall/amistad-translator/internal/domain"
)

type (
	Language       = domain.Language
	Token          = domain.Token
	SentenceBlock  = domain.SentenceBlock
	WordMeaning    = domain.WordMeaning
	ContextMeaning = domain.ContextMeaning
	Config         = config.Config
)

const (
	Spanish  = domain.LanguageES
	English  = domain.LanguageEN
	German   = domain.LanguageDE
	Japanese = domain.LanguageJA
	Russian  = domain.LanguageRU
	Chinese  = domain.LanguageZH

	// UnknownMeaning is returned when nothing better than the input was found.
	UnknownMeaning = domain.UnknownMeaning
)

// ParseLanguage maps a free-form language code onto a supported language.
// Unknown codes become Spanish.
func ParseLanguage(code string) Language { return domain.ParseLanguage(code) }

// Engine is a ready translation engine. All translation methods are safe for
// concurrent use and never fail: the worst case is the input echoed back.
type Engine struct {
	stack *app.Stack
}

// New builds an engine from cfg. logger may be nil.
func New(ctx context.Context, cfg *Config, logger *slog.Logger) (*Engine, error) {
	stack, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &Engine{stack: stack}, nil
}

// NewFromEnv loads the config from CONFIG_PATH and the environment, installs
// the configured logger as the slog default and builds an engine.
func NewFromEnv(ctx context.Context) (*Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return New(ctx, cfg, app.NewLogger(cfg.Log))
}

// TranslateWord returns the best translation of a single word.
func (e *Engine) TranslateWord(ctx context.Context, word string, from, to Language) string {
	return e.stack.Service.TranslateWord(ctx, word, from, to)
}

// TranslateSentence returns the best translation of a sentence.
func (e *Engine) TranslateSentence(ctx context.Context, sentence string, from, to Language) string {
	return e.stack.Service.TranslateSentence(ctx, sentence, from, to)
}

// TranslateWordInContext explains the token at tokenIndex of fullText, using
// its sentence as context.
func (e *Engine) TranslateWordInContext(ctx context.Context, fullText string, tokenIndex int, from, to Language) ContextMeaning {
	return e.stack.Service.TranslateWordInContext(ctx, fullText, tokenIndex, from, to)
}

// LookupWord resolves a word and reports which tier answered.
func (e *Engine) LookupWord(ctx context.Context, word string, from, to Language) WordMeaning {
	return e.stack.Service.LookupWord(ctx, word, from, to)
}

// BuildBlocks splits text into sentences with glossed tokens and a
// translation per sentence.
func (e *Engine) BuildBlocks(ctx context.Context, text string, from, to Language) []SentenceBlock {
	return e.stack.Service.BuildBlocks(ctx, text, from, to)
}

// Tokenize splits a sentence into word and punctuation tokens.
func (e *Engine) Tokenize(sentence string) []string {
	return e.stack.Service.Tokenize(sentence)
}

// SegmentSentences splits text into sentences.
func (e *Engine) SegmentSentences(text string) []string {
	return e.stack.Service.SegmentSentences(text)
}

// Providers returns the provider tiers in the order they are tried.
func (e *Engine) Providers() []string {
	return e.stack.Cascade.Providers()
}

// PurgeExpired drops expired cache entries and returns how many were removed
// from the persistent store.
func (e *Engine) PurgeExpired(ctx context.Context) (int64, error) {
	return e.stack.Cache.PurgeExpired(ctx)
}

// MetricsHandler serves the engine's Prometheus metrics.
func (e *Engine) MetricsHandler() http.Handler {
	return e.stack.Metrics.Handler()
}

// Close releases the persistent cache store.
func (e *Engine) Close() error {
	if e == nil {
		return nil
	}
	return e.stack.Close()
}
