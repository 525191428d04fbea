package translation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/amistad-translator/internal/cache"
	"github.com/heartmarshall/amistad-translator/internal/domain"
	"github.com/heartmarshall/amistad-translator/internal/provider"
	"github.com/heartmarshall/amistad-translator/pkg/ctxutil"
)

// DefaultProviderTimeout bounds a single provider call.
const DefaultProviderTimeout = 6 * time.Second

// Sources reported in Resolution.Source besides provider names.
const (
	SourceIdentity = "identity"
	SourceCache    = "cache"
	SourceFallback = "fallback"
)

const outcomeAccepted = "accepted"

type translationCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

type cascadeMetrics interface {
	RecordResolution(kind, tier string)
	RecordProviderAttempt(provider, outcome string, duration time.Duration)
	RecordCoalesced()
}

// Resolution is the outcome of one cascade run.
type Resolution struct {
	Text string
	// Source is SourceIdentity, SourceCache, SourceFallback or the name of
	// the provider whose answer was accepted.
	Source    string
	FromCache bool
	// Attempts lists every provider call made, in order. Empty for identity
	// and cache hits and for callers that shared another caller's run.
	Attempts []provider.Result
}

// Resolved reports whether some tier produced a translation, as opposed to
// the input being echoed back.
func (r Resolution) Resolved() bool {
	return r.Source != SourceIdentity && r.Source != SourceFallback
}

// Cascade resolves a translation through an ordered list of tiers: identity,
// cache, then each provider in turn until one answer is accepted. The local
// dictionary is expected to be the first provider. Provider failures are
// logged and counted, never returned.
type Cascade struct {
	providers []provider.Translator
	cache     translationCache
	timeout   time.Duration

	group   singleflight.Group
	log     *slog.Logger
	metrics cascadeMetrics
	tracer  trace.Tracer
}

// NewCascade creates a cascade. metrics may be nil; a non-positive timeout
// means DefaultProviderTimeout.
func NewCascade(
	log *slog.Logger,
	c translationCache,
	metrics cascadeMetrics,
	timeout time.Duration,
	providers ...provider.Translator,
) *Cascade {
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	return &Cascade{
		providers: providers,
		cache:     c,
		timeout:   timeout,
		log:       log.With("component", "cascade"),
		metrics:   metrics,
		tracer:    otel.Tracer("github.com/heartmarshall/amistad-translator/internal/service/translation"),
	}
}

// Providers returns the names of the provider tiers in the order they are tried.
func (c *Cascade) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return names
}

// ResolveTranslation returns the best translation of text. It always returns
// a string: the input itself when nothing better was found.
func (c *Cascade) ResolveTranslation(ctx context.Context, text string, from, to domain.Language) string {
	return c.Resolve(ctx, provider.Request{Text: text, From: from, To: to, Kind: provider.KindSentence}).Text
}

// Resolve runs the cascade for req.
func (c *Cascade) Resolve(ctx context.Context, req provider.Request) Resolution {
	pair := req.Pair()
	req.From, req.To = pair.From, pair.To

	ctx, span := c.tracer.Start(ctx, "translation.resolve", trace.WithAttributes(
		attribute.String("translation.from", pair.From.String()),
		attribute.String("translation.to", pair.To.String()),
		attribute.String("translation.kind", req.Kind.String()),
	))
	defer span.End()

	res := c.resolve(ctx, req)
	span.SetAttributes(
		attribute.String("translation.source", res.Source),
		attribute.Int("translation.attempts", len(res.Attempts)),
	)
	c.recordResolution(req.Kind, res.Source)
	return res
}

func (c *Cascade) resolve(ctx context.Context, req provider.Request) Resolution {
	if req.Pair().IsIdentity() {
		return Resolution{Text: req.Text, Source: SourceIdentity}
	}
	if strings.TrimSpace(req.Text) == "" {
		return Resolution{Text: "", Source: SourceIdentity}
	}

	key := cache.Key(req.From, req.To, req.Text)
	if v, ok := c.cache.Get(ctx, key); ok {
		return Resolution{Text: v, Source: SourceCache, FromCache: true}
	}

	// The shared run outlives any single caller; each caller stops waiting
	// on its own context while per-call timeouts still bound the providers.
	ch := c.group.DoChan(key+"|"+req.Kind.String(), func() (any, error) {
		return c.runTiers(context.WithoutCancel(ctx), req, key), nil
	})
	var out singleflight.Result
	select {
	case out = <-ch:
	case <-ctx.Done():
		return Resolution{Text: req.Text, Source: SourceFallback}
	}
	res := out.Val.(Resolution)
	if out.Shared {
		if c.metrics != nil {
			c.metrics.RecordCoalesced()
		}
		res.Attempts = nil
	}
	return res
}

func (c *Cascade) runTiers(ctx context.Context, req provider.Request, key string) Resolution {
	attempts := make([]provider.Result, 0, len(c.providers))
	for _, p := range c.providers {
		res := c.attempt(ctx, p, req)
		attempts = append(attempts, res)
		if res.OK() {
			c.cache.Set(ctx, key, res.Text)
			return Resolution{Text: res.Text, Source: res.Provider, Attempts: attempts}
		}
	}

	c.log.DebugContext(ctx, "no provider produced a translation",
		slog.String("pair", req.Pair().String()),
		slog.Int("attempts", len(attempts)),
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
	)
	return Resolution{Text: req.Text, Source: SourceFallback, Attempts: attempts}
}

type callOutcome struct {
	text string
	err  error
}

// attempt makes one bounded call to p. The call runs in its own goroutine so
// that a provider ignoring its context still cannot hold the cascade past
// the timeout.
func (c *Cascade) attempt(ctx context.Context, p provider.Translator, req provider.Request) provider.Result {
	name := p.Name()
	ctx, span := c.tracer.Start(ctx, "translation.tier", trace.WithAttributes(
		attribute.String("translation.provider", name),
	))
	defer span.End()

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan callOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- callOutcome{err: provider.NewError(name, provider.ErrPanic, fmt.Errorf("%v", r))}
			}
		}()
		text, err := p.Translate(callCtx, req)
		done <- callOutcome{text: text, err: err}
	}()

	var out callOutcome
	select {
	case out = <-done:
	case <-callCtx.Done():
		out = callOutcome{err: provider.TransportError(name, callCtx.Err())}
	}

	res := provider.Result{Provider: name, Duration: time.Since(start)}
	switch {
	case out.err != nil:
		res.Err = asProviderError(name, out.err)
	default:
		res.Text, res.Err = accept(name, req.Text, out.text)
	}

	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())
	}
	c.observe(ctx, res)
	return res
}

// accept applies the acceptance rule: a translation must be non-empty and
// must not merely echo the input.
func accept(name, input, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", provider.NewError(name, provider.ErrEmpty, nil)
	}
	if domain.EqualFold(text, input) {
		return "", provider.NewError(name, provider.ErrEcho, nil)
	}
	return text, nil
}

func asProviderError(name string, err error) error {
	if provider.KindOf(err) != "" {
		return err
	}
	return provider.TransportError(name, err)
}

func (c *Cascade) observe(ctx context.Context, res provider.Result) {
	outcome := outcomeAccepted
	if res.Err != nil {
		outcome = string(provider.KindOf(res.Err))
	}
	if c.metrics != nil {
		c.metrics.RecordProviderAttempt(res.Provider, outcome, res.Duration)
	}
	if res.Err == nil {
		return
	}

	level := slog.LevelWarn
	if k := provider.KindOf(res.Err); k == provider.ErrEmpty || k == provider.ErrEcho {
		level = slog.LevelDebug
	}
	c.log.Log(ctx, level, "provider attempt failed",
		slog.String("provider", res.Provider),
		slog.String("outcome", outcome),
		slog.Duration("duration", res.Duration),
		slog.String("error", res.Err.Error()),
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
	)
}

func (c *Cascade) recordResolution(kind provider.Kind, source string) {
	if c.metrics != nil {
		c.metrics.RecordResolution(kind.String(), source)
	}
}
