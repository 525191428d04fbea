package translation

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/amistad-translator/internal/domain"
	"github.com/heartmarshall/amistad-translator/internal/provider"
	"github.com/heartmarshall/amistad-translator/internal/textseg"
	"github.com/heartmarshall/amistad-translator/pkg/ctxutil"
)

// TranslateWord resolves a single token. The caller should not pass
// punctuation-only tokens; if it does they are echoed.
func (s *Service) TranslateWord(ctx context.Context, word string, from, to domain.Language) string {
	return s.resolve(ctx, word, from, to, provider.KindWord).Text
}

// TranslateSentence resolves one already-segmented sentence.
func (s *Service) TranslateSentence(ctx context.Context, sentence string, from, to domain.Language) string {
	return s.resolve(ctx, sentence, from, to, provider.KindSentence).Text
}

// LookupWord resolves a word and reports where the meaning came from.
// Meaning is domain.UnknownMeaning when nothing better than the word itself
// was found.
func (s *Service) LookupWord(ctx context.Context, word string, from, to domain.Language) domain.WordMeaning {
	out := domain.WordMeaning{Word: word, Meaning: domain.UnknownMeaning, Source: SourceIdentity}
	if textseg.IsPunctuationOnly(word) {
		return out
	}

	res := s.resolve(ctx, word, from, to, provider.KindWord)
	out.Source = res.Source
	out.FromCache = res.FromCache
	if meaningful(word, res.Text) {
		out.Meaning = res.Text
	}
	return out
}

func (s *Service) resolve(ctx context.Context, text string, from, to domain.Language, kind provider.Kind) Resolution {
	ctx, requestID := ctxutil.EnsureRequestID(ctx)
	res := s.cascade.Resolve(ctx, provider.Request{Text: text, From: from, To: to, Kind: kind})

	s.log.DebugContext(ctx, "resolved",
		slog.String("request_id", requestID),
		slog.String("kind", kind.String()),
		slog.String("pair", domain.NewPair(from, to).String()),
		slog.String("source", res.Source),
		slog.Bool("from_cache", res.FromCache),
	)
	return res
}

// meaningful reports whether out is worth showing as the meaning of in.
func meaningful(in, out string) bool {
	return out != "" && !domain.EqualFold(in, out)
}
