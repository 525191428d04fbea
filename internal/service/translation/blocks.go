package translation

import (
	"context"

	"github.com/heartmarshall/amistad-translator/internal/domain"
	"github.com/heartmarshall/amistad-translator/internal/textseg"
	"github.com/heartmarshall/amistad-translator/pkg/ctxutil"
)

// Tokenize splits one sentence into surface tokens.
func (s *Service) Tokenize(sentence string) []string {
	return textseg.Tokenize(sentence)
}

// SegmentSentences splits a message into sentences.
func (s *Service) SegmentSentences(text string) []string {
	return textseg.SegmentSentences(text)
}

// BuildBlocks segments text into sentences and returns, for each, its
// tokens with their dictionary glosses attached and the whole-sentence
// translation. Sentences are resolved one after another, never in parallel,
// to bound the request volume sent to remote providers.
func (s *Service) BuildBlocks(ctx context.Context, text string, from, to domain.Language) []domain.SentenceBlock {
	ctx, _ = ctxutil.EnsureRequestID(ctx)

	sentences := textseg.SegmentSentences(text)
	blocks := make([]domain.SentenceBlock, 0, len(sentences))
	for _, sentence := range sentences {
		if ctx.Err() != nil {
			blocks = append(blocks, s.block(sentence, from, to, sentence))
			continue
		}
		blocks = append(blocks, s.block(sentence, from, to, s.TranslateSentence(ctx, sentence, from, to)))
	}
	return blocks
}

func (s *Service) block(sentence string, from, to domain.Language, translated string) domain.SentenceBlock {
	surfaces := s.router.SentenceTokens(sentence, from, to)
	tokens := make([]domain.Token, 0, len(surfaces))
	for _, surface := range surfaces {
		tok := domain.NewToken(surface)
		if tok.IsWord() {
			if g := s.router.Gloss(surface, from, to); meaningful(surface, g) {
				tok.Meaning = g
			}
		}
		tokens = append(tokens, tok)
	}
	return domain.SentenceBlock{Original: sentence, Tokens: tokens, Translated: translated}
}
