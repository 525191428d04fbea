package translation

import (
	"context"

	"github.com/heartmarshall/amistad-translator/internal/domain"
	"github.com/heartmarshall/amistad-translator/internal/provider"
	"github.com/heartmarshall/amistad-translator/internal/textseg"
	"github.com/heartmarshall/amistad-translator/pkg/ctxutil"
)

// TranslateWordInContext looks up the token at tokenIndex of fullText, where
// tokens are counted across all sentences in the order BuildBlocks returns
// them. The in-context meaning comes from a dictionary phrase spanning the
// token or, for a one-word sentence, from the sentence translation itself.
// An index outside the token list yields domain.UnknownMeaning.
func (s *Service) TranslateWordInContext(ctx context.Context, fullText string, tokenIndex int, from, to domain.Language) domain.ContextMeaning {
	out := domain.ContextMeaning{Index: tokenIndex, Meaning: domain.UnknownMeaning}
	if tokenIndex < 0 {
		return out
	}
	ctx, _ = ctxutil.EnsureRequestID(ctx)

	sentence, tokens, local, ok := s.locate(fullText, tokenIndex, from, to)
	if !ok {
		return out
	}
	out.Token = tokens[local]
	out.Sentence = sentence
	if textseg.IsPunctuationOnly(out.Token) {
		return out
	}

	sentRes := s.resolve(ctx, sentence, from, to, provider.KindSentence)
	out.Translated = sentRes.Text

	if phrase, ok := s.router.PhraseGloss(tokens, local, from, to); ok {
		out.InContext = phrase
	} else if wordCount(tokens) == 1 && sentRes.Resolved() {
		out.InContext = stripEdges(sentRes.Text)
	}

	if word := s.resolve(ctx, out.Token, from, to, provider.KindWord); meaningful(out.Token, word.Text) {
		out.Standalone = word.Text
	}

	switch {
	case out.InContext != "":
		out.Meaning = out.InContext
	case out.Standalone != "":
		out.Meaning = out.Standalone
	}
	return out
}

// locate finds the sentence holding the global token index and the token's
// position inside it.
func (s *Service) locate(fullText string, index int, from, to domain.Language) (string, []string, int, bool) {
	offset := 0
	for _, sentence := range textseg.SegmentSentences(fullText) {
		tokens := s.router.SentenceTokens(sentence, from, to)
		if index < offset+len(tokens) {
			return sentence, tokens, index - offset, true
		}
		offset += len(tokens)
	}
	return "", nil, 0, false
}

func wordCount(tokens []string) int {
	n := 0
	for _, t := range tokens {
		if !textseg.IsPunctuationOnly(t) {
			n++
		}
	}
	return n
}

// stripEdges removes the punctuation bounding a one-word translation so that
// "Hello!" reads as the meaning "Hello".
func stripEdges(text string) string {
	var body string
	for _, part := range textseg.SplitEdges(text) {
		if !textseg.IsPunctuationOnly(part) {
			body = part
		}
	}
	if body == "" {
		return text
	}
	return body
}
