package dictionary

import (
	"strings"
	"unicode"

	"github.com/heartmarshall/amistad-translator/internal/domain"
	"github.com/heartmarshall/amistad-translator/internal/textseg"
)

// maxPhrase bounds the number of tokens PhraseGloss tries to align.
const maxPhrase = 3

// Router resolves glosses and sentence translations from a Registry,
// composing two hops through domain.PivotLanguage when a pair has no direct
// entry. It never fails: the worst case is the input echoed back.
type Router struct {
	reg *Registry
}

func NewRouter(reg *Registry) *Router {
	return &Router{reg: reg}
}

// Registry returns the tables the router reads from.
func (rt *Router) Registry() *Registry { return rt.reg }

// Gloss translates a single token. An empty result means the token is
// elided in the target language (a particle with no equivalent).
func (rt *Router) Gloss(word string, from, to domain.Language) string {
	pair := domain.NewPair(from, to)
	raw := strings.TrimSpace(word)
	if raw == "" || textseg.IsPunctuationOnly(raw) {
		return word
	}

	if v, ok := rt.reg.Word(pair, raw); ok {
		return v
	}
	if pair.IsIdentity() {
		return word
	}

	out, resolved := raw, false
	if pair.From != domain.PivotLanguage {
		if v, ok := rt.reg.Word(domain.Pair{From: pair.From, To: domain.PivotLanguage}, out); ok {
			if v == "" {
				return ""
			}
			out, resolved = v, true
		}
	}
	if pair.To != domain.PivotLanguage {
		if v, ok := rt.reg.Word(domain.Pair{From: domain.PivotLanguage, To: pair.To}, out); ok {
			if v == "" {
				return ""
			}
			out, resolved = v, true
		}
	}
	if !resolved {
		return word
	}
	return out
}

// GlossSentence translates a sentence: an exact-sentence entry wins,
// otherwise every token is glossed and the result re-joined. Pairs with no
// table of their own go through the pivot, one leg at a time.
func (rt *Router) GlossSentence(sentence string, from, to domain.Language) string {
	pair := domain.NewPair(from, to)
	if pair.IsIdentity() {
		return sentence
	}
	s := strings.TrimSpace(sentence)
	if s == "" {
		return ""
	}

	if v, ok := rt.reg.Sentence(pair, s); ok && v != "" {
		return v
	}
	if rt.reg.HasPair(pair) {
		return rt.glossPieces(s, pair, func(piece string) string {
			return rt.Gloss(piece, pair.From, pair.To)
		})
	}

	out := s
	if pair.From != domain.PivotLanguage {
		out = rt.sentenceLeg(out, domain.Pair{From: pair.From, To: domain.PivotLanguage})
	}
	if pair.To != domain.PivotLanguage {
		out = rt.sentenceLeg(out, domain.Pair{From: domain.PivotLanguage, To: pair.To})
	}
	return out
}

// sentenceLeg translates along a single pair only. Tokens it has no entry
// for pass through unchanged.
func (rt *Router) sentenceLeg(s string, pair domain.Pair) string {
	if !rt.reg.HasPair(pair) {
		return s
	}
	if v, ok := rt.reg.Sentence(pair, s); ok && v != "" {
		return v
	}
	return rt.glossPieces(s, pair, func(piece string) string {
		if v, ok := rt.reg.Word(pair, piece); ok {
			return v
		}
		return piece
	})
}

func (rt *Router) glossPieces(s string, pair domain.Pair, gloss func(string) string) string {
	var out []string
	for _, tok := range textseg.Tokenize(s) {
		for _, piece := range rt.split(tok, pair) {
			if textseg.IsPunctuationOnly(piece) {
				out = append(out, piece)
				continue
			}
			if g := gloss(piece); g != "" {
				out = append(out, g)
			}
		}
	}
	return textseg.JoinTokens(out)
}

// split refines one tokenizer token: unspaced CJK is segmented greedily,
// anything else has its bounding punctuation split off.
func (rt *Router) split(tok string, pair domain.Pair) []string {
	if textseg.HasCJK(tok) {
		return GreedySegment(tok, rt.segmentKeys(pair))
	}
	return textseg.SplitEdges(tok)
}

// segmentKeys picks the keys the greedy segmenter uses for pair: the pair's
// own keys, or the keys towards the pivot when the pair has no table.
func (rt *Router) segmentKeys(pair domain.Pair) []string {
	if rt.reg.HasPair(pair) {
		return rt.reg.Keys(pair)
	}
	return rt.reg.Keys(domain.Pair{From: pair.From, To: domain.PivotLanguage})
}

// Segment greedily segments an unspaced run with the keys of the pair that
// will actually be used to translate it.
func (rt *Router) Segment(raw string, from, to domain.Language) []string {
	return GreedySegment(raw, rt.segmentKeys(domain.NewPair(from, to)))
}

// SentenceTokens tokenizes a sentence for display: unspaced CJK sentences
// are segmented greedily, a lone unspaced word has its punctuation split off,
// everything else goes through textseg.Tokenize.
func (rt *Router) SentenceTokens(sentence string, from, to domain.Language) []string {
	s := strings.TrimSpace(sentence)
	switch {
	case s == "":
		return []string{}
	case strings.ContainsFunc(s, unicode.IsSpace):
		return textseg.Tokenize(s)
	case textseg.HasCJK(s):
		return rt.Segment(s, from, to)
	default:
		return textseg.SplitEdges(s)
	}
}

// PhraseGloss looks for the longest dictionary phrase of two or more
// consecutive word tokens that covers tokens[index] and returns its
// translation. Punctuation tokens break phrases.
func (rt *Router) PhraseGloss(tokens []string, index int, from, to domain.Language) (string, bool) {
	if index < 0 || index >= len(tokens) {
		return "", false
	}
	pair := domain.NewPair(from, to)
	if pair.IsIdentity() {
		return "", false
	}

	for n := min(maxPhrase, len(tokens)); n >= 2; n-- {
		for start := max(0, index-n+1); start <= index && start+n <= len(tokens); start++ {
			span := tokens[start : start+n]
			if !allWords(span) {
				continue
			}
			if v, ok := rt.phrase(joinPhrase(span), pair); ok {
				return v, true
			}
		}
	}
	return "", false
}

func (rt *Router) phrase(key string, pair domain.Pair) (string, bool) {
	if v, ok := rt.reg.Word(pair, key); ok && v != "" {
		return v, true
	}
	if pair.From == domain.PivotLanguage {
		return "", false
	}
	v1, ok := rt.reg.Word(domain.Pair{From: pair.From, To: domain.PivotLanguage}, key)
	if !ok || v1 == "" {
		return "", false
	}
	if pair.To == domain.PivotLanguage {
		return v1, true
	}
	if v2, ok := rt.reg.Word(domain.Pair{From: domain.PivotLanguage, To: pair.To}, v1); ok && v2 != "" {
		return v2, true
	}
	return "", false
}

func allWords(tokens []string) bool {
	for _, t := range tokens {
		if textseg.IsPunctuationOnly(t) || strings.TrimSpace(t) == "" {
			return false
		}
	}
	return true
}

func joinPhrase(tokens []string) string {
	if textseg.HasCJK(strings.Join(tokens, "")) {
		return strings.Join(tokens, "")
	}
	return strings.Join(tokens, " ")
}
