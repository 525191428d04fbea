package textseg

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/heartmarshall/amistad-translator/internal/domain"
)

// Tokenize splits one sentence into surface tokens.
//
// Spaced text is split on whitespace and each chunk is further split into a
// leading punctuation run, its body and a trailing punctuation run, so
// "¿qué?" yields "¿", "qué", "?". Unspaced text containing CJK is split into
// runs separated by CJK punctuation, each punctuation rune being its own
// token; those runs are refined later by the greedy segmenter. Anything else
// is a single token. Blank input yields an empty slice.
func Tokenize(sentence string) []string {
	s := strings.TrimSpace(sentence)
	if s == "" {
		return []string{}
	}

	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		fields := strings.Fields(s)
		out := make([]string, 0, len(fields)+2)
		for _, chunk := range fields {
			out = append(out, SplitEdges(chunk)...)
		}
		return out
	}

	if HasCJK(s) {
		return splitCJKPunct(s)
	}
	return []string{s}
}

// TokenizeKinds is Tokenize with every surface classified.
func TokenizeKinds(sentence string) []domain.Token {
	surfaces := Tokenize(sentence)
	tokens := make([]domain.Token, len(surfaces))
	for i, s := range surfaces {
		tokens[i] = Classify(s)
	}
	return tokens
}

// SplitEdges splits a whitespace-free chunk into leading punctuation, body
// and trailing punctuation, omitting empty parts. A chunk with no word rune
// is returned whole.
func SplitEdges(chunk string) []string {
	first := strings.IndexFunc(chunk, domain.IsWordRune)
	if first < 0 {
		return []string{chunk}
	}
	last := strings.LastIndexFunc(chunk, domain.IsWordRune)
	_, size := utf8.DecodeRuneInString(chunk[last:])
	end := last + size

	parts := make([]string, 0, 3)
	if first > 0 {
		parts = append(parts, chunk[:first])
	}
	parts = append(parts, chunk[first:end])
	if end < len(chunk) {
		parts = append(parts, chunk[end:])
	}
	return parts
}

func splitCJKPunct(s string) []string {
	var out []string
	start := 0
	for i, r := range s {
		if !IsCJKPunct(r) {
			continue
		}
		if i > start {
			out = append(out, s[start:i])
		}
		size := utf8.RuneLen(r)
		out = append(out, s[i:i+size])
		start = i + size
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

// JoinTokens re-joins tokens into display text. No space is written before a
// closing punctuation token, after an opening one, or between two CJK
// tokens. Straight quotes (" and ') alternate: a punctuation token ending in
// one that is not yet open glues to the next token, and one starting with an
// open quote glues to the previous. Empty tokens are skipped.
func JoinTokens(tokens []string) string {
	var (
		b     strings.Builder
		q     quoteState
		prev  string
		glued bool
	)
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		first, _ := utf8.DecodeRuneInString(tok)
		closing := isStraightQuote(first) && q.isOpen(first)
		if prev != "" && !glued && !closing && needsSpace(prev, tok) {
			b.WriteByte(' ')
		}
		b.WriteString(tok)

		glued = false
		if IsPunctuationOnly(tok) {
			for _, r := range tok {
				if isStraightQuote(r) {
					q.toggle(r)
				}
			}
			last, _ := utf8.DecodeLastRuneInString(tok)
			glued = isStraightQuote(last) && q.isOpen(last)
		}
		prev = tok
	}
	return b.String()
}

func isStraightQuote(r rune) bool { return r == '"' || r == '\'' }

// quoteState tracks which straight quotes are currently open.
type quoteState struct {
	double, single bool
}

func (q *quoteState) isOpen(r rune) bool {
	if r == '"' {
		return q.double
	}
	return q.single
}

func (q *quoteState) toggle(r rune) {
	if r == '"' {
		q.double = !q.double
		return
	}
	q.single = !q.single
}

func needsSpace(prev, next string) bool {
	last, _ := utf8.DecodeLastRuneInString(prev)
	first, _ := utf8.DecodeRuneInString(next)
	if IsOpening(last) || IsClosing(first) {
		return false
	}
	return !(unspaced(last) && unspaced(first))
}

// unspaced reports whether r belongs to text written without spaces:
// Han, Kana or full-width CJK punctuation.
func unspaced(r rune) bool {
	return ClassOf(r).IsCJK() || (r >= 0x3000 && r <= 0x303F) || (r >= 0xFF00 && r <= 0xFF65)
}
