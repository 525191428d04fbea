package dictionary

import (
	"unicode"

	"github.com/heartmarshall/amistad-translator/internal/textseg"
)

// GreedySegment splits an unspaced run of text using maximum munch over
// keys. At each position the longest key that prefixes the remaining text
// (compared in lower case) is taken. Where no key matches, the longest run of
// runes sharing the same script class is taken whole, so unknown words are
// not split into single characters. CJK punctuation is always its own token
// and whitespace is skipped.
//
// The segmentation is local: it never backtracks to find a globally better
// split.
func GreedySegment(raw string, keys []string) []string {
	text := []rune(raw)
	lower := make([]rune, len(text))
	for i, r := range text {
		lower[i] = unicode.ToLower(r)
	}
	candidates := make([][]rune, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			candidates = append(candidates, []rune(k))
		}
	}

	var out []string
	for i := 0; i < len(text); {
		r := text[i]
		switch {
		case unicode.IsSpace(r):
			i++
			continue
		case textseg.IsCJKPunct(r):
			out = append(out, string(r))
			i++
			continue
		}

		if n := longestPrefix(lower[i:], candidates); n > 0 {
			out = append(out, string(text[i:i+n]))
			i += n
			continue
		}

		cls := textseg.ClassOf(r)
		j := i + 1
		for j < len(text) {
			c := text[j]
			if unicode.IsSpace(c) || textseg.IsCJKPunct(c) || textseg.ClassOf(c) != cls {
				break
			}
			j++
		}
		out = append(out, string(text[i:j]))
		i = j
	}
	return out
}

func longestPrefix(text []rune, keys [][]rune) int {
	best := 0
	for _, k := range keys {
		if len(k) <= best || len(k) > len(text) {
			continue
		}
		if hasPrefix(text, k) {
			best = len(k)
		}
	}
	return best
}

func hasPrefix(text, prefix []rune) bool {
	for i, r := range prefix {
		if text[i] != r {
			return false
		}
	}
	return true
}
