package textseg

import (
	"strings"
	"unicode"
)

// trailing closers a terminator run may absorb: `He said "hi."` stays whole.
var sentenceClosers = runeSet(`"'”’»」』）)]`)

// SegmentSentences splits text into trimmed, non-empty sentences. Lines are
// split first; within a line a run of terminators (". ! ? 。 ！ ？", possibly
// combined like "?!" or "...") ends a sentence when it is followed by
// whitespace, the end of the line, a CJK rune, an upper-case letter or an
// opening ¿ or ¡, or when the run contains a full-width terminator. "3.14"
// and "e.g.x" therefore stay whole while "Hola.Adiós" splits.
// Non-blank text always yields at least one sentence.
func SegmentSentences(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []string{}
	}

	var out []string
	for _, line := range strings.Split(trimmed, "\n") {
		out = append(out, splitLine(line)...)
	}
	if len(out) == 0 {
		return []string{trimmed}
	}
	return out
}

func splitLine(line string) []string {
	rs := []rune(line)
	var out []string
	emit := func(from, to int) {
		if s := strings.TrimSpace(string(rs[from:to])); s != "" {
			out = append(out, s)
		}
	}

	start := 0
	for i := 0; i < len(rs); i++ {
		if !IsSentenceTerminal(rs[i]) {
			continue
		}
		j := i
		fullWidth := false
		for j < len(rs) && IsSentenceTerminal(rs[j]) {
			if rs[j] > 0x7F {
				fullWidth = true
			}
			j++
		}
		for j < len(rs) {
			if _, ok := sentenceClosers[rs[j]]; !ok {
				break
			}
			j++
		}
		if j == len(rs) || fullWidth || opensSentence(rs[j]) {
			emit(start, j)
			start = j
		}
		i = j - 1
	}
	emit(start, len(rs))
	return out
}

func opensSentence(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsUpper(r) || r == '¿' || r == '¡' || ClassOf(r).IsCJK()
}
