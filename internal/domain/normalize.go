package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var punctReplacer = strings.NewReplacer(
	"‘", "'", "’", "'", "‚", "'", "ʼ", "'", "`", "'", "′", "'",
	"“", `"`, "”", `"`, "„", `"`,
	"–", "-", "—", "-", "―", "-",
)

// CanonicalizePunct maps typographic quote, apostrophe and dash variants onto
// their ASCII forms.
func CanonicalizePunct(s string) string {
	return punctReplacer.Replace(s)
}

// IsWordRune reports whether r can be part of a word: a letter, a digit or a
// combining mark. Everything else counts as punctuation or symbol.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}

// CleanText prepares text for a remote provider: NFC, canonical punctuation,
// whitespace runs collapsed into one space, trimmed. Casing is preserved.
func CleanText(text string) string {
	text = norm.NFC.String(CanonicalizePunct(text))
	return collapseSpaces(text)
}

// NormalizeText prepares text for comparison and cache keys:
//   - NFC, typographic punctuation canonicalized
//   - case folded
//   - whitespace trimmed and compressed into single spaces
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeText(text string) string {
	text = CleanText(text)
	if text == "" {
		return ""
	}
	return cases.Fold().String(text)
}

// NormalizeKey is NormalizeText with leading and trailing non-word runes
// stripped. Every dictionary table key and lookup goes through it so that
// "Hola!", "¡hola" and "HOLA" collapse onto the same entry.
func NormalizeKey(text string) string {
	return strings.TrimFunc(NormalizeText(text), func(r rune) bool {
		return !IsWordRune(r)
	})
}

// EqualFold reports whether a and b are the same text after NormalizeText.
func EqualFold(a, b string) bool {
	return NormalizeText(a) == NormalizeText(b)
}

func collapseSpaces(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	pendingSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
