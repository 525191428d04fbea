package textseg

import (
	"strings"
	"unicode"

	"github.com/heartmarshall/amistad-translator/internal/domain"
)

// Class is the script class of a rune as far as segmentation cares.
type Class int

const (
	ClassOther Class = iota
	ClassSpace
	ClassPunct
	ClassHan
	ClassKana
	ClassAlnum
)

func (c Class) String() string {
	switch c {
	case ClassSpace:
		return "space"
	case ClassPunct:
		return "punct"
	case ClassHan:
		return "han"
	case ClassKana:
		return "kana"
	case ClassAlnum:
		return "alnum"
	}
	return "other"
}

// IsCJK reports whether runes of the class are written without spaces.
func (c Class) IsCJK() bool { return c == ClassHan || c == ClassKana }

// ClassOf returns the script class of r. Letters and digits of every
// space-delimited script (Latin, Cyrillic, Greek...) share ClassAlnum.
func ClassOf(r rune) Class {
	switch {
	case unicode.IsSpace(r):
		return ClassSpace
	case isKana(r):
		return ClassKana
	case unicode.Is(unicode.Han, r):
		return ClassHan
	case domain.IsWordRune(r):
		return ClassAlnum
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		return ClassPunct
	}
	return ClassOther
}

// Hiragana and Katakana blocks, including the prolonged sound mark and
// iteration marks, which unicode.Hiragana/Katakana leave in Common.
func isKana(r rune) bool {
	if r < 0x3040 || r > 0x30FF {
		return unicode.Is(unicode.Katakana, r)
	}
	return domain.IsWordRune(r)
}

// HasCJK reports whether s contains any Han or Kana rune.
func HasCJK(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return ClassOf(r).IsCJK() }) >= 0
}

// IsPunctuationOnly reports whether tok is non-blank and has no letter or
// digit. Such tokens are never offered for per-word translation.
func IsPunctuationOnly(tok string) bool {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return false
	}
	return strings.IndexFunc(tok, domain.IsWordRune) < 0
}

// Classify turns a surface string into a domain token.
func Classify(surface string) domain.Token {
	return domain.NewToken(surface)
}

var cjkPunct = runeSet("。！？!?…、,，；;：:「」『』（）()【】．・〜～")

// IsCJKPunct reports whether r is split off as its own token inside an
// unspaced CJK run.
func IsCJKPunct(r rune) bool {
	_, ok := cjkPunct[r]
	return ok
}

var sentenceTerminals = runeSet(".!?。！？")

// IsSentenceTerminal reports whether r ends a sentence.
func IsSentenceTerminal(r rune) bool {
	_, ok := sentenceTerminals[r]
	return ok
}

var (
	openers = runeSet("¿¡([{<“‘«„「『（【〈《")
	closers = runeSet(".,!?;:…。、！？，；：)]}>”’»」』）】〉》%")
)

// IsOpening reports whether no space may follow r when joining tokens.
func IsOpening(r rune) bool {
	_, ok := openers[r]
	return ok
}

// IsClosing reports whether no space may precede r when joining tokens.
func IsClosing(r rune) bool {
	_, ok := closers[r]
	return ok
}

func runeSet(chars string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(chars))
	for _, r := range chars {
		set[r] = struct{}{}
	}
	return set
}
