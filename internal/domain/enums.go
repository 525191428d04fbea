package domain

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the six languages the engine resolves between.
type Language string

const (
	LanguageES Language = "es"
	LanguageEN Language = "en"
	LanguageDE Language = "de"
	LanguageJA Language = "ja"
	LanguageRU Language = "ru"
	LanguageZH Language = "zh"
)

const (
	// DefaultLanguage replaces any language code outside the supported set.
	DefaultLanguage = LanguageES
	// PivotLanguage composes translations between pairs with no direct dictionary.
	PivotLanguage = LanguageEN
)

// Languages lists the supported languages in a stable order.
var Languages = []Language{LanguageES, LanguageEN, LanguageDE, LanguageJA, LanguageRU, LanguageZH}

func (l Language) String() string { return string(l) }

func (l Language) IsValid() bool {
	switch l {
	case LanguageES, LanguageEN, LanguageDE, LanguageJA, LanguageRU, LanguageZH:
		return true
	}
	return false
}

// Normalize returns l if it is supported, otherwise the result of ParseLanguage.
func (l Language) Normalize() Language {
	if l.IsValid() {
		return l
	}
	return ParseLanguage(string(l))
}

// IsCJK reports whether the language is written without inter-word spaces.
func (l Language) IsCJK() bool {
	return l == LanguageJA || l == LanguageZH
}

// ParseLanguage maps a free-form language code onto the supported set.
// Region and script subtags are dropped ("zh-CN", "en_US" -> base), and
// anything unparseable or unsupported becomes DefaultLanguage. It never fails.
func ParseLanguage(s string) Language {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultLanguage
	}
	if l := Language(s); l.IsValid() {
		return l
	}

	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return DefaultLanguage
	}
	base, _ := tag.Base()
	if l := Language(base.String()); l.IsValid() {
		return l
	}
	return DefaultLanguage
}

// Pair is an ordered (from, to) language pair. It namespaces dictionary
// tables and cache keys.
type Pair struct {
	From Language
	To   Language
}

// NewPair builds a pair with both languages normalized.
func NewPair(from, to Language) Pair {
	return Pair{From: from.Normalize(), To: to.Normalize()}
}

// IsIdentity reports whether translating along the pair is a no-op.
func (p Pair) IsIdentity() bool { return p.From == p.To }

func (p Pair) String() string { return string(p.From) + "->" + string(p.To) }

// TokenKind classifies a token surface.
type TokenKind string

const (
	TokenKindWord  TokenKind = "word"
	TokenKindPunct TokenKind = "punct"
)

func (k TokenKind) String() string { return string(k) }

func (k TokenKind) IsValid() bool {
	switch k {
	case TokenKindWord, TokenKindPunct:
		return true
	}
	return false
}
