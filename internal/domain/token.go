package domain

// UnknownMeaning is shown by presentation code when no translation better
// than the input itself could be found.
const UnknownMeaning = "—"

// Token is one surface unit of a tokenized sentence. Kind is derived from the
// surface; Meaning is attached lazily and empty until then.
type Token struct {
	Surface string
	Kind    TokenKind
	Meaning string
}

// IsWord reports whether the token is eligible for per-word translation.
func (t Token) IsWord() bool { return t.Kind == TokenKindWord }

// SentenceBlock is one segmented sentence of a message together with its
// tokenization and best-effort whole-sentence translation.
type SentenceBlock struct {
	Original   string
	Tokens     []Token
	Translated string
}

// WordMeaning is the outcome of a single-word lookup.
type WordMeaning struct {
	Word string
	// Meaning is UnknownMeaning when nothing better than Word was found.
	Meaning string
	// Source names the tier that produced Meaning ("identity", "cache",
	// "dictionary", a remote provider name, or "fallback").
	Source    string
	FromCache bool
}

// ContextMeaning is the outcome of looking up a token inside a full text.
type ContextMeaning struct {
	Index int
	Token string
	// InContext is the meaning derived from the surrounding sentence, empty
	// when no alignment produced one.
	InContext string
	// Standalone is the gloss of the token on its own.
	Standalone string
	// Sentence is the segmented sentence holding the token and Translated its
	// best-effort translation.
	Sentence   string
	Translated string
	// Meaning is InContext when non-empty, else Standalone, else UnknownMeaning.
	Meaning string
}

// NewToken builds a token for surface, deriving its kind: a surface with no
// letter, digit or mark is punctuation.
func NewToken(surface string) Token {
	kind := TokenKindPunct
	for _, r := range surface {
		if IsWordRune(r) {
			kind = TokenKindWord
			break
		}
	}
	return Token{Surface: surface, Kind: kind}
}
