package provider

import (
	"context"
	"time"

	"github.com/heartmarshall/amistad-translator/internal/domain"
)

// Kind tells a provider whether it is translating a single token or a whole
// sentence. Remote providers treat both the same; the local dictionary does
// not.
type Kind string

const (
	KindWord     Kind = "word"
	KindSentence Kind = "sentence"
)

func (k Kind) String() string { return string(k) }

// Request is one translation request handed to a Translator.
type Request struct {
	Text string
	From domain.Language
	To   domain.Language
	Kind Kind
}

// Pair returns the normalized language pair of the request.
func (r Request) Pair() domain.Pair { return domain.NewPair(r.From, r.To) }

// Translator is a single tier of the cascade. Implementations return the
// translated text or an error; judging whether the text is a real
// translation is the caller's job.
type Translator interface {
	Name() string
	Translate(ctx context.Context, req Request) (string, error)
}

// Result is the outcome of one call to a Translator.
type Result struct {
	Provider string
	Text     string
	Err      error
	Duration time.Duration
}

// OK reports whether the call produced an accepted translation.
func (r Result) OK() bool { return r.Err == nil }
