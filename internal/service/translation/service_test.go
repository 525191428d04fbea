package translation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/amistad-translator/internal/adapter/provider/local"
	"github.com/heartmarshall/amistad-translator/internal/cache"
	"github.com/heartmarshall/amistad-translator/internal/dictionary"
	"github.com/heartmarshall/amistad-translator/internal/domain"
	"github.com/heartmarshall/amistad-translator/internal/provider"
)

// newTestService wires the bundled dictionaries as the first tier and remote
// as the only network tier.
func newTestService(t *testing.T, remote *translatorMock) *Service {
	t.Helper()
	reg, err := dictionary.LoadDefault()
	require.NoError(t, err)
	router := dictionary.NewRouter(reg)

	c := cache.New(discardLogger(), nil, 0, nil)
	cascade := NewCascade(discardLogger(), c, nil, time.Second, local.NewProvider(router), remote)
	return NewService(discardLogger(), cascade, router)
}

func failingRemote() *translatorMock {
	return fixedTranslator("remote", "", provider.TransportError("remote", errors.New("network is unreachable")))
}

func TestTranslateWord_FromDictionary(t *testing.T) {
	t.Parallel()

	remote := failingRemote()
	svc := newTestService(t, remote)

	assert.Equal(t, "hola", svc.TranslateWord(context.Background(), "hi", domain.LanguageEN, domain.LanguageES))
	assert.Equal(t, "ありがとう", svc.TranslateWord(context.Background(), "спасибо", domain.LanguageRU, domain.LanguageJA))
	assert.Empty(t, remote.TranslateCalls())
}

func TestTranslateWord_FallsThroughToRemote(t *testing.T) {
	t.Parallel()

	remote := fixedTranslator("remote", "espíritu de la época", nil)
	svc := newTestService(t, remote)

	got := svc.TranslateWord(context.Background(), "Zeitgeist", domain.LanguageDE, domain.LanguageES)
	assert.Equal(t, "espíritu de la época", got)
	require.Len(t, remote.TranslateCalls(), 1)
	req := remote.TranslateCalls()[0].Req
	assert.Equal(t, provider.KindWord, req.Kind)
	assert.Equal(t, domain.LanguageDE, req.From)
}

func TestTranslateWord_ElidedParticleFallsThrough(t *testing.T) {
	t.Parallel()

	remote := failingRemote()
	svc := newTestService(t, remote)

	assert.Equal(t, "は", svc.TranslateWord(context.Background(), "は", domain.LanguageJA, domain.LanguageES))
	assert.Len(t, remote.TranslateCalls(), 1)
}

func TestTranslateWord_SecondCallHitsCache(t *testing.T) {
	t.Parallel()

	remote := fixedTranslator("remote", "Weltanschauung", nil)
	svc := newTestService(t, remote)
	ctx := context.Background()

	first := svc.TranslateWord(ctx, "worldview", domain.LanguageEN, domain.LanguageDE)
	second := svc.TranslateWord(ctx, "worldview", domain.LanguageEN, domain.LanguageDE)

	assert.Equal(t, first, second)
	assert.Len(t, remote.TranslateCalls(), 1)
}

func TestTranslateSentence_Empty(t *testing.T) {
	t.Parallel()

	remote := failingRemote()
	svc := newTestService(t, remote)

	assert.Equal(t, "", svc.TranslateSentence(context.Background(), "", domain.LanguageEN, domain.LanguageES))
	assert.Empty(t, remote.TranslateCalls())
}

func TestTranslateSentence_ExactEntry(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, failingRemote())

	assert.Equal(t, "¡Hola!", svc.TranslateSentence(context.Background(), "こんにちは！", domain.LanguageJA, domain.LanguageES))
}

func TestTranslateSentence_UnknownLanguageDefaultsToSpanish(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, failingRemote())

	got := svc.TranslateSentence(context.Background(), "¡Hola!", domain.Language("pt-BR"), domain.LanguageEN)
	assert.Equal(t, "Hello!", got)
}

func TestLookupWord(t *testing.T) {
	t.Parallel()

	remote := failingRemote()
	svc := newTestService(t, remote)
	ctx := context.Background()

	got := svc.LookupWord(ctx, "Danke", domain.LanguageDE, domain.LanguageES)
	assert.Equal(t, domain.WordMeaning{Word: "Danke", Meaning: "gracias", Source: "dictionary"}, got)

	got = svc.LookupWord(ctx, "Danke", domain.LanguageDE, domain.LanguageES)
	assert.True(t, got.FromCache)
	assert.Equal(t, SourceCache, got.Source)
	assert.Equal(t, "gracias", got.Meaning)

	got = svc.LookupWord(ctx, "Blumenkohl", domain.LanguageDE, domain.LanguageES)
	assert.Equal(t, domain.UnknownMeaning, got.Meaning)
	assert.Equal(t, SourceFallback, got.Source)

	got = svc.LookupWord(ctx, "¿?", domain.LanguageES, domain.LanguageEN)
	assert.Equal(t, domain.UnknownMeaning, got.Meaning)
	assert.Len(t, remote.TranslateCalls(), 1, "only Blumenkohl reached the network")
}

func TestBuildBlocks(t *testing.T) {
	t.Parallel()

	remote := failingRemote()
	svc := newTestService(t, remote)

	blocks := svc.BuildBlocks(context.Background(), "Hola, ¿cómo estás? Muchas gracias.", domain.LanguageES, domain.LanguageEN)
	require.Len(t, blocks, 2)

	first := blocks[0]
	assert.Equal(t, "Hola, ¿cómo estás?", first.Original)
	assert.Equal(t, "hello, ¿how are you?", first.Translated)
	require.Len(t, first.Tokens, 6)
	assert.Equal(t, domain.Token{Surface: "Hola", Kind: domain.TokenKindWord, Meaning: "hello"}, first.Tokens[0])
	assert.Equal(t, domain.Token{Surface: ",", Kind: domain.TokenKindPunct}, first.Tokens[1])
	assert.Equal(t, domain.Token{Surface: "¿", Kind: domain.TokenKindPunct}, first.Tokens[2])
	assert.Equal(t, "how", first.Tokens[3].Meaning)
	assert.Equal(t, "are you", first.Tokens[4].Meaning)

	second := blocks[1]
	assert.Equal(t, "Muchas gracias.", second.Original)
	assert.Equal(t, "Thank you very much.", second.Translated)
	require.Len(t, second.Tokens, 3)
	assert.Empty(t, second.Tokens[0].Meaning, "no gloss for an unknown word")
	assert.Equal(t, "thanks", second.Tokens[1].Meaning)
	assert.False(t, second.Tokens[2].IsWord())

	assert.Empty(t, remote.TranslateCalls())
}

func TestBuildBlocks_CJK(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, failingRemote())

	blocks := svc.BuildBlocks(context.Background(), "こんにちは！元気ですか？", domain.LanguageJA, domain.LanguageES)
	require.Len(t, blocks, 2)
	assert.Equal(t, "こんにちは！", blocks[0].Original)
	assert.Equal(t, "¡Hola!", blocks[0].Translated)

	surfaces := make([]string, 0, len(blocks[1].Tokens))
	for _, tok := range blocks[1].Tokens {
		surfaces = append(surfaces, tok.Surface)
	}
	assert.Equal(t, []string{"元気ですか", "？"}, surfaces)
}

func TestBuildBlocks_SequentialResolution(t *testing.T) {
	t.Parallel()

	inFlight := 0
	maxInFlight := 0
	remote := &translatorMock{
		NameFunc: func() string { return "remote" },
		TranslateFunc: func(ctx context.Context, req provider.Request) (string, error) {
			inFlight++
			maxInFlight = max(maxInFlight, inFlight)
			time.Sleep(5 * time.Millisecond)
			inFlight--
			return "[" + req.Text + "]", nil
		},
	}
	svc := newTestService(t, remote)

	blocks := svc.BuildBlocks(context.Background(), "Xyzzy eins. Plugh zwei. Quux drei.", domain.LanguageDE, domain.LanguageES)
	require.Len(t, blocks, 3)
	assert.Equal(t, 1, maxInFlight)
	assert.Len(t, remote.TranslateCalls(), 3)
}

func TestBuildBlocks_Blank(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, failingRemote())
	assert.Empty(t, svc.BuildBlocks(context.Background(), "  \n ", domain.LanguageES, domain.LanguageEN))
}

func TestTranslateWordInContext(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, failingRemote())
	ctx := context.Background()

	got := svc.TranslateWordInContext(ctx, "Как дела?", 0, domain.LanguageRU, domain.LanguageES)
	assert.Equal(t, "Как", got.Token)
	assert.Equal(t, "Как дела?", got.Sentence)
	assert.Equal(t, "¿Cómo estás?", got.Translated)
	assert.Equal(t, "¿cómo estás?", got.InContext)
	assert.Equal(t, "cómo", got.Standalone)
	assert.Equal(t, "¿cómo estás?", got.Meaning)
}

func TestTranslateWordInContext_AcrossSentences(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, failingRemote())

	// Tokens: [Hallo ! Danke , Berlin !]
	got := svc.TranslateWordInContext(context.Background(), "Hallo! Danke, Berlin!", 4, domain.LanguageDE, domain.LanguageES)
	assert.Equal(t, "Berlin", got.Token)
	assert.Equal(t, "Danke, Berlin!", got.Sentence)
	assert.Empty(t, got.InContext)
	assert.Equal(t, "Berlín", got.Standalone)
	assert.Equal(t, "Berlín", got.Meaning)
}

func TestTranslateWordInContext_OneWordSentence(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, failingRemote())

	got := svc.TranslateWordInContext(context.Background(), "Hallo!", 0, domain.LanguageDE, domain.LanguageEN)
	assert.Equal(t, "Hallo", got.Token)
	assert.Equal(t, "Hello!", got.Translated)
	assert.Equal(t, "Hello", got.InContext)
	assert.Equal(t, "hello", got.Standalone)
	assert.Equal(t, "Hello", got.Meaning)
}

func TestTranslateWordInContext_Unknown(t *testing.T) {
	t.Parallel()

	remote := failingRemote()
	svc := newTestService(t, remote)
	ctx := context.Background()

	tests := []struct {
		name  string
		text  string
		index int
	}{
		{name: "negative index", text: "Hola amigo", index: -1},
		{name: "past the end", text: "Hola amigo", index: 2},
		{name: "empty text", text: "", index: 0},
		{name: "punctuation token", text: "Hola, amigo", index: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.TranslateWordInContext(ctx, tt.text, tt.index, domain.LanguageES, domain.LanguageEN)
			assert.Equal(t, domain.UnknownMeaning, got.Meaning)
			assert.Equal(t, tt.index, got.Index)
		})
	}
	assert.Empty(t, remote.TranslateCalls())
}

func TestService_TokenizeAndSegment(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, failingRemote())

	assert.Equal(t, []string{"Hola", ",", "¿", "cómo", "estás", "?"}, svc.Tokenize("Hola, ¿cómo estás?"))
	assert.Equal(t, []string{"Hi.", "How are you?"}, svc.SegmentSentences("Hi. How are you?"))
}
