package textseg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentSentences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "two latin sentences", input: "Hola. ¿Cómo estás?", want: []string{"Hola.", "¿Cómo estás?"}},
		{name: "combined terminators", input: "What?! Really... ok", want: []string{"What?!", "Really...", "ok"}},
		{name: "decimal kept", input: "Pi is 3.14 today.", want: []string{"Pi is 3.14 today."}},
		{name: "newlines", input: "first line\nsecond line\r\n\nthird", want: []string{"first line", "second line", "third"}},
		{name: "quote absorbed", input: `He said "hi." Then left.`, want: []string{`He said "hi."`, "Then left."}},
		{name: "japanese", input: "こんにちは！元気ですか？はい。", want: []string{"こんにちは！", "元気ですか？", "はい。"}},
		{name: "latin terminator before cjk", input: "OK.你好", want: []string{"OK.", "你好"}},
		{name: "terminator before capital", input: "Hola.Adiós. ¿Qué tal?", want: []string{"Hola.", "Adiós.", "¿Qué tal?"}},
		{name: "terminator before inverted mark", input: "Hola!¿Qué tal?", want: []string{"Hola!", "¿Qué tal?"}},
		{name: "abbreviation before lower case kept", input: "see e.g.x now", want: []string{"see e.g.x now"}},
		{name: "no terminator", input: "  just words  ", want: []string{"just words"}},
		{name: "only punctuation", input: "?!", want: []string{"?!"}},
		{name: "empty", input: "", want: []string{}},
		{name: "blank", input: " \n \n", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SegmentSentences(tt.input))
		})
	}
}
