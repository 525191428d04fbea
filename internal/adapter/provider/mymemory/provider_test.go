package mymemory

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/amistad-translator/internal/domain"
	"github.com/heartmarshall/amistad-translator/internal/provider"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProvider_Translate_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get", r.URL.Path)
		assert.Equal(t, "Как дела?", r.URL.Query().Get("q"))
		assert.Equal(t, "ru|zh-CN", r.URL.Query().Get("langpair"))
		assert.Equal(t, "me@example.com", r.URL.Query().Get("de"))
		w.Write([]byte(`{"responseData":{"translatedText":"你好吗？","match":0.98},"responseStatus":200}`))
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, "me@example.com", nil, newTestLogger())
	got, err := p.Translate(context.Background(), provider.Request{Text: " Как  дела? ", From: domain.LanguageRU, To: domain.LanguageZH})
	require.NoError(t, err)
	assert.Equal(t, "你好吗？", got)
}

func TestProvider_Translate_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantKind   provider.ErrorKind
		wantStatus int
	}{
		{name: "in-body status as string", status: 200, body: `{"responseData":{"translatedText":"INVALID LANGUAGE PAIR"},"responseStatus":"403","responseDetails":"INVALID LANGUAGE PAIR"}`, wantKind: provider.ErrStatus, wantStatus: 403},
		{name: "in-body status as number", status: 200, body: `{"responseData":{"translatedText":""},"responseStatus":429}`, wantKind: provider.ErrStatus, wantStatus: 429},
		{name: "quota warning", status: 200, body: `{"responseData":{"translatedText":"MYMEMORY WARNING: YOU USED ALL AVAILABLE FREE TRANSLATIONS FOR TODAY"},"responseStatus":200}`, wantKind: provider.ErrRejected},
		{name: "percent-encoded echo", status: 200, body: `{"responseData":{"translatedText":"hola%20amigo"},"responseStatus":200}`, wantKind: provider.ErrRejected},
		{name: "http status", status: 503, body: ``, wantKind: provider.ErrStatus, wantStatus: 503},
		{name: "malformed", status: 200, body: `{"responseData":`, wantKind: provider.ErrDecode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewProvider(serve(t, tt.status, tt.body).URL, "", nil, newTestLogger())
			_, err := p.Translate(context.Background(), provider.Request{Text: "hola", From: domain.LanguageES, To: domain.LanguageEN})
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, provider.KindOf(err))

			var perr *provider.Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.wantStatus, perr.Status)
		})
	}
}

func TestNewProvider_DefaultURL(t *testing.T) {
	t.Parallel()

	p := NewProvider("", "", nil, newTestLogger())
	assert.Equal(t, defaultBaseURL, p.baseURL)
	assert.Equal(t, "mymemory", p.Name())
}
