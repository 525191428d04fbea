package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/amistad-translator/internal/domain"
	"github.com/heartmarshall/amistad-translator/internal/provider"
)

const (
	name           = "google"
	defaultBaseURL = "https://translate.googleapis.com"
)

// Provider calls the public Google Translate "gtx" endpoint.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider. An empty baseURL selects the public
// endpoint.
func NewProvider(baseURL string, httpClient *http.Client, logger *slog.Logger) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = provider.NewHTTPClient(10 * time.Second)
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        logger.With("adapter", name),
	}
}

func (p *Provider) Name() string { return name }

func (p *Provider) Translate(ctx context.Context, req provider.Request) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", provider.RegionalCode(req.From))
	q.Set("tl", provider.RegionalCode(req.To))
	q.Set("dt", "t")
	q.Set("q", domain.CleanText(req.Text))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/translate_a/single?"+q.Encode(), nil)
	if err != nil {
		return "", provider.NewError(name, provider.ErrTransport, fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("User-Agent", provider.UserAgent)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", provider.TransportError(name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", provider.StatusError(name, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", provider.TransportError(name, fmt.Errorf("read body: %w", err))
	}

	text, err := parseResponse(body)
	if err != nil {
		return "", provider.NewError(name, provider.ErrDecode, err)
	}

	p.log.DebugContext(ctx, "google response", slog.Int("length", len(text)))

	return strings.TrimSpace(text), nil
}

// parseResponse concatenates the translated segments of a gtx response:
// [[["hola","hello",null,null,1], ...], null, "en", ...].
func parseResponse(body []byte) (string, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("decode json: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("empty response")
	}

	if string(raw[0]) == "null" {
		return "", nil
	}
	var segments [][]any
	if err := json.Unmarshal(raw[0], &segments); err != nil {
		return "", fmt.Errorf("unexpected segments: %w", err)
	}

	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			b.WriteString(s)
		}
	}
	return b.String(), nil
}
