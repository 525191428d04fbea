package mymemory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/amistad-translator/internal/domain"
	"github.com/heartmarshall/amistad-translator/internal/provider"
)

const (
	name           = "mymemory"
	defaultBaseURL = "https://api.mymemory.translated.net"
)

// Quota and length warnings come back as a 200 with the warning in place of
// the translation.
var rejectedPrefixes = []string{"MYMEMORY WARNING", "QUERY LENGTH LIMIT"}

// Provider calls the MyMemory community translation API (GET /get).
type Provider struct {
	baseURL    string
	email      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider. An empty baseURL selects the public
// endpoint; email, when set, raises the anonymous daily quota.
func NewProvider(baseURL, email string, httpClient *http.Client, logger *slog.Logger) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = provider.NewHTTPClient(10 * time.Second)
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		email:      email,
		httpClient: httpClient,
		log:        logger.With("adapter", name),
	}
}

func (p *Provider) Name() string { return name }

type apiResponse struct {
	ResponseData struct {
		TranslatedText string  `json:"translatedText"`
		Match          float64 `json:"match"`
	} `json:"responseData"`
	ResponseStatus  responseStatus `json:"responseStatus"`
	ResponseDetails string         `json:"responseDetails"`
}

// responseStatus is sent as a number on success and sometimes as a string
// on errors ("403").
type responseStatus int

func (s *responseStatus) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("responseStatus %s: %w", data, err)
	}
	*s = responseStatus(n)
	return nil
}

func (p *Provider) Translate(ctx context.Context, req provider.Request) (string, error) {
	q := url.Values{}
	q.Set("q", domain.CleanText(req.Text))
	q.Set("langpair", provider.RegionalCode(req.From)+"|"+provider.RegionalCode(req.To))
	if p.email != "" {
		q.Set("de", p.email)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/get?"+q.Encode(), nil)
	if err != nil {
		return "", provider.NewError(name, provider.ErrTransport, fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Accept", "application/json")
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

	var out apiResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", provider.NewError(name, provider.ErrDecode, err)
	}
	if out.ResponseStatus != http.StatusOK {
		perr := provider.StatusError(name, int(out.ResponseStatus))
		if out.ResponseDetails != "" {
			perr.Err = errors.New(out.ResponseDetails)
		}
		return "", perr
	}

	text := strings.TrimSpace(out.ResponseData.TranslatedText)
	upper := strings.ToUpper(text)
	for _, prefix := range rejectedPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return "", provider.NewError(name, provider.ErrRejected, errors.New(text))
		}
	}
	// Percent-encoded query text echoed back instead of a translation.
	if strings.Contains(text, "%") {
		return "", provider.NewError(name, provider.ErrRejected, fmt.Errorf("percent-encoded answer %q", text))
	}

	p.log.DebugContext(ctx, "mymemory response",
		slog.Int("status", int(out.ResponseStatus)),
		slog.Float64("match", out.ResponseData.Match),
	)

	return text, nil
}
