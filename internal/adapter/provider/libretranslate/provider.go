package libretranslate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/heartmarshall/amistad-translator/internal/domain"
	"github.com/heartmarshall/amistad-translator/internal/provider"
)

const name = "libretranslate"

// Provider calls a LibreTranslate instance (POST /translate).
type Provider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider for the instance at baseURL. apiKey may be
// empty for instances that do not require one. A nil client gets the shared
// traced client.
func NewProvider(baseURL, apiKey string, httpClient *http.Client, logger *slog.Logger) *Provider {
	if httpClient == nil {
		httpClient = provider.NewHTTPClient(10 * time.Second)
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		log:        logger.With("adapter", name),
	}
}

func (p *Provider) Name() string { return name }

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error"`
}

// Translate translates req.Text. LibreTranslate uses plain ISO 639-1 codes,
// including "zh".
func (p *Provider) Translate(ctx context.Context, req provider.Request) (string, error) {
	payload, err := json.Marshal(translateRequest{
		Q:      domain.CleanText(req.Text),
		Source: req.From.Normalize().String(),
		Target: req.To.Normalize().String(),
		Format: "text",
		APIKey: p.apiKey,
	})
	if err != nil {
		return "", provider.NewError(name, provider.ErrDecode, fmt.Errorf("encode request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/translate", bytes.NewReader(payload))
	if err != nil {
		return "", provider.NewError(name, provider.ErrTransport, fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", provider.UserAgent)

	p.log.DebugContext(ctx, "libretranslate request",
		slog.String("from", req.From.String()),
		slog.String("to", req.To.String()),
	)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", provider.TransportError(name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", provider.TransportError(name, fmt.Errorf("read body: %w", err))
	}

	var out translateResponse
	decodeErr := json.Unmarshal(body, &out)

	if resp.StatusCode != http.StatusOK {
		perr := provider.StatusError(name, resp.StatusCode)
		if decodeErr == nil && out.Error != "" {
			perr.Err = errors.New(out.Error)
		}
		return "", perr
	}
	if decodeErr != nil {
		return "", provider.NewError(name, provider.ErrDecode, decodeErr)
	}
	if out.Error != "" {
		return "", provider.NewError(name, provider.ErrRejected, errors.New(out.Error))
	}

	return strings.TrimSpace(out.TranslatedText), nil
}
