package provider

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// UserAgent is sent by every remote provider.
const UserAgent = "amistad-translator/1.0"

// NewHTTPClient returns the client remote providers share. Requests are
// traced through otelhttp; timeout is a ceiling on top of the per-call
// context deadline the cascade sets.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}
