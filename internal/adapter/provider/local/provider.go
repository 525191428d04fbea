package local

import (
	"context"

	"github.com/heartmarshall/amistad-translator/internal/dictionary"
	"github.com/heartmarshall/amistad-translator/internal/provider"
)

const name = "dictionary"

// Provider is the on-device tier: it answers from the bundled dictionaries
// through the pivot router and never touches the network.
type Provider struct {
	router *dictionary.Router
}

func NewProvider(router *dictionary.Router) *Provider {
	return &Provider{router: router}
}

func (p *Provider) Name() string { return name }

// Translate glosses words and translates sentences. An elided token comes
// back as "".
func (p *Provider) Translate(ctx context.Context, req provider.Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", provider.TransportError(name, err)
	}
	if req.Kind == provider.KindWord {
		return p.router.Gloss(req.Text, req.From, req.To), nil
	}
	return p.router.GlossSentence(req.Text, req.From, req.To), nil
}
