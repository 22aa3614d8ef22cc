package remote

import (
	"context"
	"errors"
	"fmt"

	"github.com/hejijunhao/glossa/internal/model"
	"github.com/hejijunhao/glossa/internal/tagger"
	"github.com/hejijunhao/glossa/internal/tagger/httpclient"
)

func init() {
	tagger.Register("remote", func(cfg tagger.Config) (tagger.Tagger, error) {
		return New(cfg.Endpoint, cfg.APIKey)
	})
}

var errNoEndpoint = errors.New("remote tagger: endpoint is required")

type tagRequest struct {
	Text string `json:"text"`
}

type tagResponse struct {
	Tokens []model.Token `json:"tokens"`
}

type batchRequest struct {
	Texts []string `json:"texts"`
}

type batchResponse struct {
	Documents []tagResponse `json:"documents"`
}

// Tagger delegates tagging to an HTTP service exposing POST /tag and
// POST /tag/batch.
type Tagger struct {
	client *httpclient.Client
}

// New creates a remote Tagger for endpoint. apiKey may be empty.
func New(endpoint, apiKey string, opts ...httpclient.Option) (*Tagger, error) {
	if endpoint == "" {
		return nil, errNoEndpoint
	}
	return &Tagger{client: httpclient.New(endpoint, apiKey, opts...)}, nil
}

// Tag sends one text to the service.
func (t *Tagger) Tag(ctx context.Context, text string) ([]model.Token, error) {
	var resp tagResponse
	if err := t.client.PostJSON(ctx, "/tag", tagRequest{Text: text}, &resp); err != nil {
		return nil, fmt.Errorf("remote tagger: %w", err)
	}
	return resp.Tokens, nil
}

// TagBatch sends all texts in one request. The service must answer with one
// document per text, in order.
func (t *Tagger) TagBatch(ctx context.Context, texts []string) ([][]model.Token, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	var resp batchResponse
	if err := t.client.PostJSON(ctx, "/tag/batch", batchRequest{Texts: texts}, &resp); err != nil {
		return nil, fmt.Errorf("remote tagger: %w", err)
	}
	if len(resp.Documents) != len(texts) {
		return nil, fmt.Errorf("remote tagger: sent %d texts, got %d documents", len(texts), len(resp.Documents))
	}
	out := make([][]model.Token, len(texts))
	for i, d := range resp.Documents {
		out[i] = d.Tokens
	}
	return out, nil
}

// Close is a no-op; the HTTP client holds no resources that need releasing.
func (t *Tagger) Close() error {
	return nil
}
