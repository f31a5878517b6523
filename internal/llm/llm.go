package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts chat-completion providers. Implementations must return
// the raw JSON body of the model's reply.
type Client interface {
	Complete(ctx context.Context, system, user string) (json.RawMessage, error)
}

// ErrNotConfigured is returned by the placeholder client when no provider
// has been wired.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderClient is used when no API key is present so the engine can
// still serve heuristic results.
type PlaceholderClient struct{}

func (PlaceholderClient) Complete(ctx context.Context, system, user string) (json.RawMessage, error) {
	_ = ctx
	_ = system
	_ = user
	return nil, ErrNotConfigured
}

var _ Client = PlaceholderClient{}
