// Package llm provides provider-agnostic access to upstream text
// generation models. It defines a Provider interface with concrete
// implementations for Google Gemini and OpenAI, a deterministic mock
// for testing, and an Invoker that walks an ordered candidate list
// until one model produces text.
package llm

import (
	"context"
	"errors"
)

var (
	// ErrNoProvider is the one configuration error surfaced to callers:
	// no upstream provider is reachable, so the invoker cannot be built.
	ErrNoProvider = errors.New("no text-generation provider configured")

	// ErrProviderUnavailable reports that every candidate model failed.
	// The generation pipeline absorbs it via the synthetic fallback.
	ErrProviderUnavailable = errors.New("all candidate models failed")

	ErrInvalidConfig = errors.New("invalid provider configuration")
)

// Provider defines the interface for a single upstream completion
// service. Implementations must be stateless and safe for concurrent
// use; the model identifier is chosen per call by the Invoker.
type Provider interface {
	// Complete sends the prompt to the named model and returns the
	// generated text verbatim. Network, auth, quota and unknown-model
	// failures are all reported the same way: a non-nil error.
	Complete(ctx context.Context, model, prompt string) (string, error)

	// Name identifies the provider in logs.
	Name() string
}

// Config holds common configuration options shared by providers.
type Config struct {
	// APIKey authenticates against the provider.
	APIKey string

	// Temperature controls randomness (0 = use provider default).
	Temperature float32

	// MaxTokens limits the response length (0 = provider default).
	MaxTokens int
}
