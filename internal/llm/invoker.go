package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pastforward-labs/pastforward/internal/config"
)

// DefaultGeminiModels is the ordered Gemini candidate list. Several
// entries are aliases for the same model family; the redundancy
// tolerates upstream naming drift. Order encodes preference and must
// be stable across deployments for reproducible behavior.
var DefaultGeminiModels = []string{
	"gemini-1.5-pro",
	"gemini-pro",
	"models/gemini-pro",
	"models/gemini-1.5-pro",
}

// DefaultOpenAIModel is the chat model appended as a cross-provider
// fallback when OpenAI credentials are configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// Candidate pairs a provider with one of its model identifiers.
type Candidate struct {
	Provider Provider
	Model    string
}

// Invoker tries an ordered, fixed list of candidate models against a
// single prompt until one succeeds or all fail. This is a
// last-success-wins policy, not best-of-N: candidates are attempted
// strictly one at a time, a failed call eliminates that candidate for
// the whole invocation, and the first success stops the walk. Worst
// case latency is bounded by len(candidates) x the per-call timeout.
type Invoker struct {
	candidates []Candidate
	timeout    time.Duration
	logger     *logrus.Logger
}

// NewInvoker creates an invoker over the given candidate list.
// An empty list is the fatal configuration condition: unlike every
// pipeline-internal failure it is surfaced to the caller.
func NewInvoker(candidates []Candidate, timeout time.Duration, logger *logrus.Logger) (*Invoker, error) {
	if len(candidates) == 0 {
		return nil, ErrNoProvider
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Invoker{
		candidates: candidates,
		timeout:    timeout,
		logger:     logger,
	}, nil
}

// NewInvokerFromEnv builds the default candidate list from the process
// environment: the Gemini alias ladder when GEMINI_API_KEY is set,
// plus an OpenAI fallback when OPENAI_API_KEY is set. Returns
// ErrNoProvider when neither key is present.
func NewInvokerFromEnv(ctx context.Context, logger *logrus.Logger) (*Invoker, error) {
	var candidates []Candidate

	if config.GetEnv("GEMINI_API_KEY", "") != "" {
		gemini, err := NewGeminiProvider(ctx, Config{})
		if err != nil {
			return nil, err
		}
		for _, model := range DefaultGeminiModels {
			candidates = append(candidates, Candidate{Provider: gemini, Model: model})
		}
	}

	if config.GetEnv("OPENAI_API_KEY", "") != "" {
		oai, err := NewOpenAIProvider(Config{})
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, Candidate{Provider: oai, Model: DefaultOpenAIModel})
	}

	timeout := time.Duration(config.GetEnvInt("LLM_TIMEOUT_SECONDS", 30)) * time.Second
	return NewInvoker(candidates, timeout, logger)
}

// Candidates returns a copy of the candidate list, preserving order.
func (inv *Invoker) Candidates() []Candidate {
	out := make([]Candidate, len(inv.candidates))
	copy(out, inv.candidates)
	return out
}

// Invoke walks the candidate list in declared order. Each candidate
// gets exactly one call under its own timeout; any error advances to
// the next candidate. The first successful response is returned
// verbatim, with no merging of partial results. When every candidate
// fails the returned error wraps ErrProviderUnavailable and carries
// the last provider error for diagnostics.
func (inv *Invoker) Invoke(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for _, candidate := range inv.candidates {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		callCtx, cancel := context.WithTimeout(ctx, inv.timeout)
		text, err := candidate.Provider.Complete(callCtx, candidate.Model, prompt)
		cancel()

		if err != nil {
			inv.logger.WithFields(logrus.Fields{
				"provider": candidate.Provider.Name(),
				"model":    candidate.Model,
			}).WithError(err).Warn("Candidate model failed, trying next")
			lastErr = err
			continue
		}

		inv.logger.WithFields(logrus.Fields{
			"provider": candidate.Provider.Name(),
			"model":    candidate.Model,
		}).Debug("Candidate model succeeded")
		return text, nil
	}

	return "", fmt.Errorf("%w: %w", ErrProviderUnavailable, lastErr)
}
