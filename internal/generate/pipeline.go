package generate

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pastforward-labs/pastforward/internal/post"
)

// Invoker is the slice of the llm.Invoker surface the pipeline needs.
type Invoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Pipeline composes prompt composition, model invocation, extraction,
// validation, the synthetic fallback and platform normalization into
// the single public operation Generate. One call runs the whole walk
// at most once: no stage is retried, and every upstream failure mode
// is absorbed by the fallback, so the only errors callers ever see are
// invalid parameters and context cancellation.
type Pipeline struct {
	invoker Invoker
	synth   *Synthesizer
	norm    *Normalizer
	logger  *logrus.Logger
}

// NewPipeline creates a generation pipeline. The invoker is required;
// building one is where missing provider configuration surfaces.
func NewPipeline(invoker Invoker, logger *logrus.Logger) (*Pipeline, error) {
	if invoker == nil {
		return nil, fmt.Errorf("invoker is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Pipeline{
		invoker: invoker,
		synth:   NewSynthesizer(),
		norm:    NewNormalizer(),
		logger:  logger,
	}, nil
}

// Generate produces a schema-complete Post for the given parameters.
// The contract is all-or-nothing per call: a cancelled context aborts
// remaining work and no partial result is surfaced.
func (p *Pipeline) Generate(ctx context.Context, params post.GenerationParams) (post.Post, error) {
	if err := params.Validate(); err != nil {
		return post.Post{}, err
	}

	prompt := ComposePrompt(params)

	raw, source := p.produce(ctx, prompt, params)
	if err := ctx.Err(); err != nil {
		return post.Post{}, err
	}

	result := p.norm.Normalize(raw, params)

	p.logger.WithFields(logrus.Fields{
		"source":   source,
		"platform": params.Platform,
		"era":      params.EraName(),
	}).Debug("Generated post")

	return result, nil
}

// produce runs the model path and reports which source supplied the
// raw record: "model" when invocation, extraction and validation all
// succeed, "fallback" otherwise. The synthetic result satisfies
// validation by construction, so produce is total short of a cancelled
// context.
func (p *Pipeline) produce(ctx context.Context, prompt string, params post.GenerationParams) (*RawPost, string) {
	text, err := p.invoker.Invoke(ctx, prompt)
	if err != nil {
		p.logger.WithError(err).Info("Model invocation failed, using synthetic fallback")
		return p.synth.Generate(params), "fallback"
	}

	raw, err := ExtractJSON(text)
	if err != nil {
		p.logger.WithError(err).Info("Response extraction failed, using synthetic fallback")
		return p.synth.Generate(params), "fallback"
	}

	if err := raw.Validate(); err != nil {
		p.logger.WithError(err).Info("Model response incomplete, using synthetic fallback")
		return p.synth.Generate(params), "fallback"
	}

	return raw, "model"
}
