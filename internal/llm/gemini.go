package llm

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// GeminiProvider implements the Provider interface using Google's
// Gemini API.
type GeminiProvider struct {
	client *genai.Client
	config Config
}

// NewGeminiProvider creates a Gemini-backed provider. The API key is
// taken from the config or the GEMINI_API_KEY environment variable.
func NewGeminiProvider(ctx context.Context, config Config) (*GeminiProvider, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing API key (set GEMINI_API_KEY or provide in config)", ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &GeminiProvider{
		client: client,
		config: config,
	}, nil
}

// Name identifies the provider in logs.
func (g *GeminiProvider) Name() string {
	return "gemini"
}

// Complete sends the prompt to the named Gemini model and returns the
// generated text.
func (g *GeminiProvider) Complete(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		return "", fmt.Errorf("%w: model name is required", ErrInvalidConfig)
	}
	if prompt == "" {
		return "", fmt.Errorf("%w: prompt cannot be empty", ErrInvalidConfig)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	genConfig := &genai.GenerateContentConfig{}
	if g.config.Temperature > 0 {
		genConfig.Temperature = genai.Ptr(g.config.Temperature)
	}
	if g.config.MaxTokens > 0 {
		genConfig.MaxOutputTokens = int32(g.config.MaxTokens)
	}

	result, err := g.client.Models.GenerateContent(ctx, model, contents, genConfig)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned no text for model %s", model)
	}

	return text, nil
}
