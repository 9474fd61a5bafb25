package llm

import "context"

// MockProvider is a deterministic Provider implementation for testing.
// Responses and errors are scripted per model name; every call is
// recorded so tests can assert invocation order.
type MockProvider struct {
	// Responses maps model name to the text returned for it.
	Responses map[string]string

	// Errors maps model name to the error returned for it. A model
	// present here fails regardless of Responses.
	Errors map[string]error

	// DefaultResponse is returned for models absent from both maps.
	DefaultResponse string

	// Calls records the model names passed to Complete, in order.
	Calls []string
}

// NewMockProvider creates a mock that answers every model with the
// given fixed response.
func NewMockProvider(response string) *MockProvider {
	return &MockProvider{DefaultResponse: response}
}

// Name identifies the provider in logs.
func (m *MockProvider) Name() string {
	return "mock"
}

// Complete returns the scripted response or error for the model.
func (m *MockProvider) Complete(ctx context.Context, model, prompt string) (string, error) {
	m.Calls = append(m.Calls, model)

	if err, ok := m.Errors[model]; ok {
		return "", err
	}
	if resp, ok := m.Responses[model]; ok {
		return resp, nil
	}
	return m.DefaultResponse, nil
}
