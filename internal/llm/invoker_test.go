package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestNewInvoker_NoCandidates(t *testing.T) {
	_, err := NewInvoker(nil, time.Second, testLogger())
	if !errors.Is(err, ErrNoProvider) {
		t.Fatalf("expected ErrNoProvider, got %v", err)
	}
}

func TestInvoker_FirstSuccessWins(t *testing.T) {
	mock := &MockProvider{
		Responses: map[string]string{
			"model-a": "response from A",
		},
	}

	inv, err := NewInvoker([]Candidate{
		{Provider: mock, Model: "model-a"},
		{Provider: mock, Model: "model-b"},
	}, time.Second, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := inv.Invoke(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "response from A" {
		t.Errorf("unexpected text: %q", text)
	}
	if len(mock.Calls) != 1 || mock.Calls[0] != "model-a" {
		t.Errorf("expected exactly one call to model-a, got %v", mock.Calls)
	}
}

func TestInvoker_StrictOrderAndEarlyStop(t *testing.T) {
	// A fails, B succeeds: C must never be invoked.
	mock := &MockProvider{
		Errors: map[string]error{
			"model-a": errors.New("not found"),
		},
		Responses: map[string]string{
			"model-b": "response from B",
			"model-c": "response from C",
		},
	}

	inv, err := NewInvoker([]Candidate{
		{Provider: mock, Model: "model-a"},
		{Provider: mock, Model: "model-b"},
		{Provider: mock, Model: "model-c"},
	}, time.Second, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := inv.Invoke(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "response from B" {
		t.Errorf("unexpected text: %q", text)
	}

	want := []string{"model-a", "model-b"}
	if len(mock.Calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, mock.Calls)
	}
	for i, model := range want {
		if mock.Calls[i] != model {
			t.Errorf("call %d: expected %s, got %s", i, model, mock.Calls[i])
		}
	}
}

func TestInvoker_AllFail(t *testing.T) {
	quotaErr := errors.New("quota exceeded")
	mock := &MockProvider{
		Errors: map[string]error{
			"model-a": errors.New("not found"),
			"model-b": quotaErr,
		},
	}

	inv, err := NewInvoker([]Candidate{
		{Provider: mock, Model: "model-a"},
		{Provider: mock, Model: "model-b"},
	}, time.Second, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = inv.Invoke(context.Background(), "prompt")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	// The last candidate's error is carried for diagnostics.
	if !errors.Is(err, quotaErr) {
		t.Errorf("expected wrapped quota error, got %v", err)
	}
}

func TestInvoker_ContextCancelled(t *testing.T) {
	mock := NewMockProvider("never reached")
	inv, err := NewInvoker([]Candidate{
		{Provider: mock, Model: "model-a"},
	}, time.Second, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = inv.Invoke(ctx, "prompt")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(mock.Calls) != 0 {
		t.Errorf("expected no calls after cancellation, got %v", mock.Calls)
	}
}
