package generate

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestExtractJSON_ProseWrapped(t *testing.T) {
	text := `Sure, here you go: {"content":"Hello","hashtags":["a","b"]} Hope that helps!`

	raw, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.Content != "Hello" {
		t.Errorf("content = %q, want Hello", raw.Content)
	}
	if !reflect.DeepEqual(raw.Hashtags, []string{"a", "b"}) {
		t.Errorf("hashtags = %v, want [a b]", raw.Hashtags)
	}
}

func TestExtractJSON_MarkdownFenced(t *testing.T) {
	text := "```json\n{\"content\":\"Bread and circuses\",\"likes\":\"12.3K\"}\n```"

	raw, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.Content != "Bread and circuses" {
		t.Errorf("content = %q", raw.Content)
	}
	if raw.Likes != "12.3K" {
		t.Errorf("likes = %q, want 12.3K", raw.Likes)
	}
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	// A naive first-to-last brace match would break on content that
	// itself contains braces inside quoted strings.
	text := `prefix {"content":"set notation: {x, y} and a stray \" quote","hashtags":["math"]} suffix`

	raw, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.Content != `set notation: {x, y} and a stray " quote` {
		t.Errorf("content = %q", raw.Content)
	}
}

func TestExtractJSON_NestedObjects(t *testing.T) {
	text := `note: {"content":"nested","hashtags":[],"extra":{"deep":{"deeper":1}}} done`

	raw, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.Content != "nested" {
		t.Errorf("content = %q", raw.Content)
	}
}

func TestExtractJSON_NumericEngagement(t *testing.T) {
	text := `{"content":"counts as numbers","likes":12300,"comments":457}`

	raw, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.Likes != "12300" {
		t.Errorf("likes = %q, want 12300", raw.Likes)
	}
	if raw.Comments != "457" {
		t.Errorf("comments = %q, want 457", raw.Comments)
	}
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON("I could not produce a post, sorry.")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestExtractJSON_UnbalancedBraces(t *testing.T) {
	_, err := ExtractJSON(`{"content":"truncated`)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestExtractJSON_InvalidJSON(t *testing.T) {
	_, err := ExtractJSON(`{content: not json}`)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestExtractJSON_RoundTrip(t *testing.T) {
	original := RawPost{
		Username: "TheRoyalScribe42",
		Verified: true,
		Date:     "1350 BCE",
		Location: "Thebes, Egypt",
		Content:  "The harvest festival begins tomorrow.",
		Hashtags: []string{"Harvest", "NileLife"},
		Likes:    "45.2K",
		Comments: "312",
	}

	payload, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	wrapped := "Certainly! Here is the post you asked for:\n\n" + string(payload) + "\n\nLet me know if you need another."
	got, err := ExtractJSON(wrapped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(*got, original) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *got, original)
	}
}
