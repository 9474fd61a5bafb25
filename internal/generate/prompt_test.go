package generate

import (
	"strings"
	"testing"

	"github.com/pastforward-labs/pastforward/internal/post"
)

func TestComposePrompt_Smoke(t *testing.T) {
	params := post.GenerationParams{
		Era:           "Roman Empire (27 BCE-476 CE)",
		Location:      "Rome, Italy",
		CharacterType: "Senator",
		Platform:      post.PlatformTwitter,
		Creativity:    50,
	}

	prompt := ComposePrompt(params)

	// Minimal key checks (avoid brittle formatting tests)
	for _, want := range []string{
		"Roman Empire",
		"27 BCE-476 CE",
		"Rome, Italy",
		"Senator",
		"twitter",
		"Creativity level: 50",
		`"content"`,
		`"hashtags"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestComposePrompt_CustomPrompt(t *testing.T) {
	params := post.GenerationParams{
		Era:           "Renaissance (1400-1600)",
		Location:      "Florence, Italy",
		CharacterType: "Artist",
		Platform:      post.PlatformInstagram,
		CustomPrompt:  "Mention the new fresco commission.",
		Creativity:    80,
	}

	prompt := ComposePrompt(params)
	if !strings.Contains(prompt, "Additional context: Mention the new fresco commission.") {
		t.Error("custom prompt not appended verbatim")
	}
}

func TestComposePrompt_NoCustomPrompt(t *testing.T) {
	params := post.GenerationParams{
		Era:           "Ancient Egypt",
		Location:      "Giza, Egypt",
		CharacterType: "Scribe",
		Platform:      post.PlatformReddit,
		Creativity:    20,
	}

	prompt := ComposePrompt(params)
	if strings.Contains(prompt, "Additional context") {
		t.Error("prompt should not contain a context line when no hint was given")
	}
	// Eras without a date range still compose cleanly.
	if !strings.Contains(prompt, "Ancient Egypt") {
		t.Error("prompt missing era name")
	}
}
