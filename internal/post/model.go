// Package post defines the core data model for historical social-media
// posts: the user-supplied generation parameters, the platform enum, and
// the fully normalized Post record that every pipeline run produces.
package post

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidPlatform   = errors.New("invalid platform")
	ErrInvalidCreativity = errors.New("creativity must be between 0 and 100")
)

// Platform identifies the target social-network style a generated post
// must conform to. Each platform mandates a distinct set of fields.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
	PlatformReddit    Platform = "reddit"
)

// ParsePlatform converts a user-supplied string into a Platform.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformInstagram:
		return PlatformInstagram, nil
	case PlatformTwitter:
		return PlatformTwitter, nil
	case PlatformReddit:
		return PlatformReddit, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPlatform, s)
	}
}

// GenerationParams holds the user-chosen knobs for a single generation
// request. A value is constructed per request and discarded afterwards.
type GenerationParams struct {
	// Era is a historical period label, conventionally "Name (start-end)".
	Era string `json:"era"`

	// Location is free text, conventionally "City, Country".
	Location string `json:"location"`

	// CharacterType is the social role of the fictional author. It may
	// contain "/"-separated alternatives (e.g. "Poet/Writer").
	CharacterType string `json:"characterType"`

	// Platform selects the output shape.
	Platform Platform `json:"platform"`

	// CustomPrompt is an optional free-text hint passed to the model.
	CustomPrompt string `json:"customPrompt,omitempty"`

	// GenerateImage requests an image reference. Informational to the
	// text pipeline; the image side-channel is an external service.
	GenerateImage bool `json:"generateImage"`

	// Creativity is 0-100: 0 = strict historical accuracy, 100 = full
	// creative liberty.
	Creativity int `json:"creativity"`
}

// Validate checks the request-level constraints that are surfaced to
// callers before the pipeline runs.
func (p GenerationParams) Validate() error {
	if _, err := ParsePlatform(string(p.Platform)); err != nil {
		return err
	}
	if p.Creativity < 0 || p.Creativity > 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidCreativity, p.Creativity)
	}
	return nil
}

// EraName returns the era label without its parenthesized date range.
func (p GenerationParams) EraName() string {
	name, _ := SplitEra(p.Era)
	return name
}

// SplitEra splits an era label into its display name and the optional
// parenthesized date range ("Roman Empire (27 BCE-476 CE)" yields
// "Roman Empire" and "27 BCE-476 CE").
func SplitEra(era string) (name, dates string) {
	name, rest, found := strings.Cut(era, "(")
	name = strings.TrimSpace(name)
	if !found {
		return name, ""
	}
	return name, strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), ")"))
}

// Post is the pipeline's only externally visible artifact: a normalized
// record guaranteed to be schema-complete for its declared Platform,
// whether the content came from the model or the synthetic fallback.
// Engagement counters are human-readable abbreviated strings ("12.3K").
type Post struct {
	Username string `json:"username"`
	Handle   string `json:"handle,omitempty"`
	Verified bool   `json:"verified"`
	Date     string `json:"date"`
	Location string `json:"location"`
	Title    string `json:"title,omitempty"`
	Content  string `json:"content"`

	// Hashtags is order-significant for display. Duplicates are allowed;
	// the pipeline does not deduplicate.
	Hashtags []string `json:"hashtags"`

	Avatar   string   `json:"avatar"`
	Platform Platform `json:"platform"`
	Image    string   `json:"image,omitempty"`

	Likes     string   `json:"likes"`
	Comments  string   `json:"comments"`
	Retweets  string   `json:"retweets,omitempty"`
	Replies   string   `json:"replies,omitempty"`
	Subreddit string   `json:"subreddit,omitempty"`
	Upvotes   string   `json:"upvotes,omitempty"`
	Awards    []string `json:"awards,omitempty"`
}
