package generate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse reports that no usable JSON object could be
// recovered from a model response, or that the recovered object is
// missing required fields. The pipeline absorbs it via the fallback.
var ErrMalformedResponse = errors.New("malformed model response")

// FlexCount is an engagement counter that tolerates models returning
// either a string ("12.3K") or a bare number (12300) where the schema
// asks for a string.
type FlexCount string

// UnmarshalJSON accepts a JSON string or number.
func (f *FlexCount) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexCount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexCount(n.String())
	return nil
}

// RawPost is the JSON-shaped object a model is asked to produce. All
// fields are optional at this stage; Validate enforces the minimum and
// the normalizer fills everything else.
type RawPost struct {
	Username  string    `json:"username"`
	Handle    string    `json:"handle"`
	Verified  bool      `json:"verified"`
	Date      string    `json:"date"`
	Location  string    `json:"location"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Hashtags  []string  `json:"hashtags"`
	Subreddit string    `json:"subreddit"`
	Image     string    `json:"image"`
	Likes     FlexCount `json:"likes"`
	Comments  FlexCount `json:"comments"`
	Retweets  FlexCount `json:"retweets"`
	Replies   FlexCount `json:"replies"`
	Upvotes   FlexCount `json:"upvotes"`
	Awards    []string  `json:"awards"`
}

// Validate checks the minimum contract a model result must meet before
// normalization: a non-empty content string.
func (r *RawPost) Validate() error {
	if r == nil || strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("%w: missing content", ErrMalformedResponse)
	}
	return nil
}
