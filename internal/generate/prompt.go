// Package generate implements the historical-content generation
// pipeline: prompt composition, model invocation, JSON extraction from
// free-form responses, a deterministic synthetic fallback, and
// per-platform normalization. Callers always receive a well-formed
// post; upstream failures are absorbed, never surfaced.
package generate

import (
	"fmt"
	"strings"

	"github.com/pastforward-labs/pastforward/internal/post"
)

// ComposePrompt turns generation parameters into a single
// natural-language instruction for the model. Pure function, no
// failure mode. The prompt ends with an explicit description of the
// required output shape so the extractor has a well-known target.
func ComposePrompt(params post.GenerationParams) string {
	eraName, eraDates := post.SplitEra(params.Era)

	var b strings.Builder

	if eraDates != "" {
		b.WriteString(fmt.Sprintf("Create a %s post for a %s from %s (%s) in %s.\n",
			params.Platform, params.CharacterType, eraName, eraDates, params.Location))
	} else {
		b.WriteString(fmt.Sprintf("Create a %s post for a %s from %s in %s.\n",
			params.Platform, params.CharacterType, eraName, params.Location))
	}
	if params.CustomPrompt != "" {
		b.WriteString(fmt.Sprintf("Additional context: %s\n", params.CustomPrompt))
	}
	b.WriteString("\n")

	b.WriteString("The post should be historically accurate but presented in a social media format with appropriate hashtags.\n")
	b.WriteString("Use language appropriate to the era but understandable to modern readers.\n")
	b.WriteString("Include relevant historical details and context.\n")
	b.WriteString("Create hashtags that blend historical terminology with modern social media conventions.\n")
	b.WriteString("The tone should match both the character type and the historical context.\n")
	b.WriteString(fmt.Sprintf("Creativity level: %d on a 0-100 scale (0 = strict historical accuracy, 100 = creative liberty).\n", params.Creativity))
	b.WriteString(fmt.Sprintf("Platform: %s (adapt the content to fit this platform's style).\n", params.Platform))
	b.WriteString("\n")

	b.WriteString("Return the result as a JSON object with the following structure:\n")
	b.WriteString(`{
  "username": "historically appropriate username",
  "handle": "username handle if applicable",
  "verified": boolean,
  "date": "historically accurate date",
  "location": "specific location",
  "title": "post title if applicable",
  "content": "the main post content",
  "hashtags": ["array", "of", "hashtags"],
  "subreddit": "if platform is reddit",
  "likes": "engagement metric",
  "comments": "engagement metric",
  "retweets": "engagement metric if applicable",
  "replies": "engagement metric if applicable",
  "upvotes": "engagement metric if applicable",
  "awards": ["array", "of", "awards", "if", "applicable"]
}`)

	return b.String()
}
