package generate

import (
	"fmt"
	"strings"

	"github.com/pastforward-labs/pastforward/internal/post"
)

const (
	avatarPlaceholder = "/placeholder.svg?height=40&width=40"
	imagePlaceholder  = "/placeholder.svg?height=400&width=400"

	// awardThreshold is the like count at which a reddit post earns the
	// richer two-tier award list.
	awardThreshold = 10_000
)

// Normalizer takes a validated raw record and produces the final,
// schema-complete Post for the declared platform. Whatever the raw
// record omitted — engagement counters, username, hashtags, the
// platform-mandated extras — is synthesized or derived here, so
// callers never receive a partially-shaped result.
type Normalizer struct {
	rand *lockedRand
}

// NewNormalizer creates a normalizer with a time-seeded random source
// for counter synthesis.
func NewNormalizer() *Normalizer {
	return &Normalizer{rand: newTimeSeededRand()}
}

// NewSeededNormalizer creates a normalizer with a fixed seed for
// reproducible output in tests.
func NewSeededNormalizer(seed int64) *Normalizer {
	return &Normalizer{rand: newLockedRand(seed)}
}

// Normalize builds the platform-shaped Post from a raw record and the
// originating parameters.
func (n *Normalizer) Normalize(raw *RawPost, params post.GenerationParams) post.Post {
	p := post.Post{
		Username: raw.Username,
		Handle:   raw.Handle,
		Verified: raw.Verified,
		Date:     raw.Date,
		Location: raw.Location,
		Title:    raw.Title,
		Content:  raw.Content,
		Hashtags: raw.Hashtags,
		Avatar:   avatarPlaceholder,
		Platform: params.Platform,
		Image:    raw.Image,
		Likes:    string(raw.Likes),
		Comments: string(raw.Comments),
	}

	n.fillCommon(&p, params)

	switch params.Platform {
	case post.PlatformTwitter:
		n.fillTwitter(&p, raw)
	case post.PlatformReddit:
		n.fillReddit(&p, raw, params)
	case post.PlatformInstagram:
		if params.GenerateImage && p.Image == "" {
			p.Image = imagePlaceholder
		}
	}

	return p
}

// fillCommon supplies defaults for the fields every platform requires.
func (n *Normalizer) fillCommon(p *post.Post, params post.GenerationParams) {
	if p.Username == "" {
		city := stripSpaces(strings.SplitN(params.Location, ",", 2)[0])
		archetype := stripSpaces(strings.SplitN(params.CharacterType, "/", 2)[0])
		p.Username = fmt.Sprintf("%sOf%s", archetype, city)
	}
	if p.Date == "" {
		_, dates := post.SplitEra(params.Era)
		if dates == "" {
			dates = fallbackDate
		}
		p.Date = dates
	}
	if p.Location == "" {
		p.Location = params.Location
	}
	if len(p.Hashtags) == 0 {
		p.Hashtags = baseHashtags(params)
	}
	if p.Likes == "" {
		p.Likes = fmt.Sprintf("%d.%dK", n.rand.Intn(100)+1, n.rand.Intn(9))
	}
	if p.Comments == "" {
		p.Comments = fmt.Sprintf("%d", n.rand.Intn(900)+100)
	}
}

// fillTwitter derives handle, retweets and replies when the raw record
// omitted them.
func (n *Normalizer) fillTwitter(p *post.Post, raw *RawPost) {
	if p.Handle == "" {
		p.Handle = "@" + strings.ToLower(stripSpaces(p.Username))
	}
	p.Retweets = string(raw.Retweets)
	if p.Retweets == "" {
		p.Retweets = post.HalveCount(p.Likes)
	}
	p.Replies = string(raw.Replies)
	if p.Replies == "" {
		p.Replies = p.Comments
	}
}

// fillReddit derives subreddit, title, upvotes and the award list when
// the raw record omitted them. Award richness is gated on the like
// count: posts at or above the threshold get two tiers.
func (n *Normalizer) fillReddit(p *post.Post, raw *RawPost, params post.GenerationParams) {
	eraName := params.EraName()

	p.Subreddit = raw.Subreddit
	if p.Subreddit == "" {
		p.Subreddit = "r/" + stripSpaces(eraName)
	}
	if p.Title == "" {
		p.Title = fmt.Sprintf("%s's perspective on %s life in %s",
			params.CharacterType, eraName, params.Location)
	}
	p.Upvotes = string(raw.Upvotes)
	if p.Upvotes == "" {
		p.Upvotes = p.Likes
	}
	p.Awards = raw.Awards
	if len(p.Awards) == 0 {
		if post.ParseCount(p.Likes) >= awardThreshold {
			p.Awards = []string{"Gold", "Silver"}
		} else {
			p.Awards = []string{"Silver"}
		}
	}
}
