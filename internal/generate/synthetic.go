package generate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pastforward-labs/pastforward/internal/post"
)

// fallbackDate is emitted when no date pattern can be recovered from
// the era label.
const fallbackDate = "Historical Date"

var (
	usernamePrefixes = []string{"The", "Royal", "Ancient", "Noble", "Wise", "Brave"}
	usernameSuffixes = []string{"Scholar", "Warrior", "Poet", "Sage", "Explorer", "Voice"}

	// genericHashtags is the fixed pool the synthesizer samples from,
	// in addition to tags derived from the request itself.
	genericHashtags = []string{
		"HistoryMatters",
		"TimeTravel",
		"HistoricalPerspective",
		"PastForward",
		"HistoryRewritten",
		"TimelessThoughts",
	}

	yearPattern = regexp.MustCompile(`\d+`)
)

// eraContent maps known era display names to hand-written post bodies.
// Bounded, auditable content is the point: the fallback must read
// plausibly without inventing history on the fly. Unknown eras get a
// templated sentence instead (see Synthesizer.content).
var eraContent = map[string]string{
	"Ancient Egypt":     "Just finished overseeing the construction of the new pyramid. The workers are exhausted, but the Pharaoh will be pleased. The alignment with the stars is perfect! #PyramidLife #AncientEngineering",
	"Roman Empire":      "Attended the Colosseum games today. The Emperor put on quite a spectacle! The new gladiator from Thrace is undefeated. Bread and circuses keep Rome happy. #GladiatorGames #RomanLife",
	"Medieval Europe":   "The plague continues to spread through the village. We've lost five more souls today. The monastery is offering prayers, but I fear it's not enough. Lord protect us all. #BlackDeath #MedievalStruggle",
	"Renaissance":       "Just finished a commission for the Medici family. They're demanding patrons but pay well. My new technique for perspective drawing is causing quite a stir among fellow artists. #RenaissanceArt #Perspective",
	"Industrial Revolution": "The new steam engine at the factory has doubled our production! Though the working conditions remain harsh, progress marches on. The future is mechanical! #SteamPower #IndustrialAge",
	"Victorian Era":     "Attended a most fascinating lecture on Mr. Darwin's new theory today. Quite controversial, but the evidence is compelling. The natural world never ceases to amaze. #Evolution #ScientificDiscovery",
	"World War I":       "Another day in the trenches. The mud, the rats, the constant shelling. Will this war ever end? Received a letter from home today, a small comfort in this hell. #GreatWar #TrenchLife",
	"Roaring Twenties":  "The speakeasy was jumping last night! The new jazz band from New Orleans has everyone talking. Prohibition can't stop the party! #JazzAge #ProhibitionBlues",
	"World War II":      "Food rationing is getting stricter. Made a cake with beet sugar today, not ideal but we make do. Everyone's doing their part for the war effort. #HomeFront #Rationing",
	"Cold War":          "The tension in Berlin is palpable. New checkpoint procedures make crossing sectors nearly impossible. Families separated overnight. This wall is more than concrete. #DividedCity #IronCurtain",
	"Indian Independence Movement": "Attended Gandhiji's speech today. His message of non-violence resonates deeply, though the path to freedom seems long. The British cannot ignore us forever. #QuitIndia #Satyagraha",
	"Mughal India":      "The Emperor's new garden is a marvel of design. The fountains, the symmetry, truly paradise on earth. Spent hours sketching the marble inlay patterns. #MughalArchitecture #RoyalPatronage",
}

// Synthesizer fabricates a plausible post from generation parameters
// alone. It is total: any valid parameters produce a result that is
// indistinguishable in shape from a successful model response, so the
// fallback always satisfies downstream validation by construction.
type Synthesizer struct {
	rand *lockedRand
}

// NewSynthesizer creates a synthesizer with a time-seeded random
// source.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{rand: newTimeSeededRand()}
}

// NewSeededSynthesizer creates a synthesizer with a fixed seed for
// reproducible output in tests.
func NewSeededSynthesizer(seed int64) *Synthesizer {
	return &Synthesizer{rand: newLockedRand(seed)}
}

// Generate fabricates a raw post from the parameters. It never fails.
func (s *Synthesizer) Generate(params post.GenerationParams) *RawPost {
	eng := s.engagement()
	return &RawPost{
		Username: s.username(params),
		Verified: s.rand.Float64() > 0.5,
		Date:     s.randomDate(params.Era),
		Location: params.Location,
		Content:  s.content(params),
		Hashtags: s.hashtags(params),
		Likes:    eng.likes,
		Comments: eng.comments,
		Retweets: eng.retweets,
		Replies:  eng.replies,
		Upvotes:  eng.upvotes,
	}
}

// randomDate derives a plausible in-era date token from the era label:
// BCE/CE suffixes and numeric start-end ranges are sampled, anything
// else falls back to a literal placeholder.
func (s *Synthesizer) randomDate(era string) string {
	switch {
	case strings.Contains(era, "BCE"):
		return fmt.Sprintf("%d BCE", s.rand.Intn(1000)+500)
	case strings.Contains(era, "CE"):
		return fmt.Sprintf("%d CE", s.rand.Intn(400)+100)
	case strings.Contains(era, "-"):
		years := yearPattern.FindAllString(era, -1)
		if len(years) >= 2 {
			start, err1 := strconv.Atoi(years[0])
			end, err2 := strconv.Atoi(years[1])
			if err1 == nil && err2 == nil && end > start {
				return strconv.Itoa(s.rand.Intn(end-start) + start)
			}
		}
	}
	return fallbackDate
}

// username shapes a handle-ready name from the archetype and location,
// with a random numeric suffix so outputs vary but stay traceable to
// their inputs.
func (s *Synthesizer) username(params post.GenerationParams) string {
	if strings.Contains(params.CharacterType, "/") {
		first := strings.SplitN(params.CharacterType, "/", 2)[0]
		city := strings.SplitN(params.Location, ",", 2)[0]
		return fmt.Sprintf("%sOf%s%d",
			stripSpaces(first), stripSpaces(city), s.rand.Intn(100))
	}

	prefix := usernamePrefixes[s.rand.Intn(len(usernamePrefixes))]
	suffix := usernameSuffixes[s.rand.Intn(len(usernameSuffixes))]
	return fmt.Sprintf("%s%s%d", prefix, suffix, s.rand.Intn(100))
}

// content selects a post body from the per-era lookup table; unknown
// eras get a templated sentence that still names the era, location and
// archetype so the fallback never looks content-free.
func (s *Synthesizer) content(params post.GenerationParams) string {
	eraName := params.EraName()
	if body, ok := eraContent[eraName]; ok {
		return body
	}
	return fmt.Sprintf(
		"Reflecting on life in %s %s. As a %s, I've witnessed remarkable changes. The challenges we face shape who we become. #HistoricalThoughts #%s",
		eraName, params.Location, strings.ToLower(params.CharacterType), stripSpaces(eraName))
}

// hashtags combines deterministic tokens derived from the request with
// three tags drawn without replacement from the generic pool.
func (s *Synthesizer) hashtags(params post.GenerationParams) []string {
	tags := baseHashtags(params)

	for _, i := range s.rand.Perm(len(genericHashtags))[:3] {
		tags = append(tags, genericHashtags[i])
	}
	return tags
}

// engagement produces synthetic counters in the abbreviated shape the
// renderers expect from the real model path.
type engagement struct {
	likes, comments, retweets, replies, upvotes FlexCount
}

func (s *Synthesizer) engagement() engagement {
	return engagement{
		likes:    FlexCount(fmt.Sprintf("%d.%dK", s.rand.Intn(100)+1, s.rand.Intn(9))),
		comments: FlexCount(strconv.Itoa(s.rand.Intn(900) + 100)),
		retweets: FlexCount(fmt.Sprintf("%d.%dK", s.rand.Intn(50)+1, s.rand.Intn(9))),
		replies:  FlexCount(strconv.Itoa(s.rand.Intn(500) + 100)),
		upvotes:  FlexCount(fmt.Sprintf("%d.%dK", s.rand.Intn(20)+1, s.rand.Intn(9))),
	}
}

// baseHashtags derives the deterministic tags every post carries:
// era, location and archetype tokens with spaces stripped.
func baseHashtags(params post.GenerationParams) []string {
	return []string{
		stripSpaces(params.EraName()),
		stripSpaces(strings.SplitN(params.Location, ",", 2)[0]),
		stripSpaces(strings.SplitN(params.CharacterType, "/", 2)[0]),
	}
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}
