package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pastforward-labs/pastforward/internal/post"
)

var (
	nameColor    = lipgloss.Color("#F780FF") // Bright pink
	metaColor    = lipgloss.Color("#6272A4") // Muted purple
	contentColor = lipgloss.Color("#E9E9F4") // Light purple/white
	hashtagColor = lipgloss.Color("#8BE9FD") // Cyan
	counterColor = lipgloss.Color("#50FA7B") // Green
	errorColor   = lipgloss.Color("#FF5555") // Red

	nameStyle    = lipgloss.NewStyle().Foreground(nameColor).Bold(true)
	metaStyle    = lipgloss.NewStyle().Foreground(metaColor).Italic(true)
	contentStyle = lipgloss.NewStyle().Foreground(contentColor)
	hashtagStyle = lipgloss.NewStyle().Foreground(hashtagColor)
	counterStyle = lipgloss.NewStyle().Foreground(counterColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(metaColor).
			Padding(0, 1).
			Width(72)
)

// renderPost formats a post as a terminal card shaped after its
// platform.
func renderPost(p post.Post) string {
	var b strings.Builder

	header := p.Username
	if p.Verified {
		header += " ✓"
	}
	if p.Handle != "" {
		header += " " + metaStyle.Render(p.Handle)
	}
	b.WriteString(nameStyle.Render(header))
	b.WriteString("\n")

	meta := fmt.Sprintf("%s · %s", p.Date, p.Location)
	if p.Subreddit != "" {
		meta = p.Subreddit + " · " + meta
	}
	b.WriteString(metaStyle.Render(meta))
	b.WriteString("\n\n")

	if p.Title != "" {
		b.WriteString(nameStyle.Render(p.Title))
		b.WriteString("\n")
	}
	b.WriteString(contentStyle.Render(p.Content))
	b.WriteString("\n")

	if len(p.Hashtags) > 0 {
		tags := make([]string, len(p.Hashtags))
		for i, tag := range p.Hashtags {
			tags[i] = "#" + tag
		}
		b.WriteString(hashtagStyle.Render(strings.Join(tags, " ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(counterStyle.Render(renderCounters(p)))

	return cardStyle.Render(b.String())
}

func renderCounters(p post.Post) string {
	switch p.Platform {
	case post.PlatformTwitter:
		return fmt.Sprintf("♥ %s  ⟳ %s  ↩ %s", p.Likes, p.Retweets, p.Replies)
	case post.PlatformReddit:
		awards := ""
		if len(p.Awards) > 0 {
			awards = "  🏅 " + strings.Join(p.Awards, ", ")
		}
		return fmt.Sprintf("⬆ %s  💬 %s%s", p.Upvotes, p.Comments, awards)
	default:
		return fmt.Sprintf("♥ %s  💬 %s", p.Likes, p.Comments)
	}
}
