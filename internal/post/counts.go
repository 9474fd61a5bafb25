package post

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCount converts a human-readable engagement counter ("12.3K",
// "457", "1M") into an integer. Unparseable input yields 0 rather
// than an error; engagement counters are cosmetic and a bad value
// must never fail a pipeline run.
func ParseCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "K"), strings.HasSuffix(s, "k"):
		multiplier = 1_000
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "M"), strings.HasSuffix(s, "m"):
		multiplier = 1_000_000
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return int(value * multiplier)
}

// FormatCount renders an integer as the abbreviated counter shape the
// platform renderers expect: values of 1000 and up get a one-decimal
// "K" suffix, millions an "M" suffix, everything below stays plain.
func FormatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return trimZero(fmt.Sprintf("%.1fM", float64(n)/1_000_000))
	case n >= 1_000:
		return trimZero(fmt.Sprintf("%.1fK", float64(n)/1_000))
	default:
		return strconv.Itoa(n)
	}
}

// trimZero drops a redundant ".0" so 2000 renders as "2K", not "2.0K".
func trimZero(s string) string {
	if i := strings.Index(s, ".0"); i >= 0 {
		return s[:i] + s[i+2:]
	}
	return s
}

// HalveCount returns an abbreviated counter worth roughly half the
// given one. Used to derive retweets from likes.
func HalveCount(s string) string {
	return FormatCount(ParseCount(s) / 2)
}
