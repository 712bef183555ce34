// Package textnorm normalizes Amharic message text for analysis.
package textnorm

import (
	"regexp"
	"strings"

	"github.com/forPelevin/gomoji"
)

var (
	urlPattern        = regexp.MustCompile(`(https?://\S+|www\.\S+)`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalize runs the full cleaning chain over one text value.
// The stage order is fixed: later stages depend on earlier cleanup.
// Re-running Normalize on its own output is a no-op.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = FoldDiacritics(s)
	s = FilterScript(s)
	s = StripEmojis(s)
	s = CollapseRepeats(s)
	s = RemoveURLs(s)
	s = NormalizeWhitespace(s)
	return s
}

// FoldDiacritics replaces every Amharic homophone variant with its base form.
func FoldDiacritics(s string) string {
	for _, sub := range diacriticsMap {
		s = strings.ReplaceAll(s, sub.from, sub.to)
	}
	return s
}

// FilterScript deletes every character outside the Ethiopic block,
// ASCII digits and whitespace.
func FilterScript(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 0x1200 && r <= 0x137F: // Ethiopic
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StripEmojis deletes every emoji character, leaving adjacent spacing
// untouched.
func StripEmojis(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if IsEmoji(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsEmoji reports whether the rune is part of the maintained emoji set.
func IsEmoji(r rune) bool {
	// ASCII never qualifies; skip the table lookup for the common case.
	if r < 0x80 {
		return false
	}
	return gomoji.ContainsEmoji(string(r))
}

// CollapseRepeats collapses any run of two or more identical consecutive
// characters to a single occurrence. Applied to the whole string, so
// intentional double letters and repeated digits collapse too.
func CollapseRepeats(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune = -1
	for _, r := range s {
		if r == prev {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// RemoveURLs deletes http(s) and www substrings up to the next whitespace.
func RemoveURLs(s string) string {
	return urlPattern.ReplaceAllString(s, "")
}

// NormalizeWhitespace collapses whitespace runs to a single space and
// trims both ends.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
