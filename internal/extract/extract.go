// Package extract pulls structured sub-values out of message text.
//
// Each extractor comes with a matching strip function; callers extract
// before they strip. The absent encodings differ on purpose: general
// links report nil, the site-specific variant reports a string sentinel.
// Downstream consumers branch on these encodings.
package extract

import (
	"regexp"
	"strings"

	"github.com/ethiodata/telecorpus/internal/models"
	"github.com/ethiodata/telecorpus/internal/textnorm"
)

var (
	urlPattern     = regexp.MustCompile(`(https?://\S+|www\.\S+)`)
	youtubePattern = regexp.MustCompile(`(https?://)?(www\.)?(youtube\.com/\S+|youtu\.be/\S+)`)
)

// Emojis collects every emoji character in the text, in order, into one
// joined string. Returns the "No emoji" sentinel when nothing is found.
func Emojis(s string) string {
	var b strings.Builder
	for _, r := range s {
		if textnorm.IsEmoji(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return models.NoEmoji
	}
	return b.String()
}

// StripEmojis removes the same character set Emojis collects, leaving
// other characters and adjacent spacing untouched. Whitespace cleanup
// is the normalizer's job.
func StripEmojis(s string) string {
	return textnorm.StripEmojis(s)
}

// Links returns all non-overlapping URL matches in the text.
// Returns nil, not an error, when there are none.
func Links(s string) []string {
	return urlPattern.FindAllString(s, -1)
}

// StripLinks removes only the matched URL substrings; surrounding text
// is left as-is, doubled whitespace included.
func StripLinks(s string) string {
	return urlPattern.ReplaceAllString(s, "")
}

// YouTubeLinks returns all YouTube URLs comma-joined, or the
// "No YouTube link" sentinel when there are none.
func YouTubeLinks(s string) string {
	matches := youtubePattern.FindAllString(s, -1)
	if len(matches) == 0 {
		return models.NoYouTubeLink
	}
	return strings.Join(matches, ",")
}

// StripYouTubeLinks removes only the matched YouTube URLs.
func StripYouTubeLinks(s string) string {
	return youtubePattern.ReplaceAllString(s, "")
}
