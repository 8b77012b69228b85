package engine

import (
	"strings"

	"github.com/maheshrc27/autopost/internal/models"
)

const segmentSeparator = "\n\n"

// SplitSegments cuts text on blank lines and drops segments that are empty
// after trimming.
func SplitSegments(text string) []string {
	parts := strings.Split(text, segmentSeparator)
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		segments = append(segments, strings.TrimSpace(p))
	}
	return segments
}

// contentPlan returns the texts to send to each destination and whether they
// form a reply chain.
func contentPlan(post *models.Post) ([]string, bool) {
	segments := SplitSegments(post.Text)
	if post.PostType == models.PostTypeThread && len(segments) > 1 {
		return segments, true
	}
	if len(segments) > 0 {
		return segments[:1], false
	}
	return []string{post.Text}, false
}
