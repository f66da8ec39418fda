// Package htmlsanitize strips markup from user-supplied free text before it
// is persisted or echoed back: group descriptions, application answers, and
// chat message bodies.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Plain removes all HTML from s and trims surrounding whitespace. Chat and
// application text is plain text on the wire; anything tag-shaped is
// attacker input, not formatting.
func Plain(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
