// Package sanitize strips markup from user-supplied text before it is stored.
// Notes and names are rendered by the client, so nothing stored may carry HTML.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes every HTML element from s and trims surrounding whitespace.
// Entities produced by the policy are decoded back so plain text such as
// "a < b & c" survives unchanged.
// Decoding can surface markup that was entity-encoded in the input, so the
// policy is reapplied until the text is stable.
func Text(s string) string {
	out := clean(s)
	for i := 0; i < maxPasses; i++ {
		next := clean(out)
		if next == out {
			break
		}
		out = next
	}
	return strings.TrimSpace(out)
}

const maxPasses = 4

func clean(s string) string {
	return html.UnescapeString(strict.Sanitize(s))
}

// Optional cleans an optional field. A nil or empty value means the field was
// not supplied and yields nil; anything else yields the cleaned text, which may
// itself be empty.
func Optional(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	s := Text(*p)
	return &s
}
