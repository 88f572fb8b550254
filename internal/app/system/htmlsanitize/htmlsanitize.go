// internal/app/system/htmlsanitize/htmlsanitize.go
//
// Package htmlsanitize cleans backend-supplied descriptions before they are
// rendered. Project and task descriptions are free text owned by other
// services and may contain markup.
package htmlsanitize

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Excerpt strips all markup and truncates to at most max runes, adding an
// ellipsis when text was cut. Used for one-line list entries.
func Excerpt(s string, max int) string {
	text := strings.Join(strings.Fields(html.UnescapeString(strict.Sanitize(s))), " ")
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:max])) + "…"
}
