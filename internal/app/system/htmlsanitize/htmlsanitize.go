// Package htmlsanitize cleans user-supplied record fields before they are
// stored and later rendered into pages.
//
// Record names are plain text and are stripped of all markup; description
// and body text keep the usual safe formatting subset.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize keeps safe user-generated markup (bold, links, lists) and drops
// scripts, event handlers, and javascript: URLs.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// Strip removes all markup, leaving plain text.
func Strip(s string) string {
	return strict.Sanitize(s)
}
