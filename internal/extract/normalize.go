package extract

import (
	"regexp"
	"strings"
)

var (
	hspaceRe   = regexp.MustCompile(`[ \t]+`)
	leadingRe  = regexp.MustCompile(`\n[ \t]+`)
	newlinesRe = regexp.MustCompile(`\n{3,}`)
)

// Normalize canonicalizes whitespace so the pattern cascades see a
// consistent layout: runs of horizontal whitespace collapse to one space,
// continuation lines lose their leading indent, and runs of three or more
// newlines collapse to exactly two. Line boundaries are preserved because
// form-layout patterns expect a label line followed by a value line, and
// paragraph patterns terminate on blank lines.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = hspaceRe.ReplaceAllString(text, " ")
	text = leadingRe.ReplaceAllString(text, "\n")
	return newlinesRe.ReplaceAllString(text, "\n\n")
}
