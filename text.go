package gazette

import (
	"regexp"
	"strings"
	"unicode"
)

// spaceRun matches whitespace runs including NBSP and the Unicode
// separator categories (spaces, line and paragraph separators).
var spaceRun = regexp.MustCompile(`[\s\p{Z}\x{0085}]+`)

// CleanText collapses whitespace runs into single spaces, drops invisible
// control and format characters, and trims the result.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\u200B' || r == '\uFEFF':
			// Zero-width space and BOM separate words like a space.
			return ' '
		case unicode.IsSpace(r):
			return r
		case unicode.In(r, unicode.Cc, unicode.Cf):
			return -1
		}
		return r
	}, s)
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
