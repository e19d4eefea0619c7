package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var innerWhitespace = regexp.MustCompile(`\s+`)

// Text cleans display text scraped from the site: NFC composition so that
// umlauts compare equal, non-printable runes dropped, whitespace collapsed.
func Text(s string) string {
	s = norm.NFC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		if !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, s)
	s = innerWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
