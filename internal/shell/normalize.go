package shell

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// invisibleRunes are zero-width and formatting characters that render as
// nothing but defeat string matching. A command like "r​m -rf /"
// looks like "rm -rf /" in a terminal yet its head token is not "rm".
var invisibleRunes = map[rune]bool{
	'\u00ad': true, // soft hyphen
	'\u200b': true, // zero width space
	'\u200c': true, // zero width non-joiner
	'\u200d': true, // zero width joiner
	'\u2060': true, // word joiner
	'\ufeff': true, // zero width no-break space / BOM
	'\u180e': true, // mongolian vowel separator
}

// Normalize prepares raw agent-supplied text for extraction and
// matching. NFKC folds fullwidth and compatibility forms to their
// canonical equivalents (fullwidth ｒｍ becomes rm), then invisible
// formatting runes and null bytes are dropped. Idempotent.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "�")
	s = norm.NFKC.String(s)
	return strings.Map(func(r rune) rune {
		if r == 0 || invisibleRunes[r] {
			return -1
		}
		return r
	}, s)
}
