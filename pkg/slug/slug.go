// Package slug turns titles into stable, URL-safe file name components.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Separator joins the words of a slug
const Separator = "-"

var (
	disallowed = regexp.MustCompile(`[^a-z0-9\-_]+`)
	duplicates = regexp.MustCompile(`-{2,}`)
)

// Letters that do not decompose into an ASCII base letter plus marks.
var approximations = map[rune]string{
	'ß': "ss",
	'æ': "ae", 'Æ': "AE",
	'œ': "oe", 'Œ': "OE",
	'ø': "o", 'Ø': "O",
	'đ': "d", 'Đ': "D",
	'ł': "l", 'Ł': "L",
	'þ': "th", 'Þ': "TH",
	'ð': "d", 'Ð': "D",
}

// Make returns the slug for s: transliterated to ASCII, lowercased, with every run
// of characters outside [a-z0-9_-] collapsed into a single separator and no
// leading or trailing separator.
func Make(s string) string {
	s = strings.ToLower(Transliterate(s))
	s = disallowed.ReplaceAllString(s, Separator)
	s = duplicates.ReplaceAllString(s, Separator)
	return strings.Trim(s, Separator)
}

// Transliterate replaces accented letters with their ASCII base letters.
// Characters without an ASCII approximation are kept as-is.
func Transliterate(s string) string {
	var b strings.Builder
	for _, r := range s {
		if a, ok := approximations[r]; ok {
			b.WriteString(a)
			continue
		}
		b.WriteRune(r)
	}

	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, b.String())
	if err != nil {
		return b.String()
	}
	return out
}
