// Package slug turns article titles into URL-safe identifiers.
package slug

import (
	"strings"
	"unicode"

	"github.com/gosimple/unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// symbols spelled out as words rather than treated as separators
var symbols = map[rune]string{
	'&': "and", '$': "dollar", '%': "percent", '<': "less", '>': "greater", '|': "or",
	'€': "euro", '£': "pound", '¥': "yen", '₽': "ruble", '₴': "hryvnia", '₺': "lira",
	'©': "c", '®': "r", '™': "tm", '∞': "infinity", '♥': "love",
}

// Derive lowercases title, transliterates it to ASCII and joins the remaining
// alphanumeric runs with single hyphens. Apostrophes are dropped so that
// "Don't" becomes "dont". Blank or symbol-only titles derive "".
func Derive(title string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		title,
	)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	emit := func(s string) {
		if pendingHyphen && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingHyphen = false
		b.WriteString(s)
	}
	ascii := func(r rune) {
		switch {
		case r == '\'':
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			emit(string(unicode.ToLower(r)))
		default:
			pendingHyphen = true
		}
	}
	for _, r := range folded {
		switch {
		case r == '’':
		case symbols[r] != "":
			emit(symbols[r])
		case r < unicode.MaxASCII:
			ascii(r)
		default:
			// unidecode pads CJK syllables with spaces, which become separators
			for _, t := range unidecode.Unidecode(string(r)) {
				ascii(t)
			}
		}
	}
	return b.String()
}

// Normalize canonicalizes a slug supplied by a caller for lookup.
func Normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
