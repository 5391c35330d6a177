// Package textnorm folds card names, rules text and query words into the
// single comparable form used by every lookup in cardsearch.
//
// Folding lowercases, expands ligatures, strips combining marks and maps
// typographic apostrophes and minus signs to their ASCII forms, so that
// "Æther Vial" and "aether vial" compare equal.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var replacer = strings.NewReplacer(
	"æ", "ae",
	"Æ", "ae",
	"œ", "oe",
	"Œ", "oe",
	"ł", "l",
	"Ł", "l",
	"ø", "o",
	"Ø", "o",
	"ß", "ss",
	"’", "'",
	"‘", "'",
	"`", "'",
	"−", "-",
	"–", "-",
	"—", "-",
	"“", `"`,
	"”", `"`,
)

var nonLetters = regexp.MustCompile(`[^a-z]+`)

// Fold returns the lowercase, accent-free form of s with surrounding
// whitespace trimmed. Interior whitespace is left as-is; see Name.
func Fold(s string) string {
	s = replacer.Replace(s)
	// transform.Chain keeps state, so a fresh chain is built per call to
	// stay safe for concurrent readers.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.TrimSpace(strings.ToLower(folded))
}

// Name folds s and collapses runs of whitespace to a single space.
// It is the normal form for card names, set names and block names.
func Name(s string) string {
	return strings.Join(strings.Fields(Fold(s)), " ")
}

// Key returns the identity key for a card title.
func Key(title string) string {
	return Name(title)
}

// Slug returns the artist attribution slug: the folded name with every run
// of characters outside a-z replaced by a single underscore.
func Slug(name string) string {
	return nonLetters.ReplaceAllString(Fold(name), "_")
}
