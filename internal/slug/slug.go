// Package slug derives URL fragment anchors from catalog names.
package slug

import (
	"strings"
	"unicode"

	goslug "github.com/goliatone/go-slug"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var normalizer goslug.Normalizer = goslug.NormalizerFunc(func(value string) (string, error) {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), value)
	if err != nil {
		folded = value
	}
	return goslug.DefaultNormalize(strings.Join(strings.Fields(folded), " "))
})

// Make lowercases s, folds accents, and joins words with single hyphens.
// Punctuation is dropped. A name with nothing left yields "".
func Make(s string) string {
	out, err := normalizer.Normalize(s)
	if err != nil {
		return ""
	}
	return out
}

// Anchor returns the in-page link target for name.
func Anchor(name string) string {
	return "#" + Make(name)
}
