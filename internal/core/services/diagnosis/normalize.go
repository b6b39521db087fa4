package diagnosis

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Disease names coming back from the model carry inconsistent casing,
// stray whitespace and sometimes accented characters. Matching against
// the catalog happens on the normalized form.
var nameTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizeName(s string) string {
	out, _, err := transform.String(nameTransformer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
