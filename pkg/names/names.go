// Package names normalizes player display names into join keys.
//
// The canonical form is only ever a fallback join key between sources that
// lack a shared stable identifier (salary tables have no player slugs).
// It is never a primary identity.
package names

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// NFKD decomposition followed by removal of combining marks turns
	// "Nikola Jokić" into "Nikola Jokic".
	deaccent = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

	punct    = strings.NewReplacer(".", "", ",", "", "'", "", "-", " ")
	suffixRE = regexp.MustCompile(`(?i)\b(jr|sr|ii|iii|iv|v)\b`)
	otherRE  = regexp.MustCompile(`[^a-zA-Z0-9 ]`)
	spaceRE  = regexp.MustCompile(`\s+`)
)

// Canonical maps a raw display name to its normalized join key.
// It is total over all strings (empty in, empty out) and idempotent:
// Canonical(Canonical(x)) == Canonical(x).
func Canonical(raw string) string {
	if raw == "" {
		return ""
	}
	s, _, err := transform.String(deaccent, raw)
	if err != nil {
		// Malformed UTF-8; fall back to the raw bytes so the function
		// stays total.
		s = raw
	}
	s = punct.Replace(s)
	s = suffixRE.ReplaceAllString(s, "")
	s = otherRE.ReplaceAllString(s, "")
	s = spaceRE.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}
