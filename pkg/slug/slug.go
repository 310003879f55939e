// Package slug turns blog names into URL path segments.
//
// Unicode letters and digits are kept (after NFKC normalisation and lower-casing),
// so "Мой блог" becomes "мой-блог" rather than being transliterated.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Make returns the slug for s. The result is deterministic and may be empty when s
// contains no letters, digits, underscores or hyphens.
func Make(s string) string {
	s = strings.ToLower(norm.NFKC.String(s))

	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingSep = true
		}
	}
	return b.String()
}
