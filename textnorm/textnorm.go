// Package textnorm provides the text folding used for all catalog searches.
// The same folding is applied to indexed fields at load time and to the
// caller-supplied term at query time, so substring matching stays consistent.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases s, strips diacritics and trims surrounding
// whitespace. It is pure, total and idempotent: Normalize(Normalize(s))
// always equals Normalize(s).
func Normalize(s string) string {
	// The chain carries internal buffers, so a fresh one is built per call
	// to keep Normalize safe for concurrent use.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		// The chain cannot fail on valid UTF-8; a malformed string is
		// better searched as-is than dropped.
		folded = s
	}
	return strings.TrimSpace(strings.ToLower(folded))
}

// NormalizeAll returns the normalized form of every string in values.
func NormalizeAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Normalize(v)
	}
	return out
}
