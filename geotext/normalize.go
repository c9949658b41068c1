// Package geotext implements the pure-function text helpers the geocoder
// core treats as external collaborators (spec §6): normalization,
// tokenization, street-synonym recognition, and house-number pattern
// matching. None of these depend on the geocoder core; the core only calls
// through their contracts.
package geotext

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticStripper = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var punctuationRun = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Normalize lowercases s, strips diacritics (combining marks), and collapses
// runs of punctuation/whitespace into single spaces, per spec §6.
func Normalize(s string) string {
	folded, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	folded = punctuationRun.ReplaceAllString(folded, " ")
	return strings.TrimSpace(folded)
}
