package geotext

import (
	"regexp"
	"strconv"
	"strings"
)

// houseNumberPattern matches a digit run, an optional single-letter suffix,
// and an optional "-digits[letter]" range extension, e.g. "12", "12a",
// "12-14", "12a-14b" (spec §6).
var houseNumberPattern = regexp.MustCompile(`^\d+[a-z]?(-\d+[a-z]?)?$`)

// houseNumberPrefixPattern additionally accepts a bare digit run with no
// trailing content yet, for prefix (partial-typing) matching.
var houseNumberPrefixPattern = regexp.MustCompile(`^\d+[a-z]?-?$`)

// LooksLikeHouseNumber reports whether s has the shape of a house number:
// digits, optionally followed by a short alphanumeric suffix or a range
// (spec §6). When prefix is true, a bare digit-string prefix of such a
// pattern is also accepted.
func LooksLikeHouseNumber(s string, prefix bool) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if houseNumberPattern.MatchString(s) {
		return true
	}
	return prefix && houseNumberPrefixPattern.MatchString(s)
}

// HouseNumbersMatch reports whether ref and query denote the same house
// number modulo common spelling variations: leading zeros and letter-suffix
// case are ignored. When queryIsPrefix is true, query only needs to be a
// prefix of ref's canonical form (spec §6).
func HouseNumbersMatch(ref, query string, queryIsPrefix bool) bool {
	refCanon := canonicalHouseNumber(ref)
	queryCanon := canonicalHouseNumber(query)
	if refCanon == "" || queryCanon == "" {
		return false
	}
	if queryIsPrefix {
		return strings.HasPrefix(refCanon, queryCanon)
	}
	return refCanon == queryCanon
}

// canonicalHouseNumber strips leading zeros from every digit run and
// uppercases letter suffixes, so "007a" and "7A" compare equal.
func canonicalHouseNumber(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	parts := strings.Split(s, "-")
	for i, part := range parts {
		digits := strings.TrimRightFunc(part, func(r rune) bool { return r < '0' || r > '9' })
		suffix := part[len(digits):]
		if digits == "" {
			return ""
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return ""
		}
		parts[i] = strconv.Itoa(n) + strings.ToUpper(suffix)
	}
	return strings.Join(parts, "-")
}
