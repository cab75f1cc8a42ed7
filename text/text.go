// Package text collects small string helpers used across the roster:
// blank checks, abbreviation, padding and random tokens.
package text

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/evergreen-ci/utility"
)

const ellipsis = "..."

// IsBlank reports whether s is empty or only white space.
func IsBlank(s string) bool { return strings.TrimSpace(s) == "" }

func IsNotBlank(s string) bool { return !IsBlank(s) }

// DefaultIfBlank returns def when s is blank.
func DefaultIfBlank(s, def string) string {
	if IsBlank(s) {
		return def
	}
	return s
}

// Capitalize upper cases the first rune, leaving the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Abbreviate shortens s to at most max runes, ending with "...". Strings that
// already fit, and widths too small to hold the ellipsis, return s unchanged.
func Abbreviate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max || max <= len(ellipsis) {
		return s
	}
	return string(runes[:max-len(ellipsis)]) + ellipsis
}

// PadLeft prefixes s with pad until it is size runes long.
func PadLeft(s string, size int, pad rune) string {
	n := utf8.RuneCountInString(s)
	if n >= size {
		return s
	}
	return strings.Repeat(string(pad), size-n) + s
}

// ContainsAll reports whether every part occurs in s.
func ContainsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}

// ContainsAny reports whether at least one part occurs in s.
func ContainsAny(s string, parts ...string) bool {
	for _, p := range parts {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// SliceContains reports whether the slice holds item.
func SliceContains(slice []string, item string) bool {
	return utility.StringSliceContains(slice, item)
}

// Random returns a random hex token of length n, or "" when n is not
// positive.
func Random(n int) string {
	if n <= 0 {
		return ""
	}

	var sb strings.Builder
	for sb.Len() < n {
		sb.WriteString(utility.RandomString())
	}
	return sb.String()[:n]
}
