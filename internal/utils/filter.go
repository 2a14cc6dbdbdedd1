package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultDelimiters are the word delimiters used when none are configured.
const DefaultDelimiters = " -/_"

// IsSeparator checks if a rune is one of the given delimiters
func IsSeparator(r rune, delimiters string) bool {
	return strings.ContainsRune(delimiters, r)
}

// EqualFold performs case-insensitive rune equality check
func EqualFold(a, b rune) bool {
	if a == b {
		return true
	}

	// Try simple ASCII case folding first (faster)
	if a < utf8.RuneSelf && b < utf8.RuneSelf {
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		return a == b
	}

	return unicode.ToLower(a) == unicode.ToLower(b)
}

// FoldRunes lowercases s rune by rune.
// The result always has the same rune count as s, which strings.ToLower
// does not promise for every script.
func FoldRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

// HasUpper reports whether any rune of s changes when lowercased
func HasUpper(s string) bool {
	for _, r := range s {
		if unicode.ToLower(r) != r {
			return true
		}
	}
	return false
}

// SplitWords splits s on any of the delimiters, dropping empty words
func SplitWords(s string, delimiters string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return IsSeparator(r, delimiters)
	})
}
