package utils

import (
	"strings"
	"unicode"
)

// TitleWords uppercases the first letter of every word and lowercases the
// rest, treating any non-letter rune as a word boundary. "mr-mime" becomes
// "Mr-Mime" and "HO-OH" becomes "Ho-Oh".
func TitleWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	startOfWord := true
	for _, r := range s {
		if !unicode.IsLetter(r) {
			startOfWord = true
			b.WriteRune(r)
			continue
		}
		if startOfWord {
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// NormalizeIdentifier prepares user input for upstream lookups. PokeAPI
// resource names are lowercase, so "  Pikachu " normalizes to "pikachu".
func NormalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
