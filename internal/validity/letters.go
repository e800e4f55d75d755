package validity

import (
	"strings"
	"unicode"
)

// IsGermanLetter reports whether r belongs to the German alphabet, umlauts
// and ß included.
func IsGermanLetter(r rune) bool {
	r = unicode.ToLower(r)
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r == 'ä' || r == 'ö' || r == 'ü' || r == 'ß':
		return true
	}
	return false
}

// IsVowel reports whether r is a German vowel, umlauts included.
func IsVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u', 'ä', 'ö', 'ü':
		return true
	}
	return false
}

func isPlainVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// VowelsOnly reports whether every German letter of s is one of a, e, i, o, u.
// Text without letters is not vowels-only.
func VowelsOnly(s string) bool {
	letters := 0
	for _, r := range s {
		if !IsGermanLetter(r) {
			continue
		}
		letters++
		if !isPlainVowel(r) {
			return false
		}
	}
	return letters > 0
}

// ConsonantsOnly reports whether s has German letters but no vowel.
func ConsonantsOnly(s string) bool {
	letters := 0
	for _, r := range s {
		if !IsGermanLetter(r) {
			continue
		}
		letters++
		if IsVowel(r) {
			return false
		}
	}
	return letters > 0
}

// HasGermanLetter reports whether s contains at least one German letter.
func HasGermanLetter(s string) bool {
	return strings.ContainsFunc(s, IsGermanLetter)
}

// MaxRun returns the length of the longest run of one repeated rune, compared
// case-insensitively.
func MaxRun(s string) int {
	longest, current := 0, 0
	var prev rune
	for i, r := range s {
		r = unicode.ToLower(r)
		if i > 0 && r == prev {
			current++
		} else {
			current = 1
		}
		prev = r
		if current > longest {
			longest = current
		}
	}
	return longest
}
