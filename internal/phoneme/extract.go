package phoneme

import (
	"strings"
	"unicode"
)

// multiChar lists multi-letter units in match priority order.
var multiChar = []string{"sch", "ch", "ng"}

var singleChar = map[rune]struct{}{
	'ä': {}, 'ö': {}, 'ü': {}, 'r': {}, 'l': {},
}

// Unit is one phoneme occurrence in a word.
type Unit struct {
	Symbol string
	// Known is false for the generic single-letter fallback.
	Known bool
	// Offset is the rune offset of the unit inside the word.
	Offset int
}

// Extract decomposes word into phoneme units, left to right. Every rune of
// the word is covered by exactly one unit.
func Extract(word string) []Unit {
	runes := []rune(strings.ToLower(word))
	units := make([]Unit, 0, len(runes))
	for i := 0; i < len(runes); {
		if symbol, ok := matchMulti(runes[i:]); ok {
			units = append(units, Unit{Symbol: symbol, Known: true, Offset: i})
			i += len([]rune(symbol))
			continue
		}
		r := runes[i]
		_, known := singleChar[r]
		units = append(units, Unit{Symbol: string(r), Known: known, Offset: i})
		i++
	}
	return units
}

func matchMulti(runes []rune) (string, bool) {
	for _, symbol := range multiChar {
		sr := []rune(symbol)
		if len(runes) < len(sr) {
			continue
		}
		if string(runes[:len(sr)]) == symbol {
			return symbol, true
		}
	}
	return "", false
}

// IsUmlaut reports whether r is a lowercase or uppercase umlaut vowel.
func IsUmlaut(r rune) bool {
	switch unicode.ToLower(r) {
	case 'ä', 'ö', 'ü':
		return true
	}
	return false
}
