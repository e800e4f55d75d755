package wordlist

import (
	"github.com/verte-zerg/sprech/internal/transcript"
	"github.com/verte-zerg/sprech/internal/validity"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterGerman keeps words made only of German letters.
func FilterGerman(word string) bool {
	word = transcript.Normalize(word)
	if len([]rune(word)) < 2 {
		return false
	}
	for _, r := range word {
		if !validity.IsGermanLetter(r) {
			return false
		}
	}
	return true
}
