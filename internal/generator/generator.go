// Package generator builds drill texts from word lists.
package generator

import (
	"math/rand"
	"strings"
	"time"

	"github.com/verte-zerg/sprech/internal/phoneme"
)

// sentenceLen is the number of words grouped into one drill sentence.
const sentenceLen = 6

// Generator produces randomized drill text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate selects words uniformly.
func (g *Generator) Generate(words []string, count int) []string {
	if len(words) == 0 {
		return nil
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, words[g.rnd.Intn(len(words))])
	}
	return result
}

// GenerateWeighted selects words with a bias toward weak phonemes. Each word
// weighs 1 plus factor times the number of weak phoneme units it contains.
func (g *Generator) GenerateWeighted(words []string, count int, weak map[string]struct{}, factor float64) []string {
	if len(words) == 0 {
		return nil
	}
	if len(weak) == 0 || factor <= 0 {
		return g.Generate(words, count)
	}
	weights := make([]float64, len(words))
	total := 0.0
	for i, word := range words {
		w := 1.0 + float64(WeakUnits(word, weak))*factor
		weights[i] = w
		total += w
	}

	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		r := g.rnd.Float64() * total
		idx := len(words) - 1
		acc := 0.0
		for j, w := range weights {
			acc += w
			if r < acc {
				idx = j
				break
			}
		}
		result = append(result, words[idx])
	}
	return result
}

// WeakUnits counts the phoneme units of word that are in the weak set.
func WeakUnits(word string, weak map[string]struct{}) int {
	n := 0
	for _, unit := range phoneme.Extract(word) {
		if _, ok := weak[unit.Symbol]; ok && unit.Known {
			n++
		}
	}
	return n
}

// Sentences groups drill words into capitalized lines ending with a period.
func Sentences(words []string) []string {
	var lines []string
	for start := 0; start < len(words); start += sentenceLen {
		end := min(start+sentenceLen, len(words))
		line := strings.Join(words[start:end], " ")
		runes := []rune(line)
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		lines = append(lines, string(runes)+".")
	}
	return lines
}
