// Package reference compares a spoken transcript with the text the learner
// was asked to read.
//
// Each expected word is paired with a spoken token in order. A token counts
// as the same word when the lowercase forms are equal; otherwise Double
// Metaphone codes and Jaro-Winkler similarity decide whether it was a
// misheard rendition of the expected word or a different word entirely.
package reference

import (
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/verte-zerg/sprech/internal/transcript"
)

const (
	defaultPhoneticThreshold = 0.70
	defaultFuzzyThreshold    = 0.85
	// lookahead bounds how many spoken tokens are skipped when searching
	// for the next expected word.
	lookahead = 3
)

// Status describes how an expected word was realized.
type Status string

// Word statuses.
const (
	StatusMatched  Status = "matched"
	StatusMisheard Status = "misheard"
	StatusMissing  Status = "missing"
)

// WordMatch pairs one expected word with what was spoken.
type WordMatch struct {
	Expected   string  `json:"expected"`
	Spoken     string  `json:"spoken,omitempty"`
	Status     Status  `json:"status"`
	Similarity float64 `json:"similarity"`
}

// Report is the outcome of a comparison.
type Report struct {
	Words    []WordMatch `json:"words"`
	Extra    []string    `json:"extra,omitempty"`
	Coverage float64     `json:"coverage"`
}

// Option configures a Comparer.
type Option func(*Comparer)

// WithPhoneticThreshold sets the minimum Jaro-Winkler score for tokens that
// share a phonetic code.
func WithPhoneticThreshold(threshold float64) Option {
	return func(c *Comparer) {
		c.phoneticThreshold = threshold
	}
}

// WithFuzzyThreshold sets the minimum Jaro-Winkler score for tokens with no
// phonetic overlap.
func WithFuzzyThreshold(threshold float64) Option {
	return func(c *Comparer) {
		c.fuzzyThreshold = threshold
	}
}

// Comparer aligns expected text with spoken tokens. It is read-only after
// construction and safe for concurrent use.
type Comparer struct {
	phoneticThreshold float64
	fuzzyThreshold    float64
}

// New returns a Comparer configured with opts.
func New(opts ...Option) *Comparer {
	c := &Comparer{
		phoneticThreshold: defaultPhoneticThreshold,
		fuzzyThreshold:    defaultFuzzyThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compare aligns the words of expected with spoken. Coverage is the share of
// expected words that were matched exactly or misheard.
func (c *Comparer) Compare(expected string, spoken []transcript.Token) Report {
	want, err := transcript.Tokenize(expected)
	if err != nil {
		return Report{Words: []WordMatch{}, Extra: transcript.Words(spoken)}
	}
	report := Report{Words: make([]WordMatch, 0, len(want))}
	used := make([]bool, len(spoken))
	next := 0
	realized := 0
	for _, w := range want {
		match := WordMatch{Expected: w.Text, Status: StatusMissing}
		for i := next; i < len(spoken) && i < next+lookahead; i++ {
			status, sim := c.classify(w.Text, spoken[i].Text)
			if status == StatusMissing {
				continue
			}
			match.Spoken = spoken[i].Text
			match.Status = status
			match.Similarity = sim
			used[i] = true
			next = i + 1
			break
		}
		if match.Status != StatusMissing {
			realized++
		}
		report.Words = append(report.Words, match)
	}
	for i, tok := range spoken {
		if !used[i] {
			report.Extra = append(report.Extra, tok.Text)
		}
	}
	report.Coverage = float64(realized) / float64(len(want))
	return report
}

func (c *Comparer) classify(expected, spoken string) (Status, float64) {
	e := strings.ToLower(expected)
	s := strings.ToLower(spoken)
	if e == s {
		return StatusMatched, 1
	}
	sim := matchr.JaroWinkler(e, s, false)
	threshold := c.fuzzyThreshold
	if codesOverlap(e, s) {
		threshold = c.phoneticThreshold
	}
	if sim >= threshold {
		return StatusMisheard, sim
	}
	return StatusMissing, sim
}

func codesOverlap(a, b string) bool {
	ap, as := matchr.DoubleMetaphone(a)
	bp, bs := matchr.DoubleMetaphone(b)
	for _, x := range []string{ap, as} {
		if x == "" {
			continue
		}
		if x == bp || x == bs {
			return true
		}
	}
	return false
}
