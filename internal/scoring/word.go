// Package scoring turns normalized transcripts into word and session scores.
package scoring

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/sprech/internal/model"
	"github.com/verte-zerg/sprech/internal/phoneme"
	"github.com/verte-zerg/sprech/internal/validity"
)

const (
	baseScore         = 85
	secondsPerRune    = 0.15
	silenceSeconds    = 0.1
	maxWordRepeat     = 3
	longWordRunes     = 6
	perturbModulus    = 11
	perturbOffset     = 5
	rushedRatio       = 0.7
	laboredRatio      = 1.5
	umlautSlowRatio   = 1.3
	chSlowRatio       = 1.4
	rSlowRatio        = 1.2
	umlautPenalty     = 15
	chPenalty         = 20
	rPenalty          = 10
	longWordPenalty   = 5
	rushedPenalty     = 15
	laboredPenalty    = 10
	goodPhonemeCutoff = 80
)

// RetryMessage is the guidance shown for unusable input.
const RetryMessage = "Please speak clearly and try again."

var fillers = map[string]struct{}{
	"ah": {}, "eh": {}, "oh": {}, "uh": {}, "mm": {},
	"hmm": {}, "um": {}, "er": {}, "uhm": {},
}

// WordScorer scores single words against a phoneme table.
// It holds no mutable state and is safe for concurrent use.
type WordScorer struct {
	table *phoneme.Table
}

// NewWordScorer returns a WordScorer using table; nil uses the default table.
func NewWordScorer(table *phoneme.Table) *WordScorer {
	if table == nil {
		table = phoneme.Default()
	}
	return &WordScorer{table: table}
}

// Score scores word. timing is optional; without it the expected duration is
// assumed, so no timing deduction applies.
func (s *WordScorer) Score(word string, timing *model.WordTiming) model.WordScore {
	lower := strings.ToLower(word)
	runes := utf8.RuneCountInString(word)
	expected := float64(runes) * secondsPerRune
	duration := expected
	if timing != nil {
		duration = timing.Duration()
	}

	hasUmlaut := strings.ContainsFunc(lower, phoneme.IsUmlaut)
	hasCh := strings.Contains(lower, "ch")
	hasR := strings.Contains(lower, "r")

	result := model.WordScore{
		Word:             word,
		PhonemeScores:    []model.PhonemeScore{},
		Difficulty:       difficulty(hasUmlaut, hasCh, hasR, runes),
		Duration:         roundSeconds(duration),
		ExpectedDuration: roundSeconds(expected),
	}

	if isGibberishWord(word, runes) {
		result.Feedback = RetryMessage
		return result
	}
	if timing != nil && duration < silenceSeconds {
		result.Feedback = RetryMessage
		return result
	}

	score := baseScore
	if hasUmlaut {
		score -= umlautPenalty
	}
	if hasCh {
		score -= chPenalty
	}
	if hasR {
		score -= rPenalty
	}
	if runes > longWordRunes {
		score -= longWordPenalty
	}
	switch {
	case duration < rushedRatio*expected:
		score -= rushedPenalty
	case duration > laboredRatio*expected:
		score -= laboredPenalty
	}

	result.PhonemeScores = s.phonemeScores(word, duration, expected)
	score += perturbation(word)
	result.Score = clamp(score)
	result.Feedback = wordFeedback(result.Score)
	return result
}

func (s *WordScorer) phonemeScores(word string, duration, expected float64) []model.PhonemeScore {
	scores := []model.PhonemeScore{}
	for _, unit := range phoneme.Extract(word) {
		var good, poor int
		var slowRatio float64
		switch unit.Symbol {
		case "ä", "ö", "ü":
			good, poor, slowRatio = 85, 65, umlautSlowRatio
		case "ch", "sch":
			good, poor, slowRatio = 80, 60, chSlowRatio
		case "r":
			good, poor, slowRatio = 85, 70, rSlowRatio
		default:
			continue
		}
		entry, _ := s.table.Lookup(unit.Symbol)
		score := good
		if duration > slowRatio*expected {
			score = poor
		}
		scores = append(scores, model.PhonemeScore{
			Symbol:      unit.Symbol,
			Score:       score,
			ExpectedIPA: entry.ExpectedIPA,
			ActualIPA:   actualIPA(entry, score),
			Feedback:    phonemeFeedback(entry, score),
		})
	}
	return scores
}

// actualIPA is a heuristic placeholder: without an acoustic signal the most
// common mistake stands in for a weak realization.
func actualIPA(entry model.Phoneme, score int) string {
	if score >= goodPhonemeCutoff || len(entry.CommonMistakeIPAs) == 0 {
		return entry.ExpectedIPA
	}
	return entry.CommonMistakeIPAs[0]
}

func phonemeFeedback(entry model.Phoneme, score int) string {
	if score >= goodPhonemeCutoff {
		return fmt.Sprintf("Good '%s' sound. Target: [%s].", entry.Symbol, entry.ExpectedIPA)
	}
	if len(entry.CommonMistakeIPAs) > 0 {
		return fmt.Sprintf("Work on the '%s' sound: aim for [%s], not [%s].", entry.Symbol, entry.ExpectedIPA, entry.CommonMistakeIPAs[0])
	}
	return fmt.Sprintf("Work on the '%s' sound: aim for [%s].", entry.Symbol, entry.ExpectedIPA)
}

func isGibberishWord(word string, runes int) bool {
	if runes < 2 {
		return true
	}
	if _, ok := fillers[strings.ToLower(word)]; ok {
		return true
	}
	return validity.VowelsOnly(word) ||
		validity.ConsonantsOnly(word) ||
		!validity.HasGermanLetter(word) ||
		validity.MaxRun(word) >= maxWordRepeat
}

// perturbation maps the rune code sum of word into [-5, +5].
func perturbation(word string) int {
	sum := 0
	for _, r := range word {
		sum += int(r)
	}
	return sum%perturbModulus - perturbOffset
}

func difficulty(hasUmlaut, hasCh, hasR bool, runes int) model.Difficulty {
	switch {
	case hasUmlaut || hasCh:
		return model.DifficultyHard
	case hasR || runes > longWordRunes:
		return model.DifficultyMedium
	default:
		return model.DifficultyEasy
	}
}

func wordFeedback(score int) string {
	switch {
	case score >= 90:
		return "Excellent pronunciation!"
	case score >= 75:
		return "Good pronunciation with minor improvements needed."
	case score >= 60:
		return "Fair pronunciation, practice the difficult sounds."
	default:
		return "Needs significant practice. Focus on the phoneme-level feedback."
	}
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func roundSeconds(v float64) float64 {
	return math.Round(v*1000) / 1000
}
