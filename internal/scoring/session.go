package scoring

import (
	"math"

	"github.com/verte-zerg/sprech/internal/model"
)

const errorThreshold = 70

var (
	suggestionsLow = []string{
		"Practice slowly, one word at a time, and exaggerate each sound.",
		"Focus on the umlauts ä, ö and ü: round your lips for ö and ü.",
		"Listen to a native recording and repeat it sentence by sentence.",
	}
	suggestionsMid = []string{
		"Good progress. Work on the words marked as hard.",
		"Pay attention to 'ch': soft after e and i, throaty after a, o and u.",
		"Keep an even rhythm and avoid rushing through longer words.",
	}
	suggestionsHigh = []string{
		"Excellent work. Try longer sentences to keep improving.",
		"Practice natural sentence stress and intonation.",
		"Challenge yourself with tongue twisters like 'Fischers Fritz fischt frische Fische'.",
	}
)

// Aggregate combines word scores into a session result.
func Aggregate(words []model.WordScore) model.SessionResult {
	if len(words) == 0 {
		return InvalidResult()
	}
	overall := overallScore(words)
	return model.SessionResult{
		Overall:     overall,
		Words:       words,
		Suggestions: suggestionsFor(overall),
		HasErrors:   overall < errorThreshold,
		Breakdown:   breakdownFor(overall),
	}
}

// InvalidResult is the zero-score result for empty, gibberish or silent input.
func InvalidResult() model.SessionResult {
	return model.SessionResult{
		Overall:     0,
		Words:       []model.WordScore{},
		Suggestions: []string{RetryMessage},
		HasErrors:   true,
	}
}

// overallScore is the rounded mean. It is 0 only when every word scored 0;
// a mean that rounds down to 0 is lifted to 1.
func overallScore(words []model.WordScore) int {
	sum := 0
	for _, w := range words {
		sum += w.Score
	}
	if sum == 0 {
		return 0
	}
	overall := int(math.Round(float64(sum) / float64(len(words))))
	if overall < 1 {
		overall = 1
	}
	return overall
}

func breakdownFor(overall int) model.Breakdown {
	scale := func(f float64) int {
		return int(math.Round(float64(overall) * f))
	}
	return model.Breakdown{
		VowelAccuracy:     scale(0.9),
		ConsonantAccuracy: scale(0.95),
		Rhythm:            scale(0.85),
		Stress:            scale(0.9),
	}
}

func suggestionsFor(overall int) []string {
	var set []string
	switch {
	case overall < 60:
		set = suggestionsLow
	case overall < 80:
		set = suggestionsMid
	default:
		set = suggestionsHigh
	}
	return append([]string(nil), set...)
}
