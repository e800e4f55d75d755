// Package model defines shared data structures.
package model

import "time"

// Difficulty classifies how hard a word or phoneme is to pronounce.
type Difficulty string

// Difficulty tiers.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Request is the scoring input: a transcript with optional timing and audio size.
type Request struct {
	Transcript      string       `json:"transcript"`
	WordTimings     []WordTiming `json:"wordTimings,omitempty"`
	AudioByteLength *int64       `json:"audioByteLength,omitempty"`
}

// WordTiming is the start and end of a spoken word in seconds.
type WordTiming struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns the spoken length in seconds.
func (t WordTiming) Duration() float64 {
	return t.End - t.Start
}

// Phoneme describes a recognized phoneme unit and its difficulty data.
type Phoneme struct {
	Symbol            string     `yaml:"symbol" json:"symbol"`
	Tier              Difficulty `yaml:"tier" json:"tier"`
	ExpectedIPA       string     `yaml:"ipa" json:"expectedIPA"`
	CommonMistakeIPAs []string   `yaml:"mistakes" json:"commonMistakeIPAs"`
	Description       string     `yaml:"description" json:"description,omitempty"`
}

// PhonemeScore is the score of a single phoneme occurrence inside a word.
type PhonemeScore struct {
	Symbol      string `json:"symbol"`
	Score       int    `json:"score"`
	ExpectedIPA string `json:"expectedIPA"`
	ActualIPA   string `json:"actualIPA"`
	Feedback    string `json:"feedback"`
}

// WordScore is the score of a single transcript word.
type WordScore struct {
	Word             string         `json:"word"`
	Score            int            `json:"score"`
	PhonemeScores    []PhonemeScore `json:"phonemeScores"`
	Feedback         string         `json:"feedback"`
	Difficulty       Difficulty     `json:"difficulty"`
	Duration         float64        `json:"duration"`
	ExpectedDuration float64        `json:"expectedDuration"`
}

// Breakdown holds the per-category accuracy derived from the overall score.
type Breakdown struct {
	VowelAccuracy     int `json:"vowelAccuracy"`
	ConsonantAccuracy int `json:"consonantAccuracy"`
	Rhythm            int `json:"rhythm"`
	Stress            int `json:"stress"`
}

// SessionResult is the outcome of scoring one transcript.
type SessionResult struct {
	Overall     int         `json:"overall"`
	Words       []WordScore `json:"words"`
	Suggestions []string    `json:"suggestions"`
	HasErrors   bool        `json:"hasErrors"`
	Breakdown   Breakdown   `json:"breakdown"`
}

// DrillConfig defines drill text settings.
type DrillConfig struct {
	Words      int
	WeakTop    int
	WeakFactor float64
	WeakWindow int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since       *time.Time
	Last        int
	CurveWindow int
	Phonemes    string
}

// Attempt is a scored transcript kept in the history store.
type Attempt struct {
	ID         string
	ScoredAt   time.Time
	Label      string
	Transcript string
	Result     SessionResult
}

// AttemptAggregate summarizes a stored attempt for reporting.
type AttemptAggregate struct {
	AttemptID string
	ScoredAt  time.Time
	Overall   int
	Words     int
}

// PhonemeAggregate aggregates phoneme scores across attempts.
type PhonemeAggregate struct {
	Symbol   string
	Count    int
	ScoreSum int
	Low      int
}

// Mean returns the average phoneme score, or 0 with no samples.
func (a PhonemeAggregate) Mean() float64 {
	if a.Count == 0 {
		return 0
	}
	return float64(a.ScoreSum) / float64(a.Count)
}
