// Package validity rejects empty, gibberish and silent input before scoring.
package validity

import (
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/sprech/internal/model"
	"github.com/verte-zerg/sprech/internal/transcript"
)

// Reason names the rule that rejected an input.
type Reason string

// Rejection reasons, in evaluation order.
const (
	ReasonNone           Reason = ""
	ReasonEmpty          Reason = "empty"
	ReasonTooShort       Reason = "too-short"
	ReasonVowelsOnly     Reason = "vowels-only"
	ReasonConsonantsOnly Reason = "consonants-only"
	ReasonNoLetters      Reason = "no-german-letters"
	ReasonRepeatedChar   Reason = "repeated-character"
	ReasonShortTokens    Reason = "short-tokens"
	ReasonAudioTooSmall  Reason = "audio-too-small"
	ReasonTooFast        Reason = "too-fast"
	ReasonTooShortWords  Reason = "words-too-short"
)

// Verdict is the outcome of classification.
type Verdict struct {
	Valid  bool
	Reason Reason
}

// Limits holds the thresholds used by the classifier.
type Limits struct {
	MinChars             int
	MaxRepeat            int
	MinAudioBytes        int64
	MinAudioBytesPerWord int64
	// More than FastWordCount tokens inside FastSpan seconds is too fast.
	FastWordCount   int
	FastSpan        float64
	MinAvgWordSpan  float64
	ShortTokenLen   int
	ShortTokenCount int
}

// DefaultLimits returns the standard thresholds.
func DefaultLimits() Limits {
	return Limits{
		MinChars:             3,
		MaxRepeat:            4,
		MinAudioBytes:        1000,
		MinAudioBytesPerWord: 400,
		FastWordCount:        3,
		FastSpan:             1.0,
		MinAvgWordSpan:       0.05,
		ShortTokenLen:        2,
		ShortTokenCount:      2,
	}
}

// Classifier applies the validity rules. It is read-only after construction.
type Classifier struct {
	limits Limits
}

// New returns a Classifier using limits.
func New(limits Limits) *Classifier {
	return &Classifier{limits: limits}
}

// Classify checks a request against every rule and reports the first failure.
// tokens may be nil when tokenization failed.
func (c *Classifier) Classify(req model.Request, tokens []transcript.Token) Verdict {
	if len(tokens) == 0 {
		return reject(ReasonEmpty)
	}
	text := strings.TrimSpace(transcript.Normalize(req.Transcript))
	switch {
	case utf8.RuneCountInString(text) < c.limits.MinChars:
		return reject(ReasonTooShort)
	case VowelsOnly(text):
		return reject(ReasonVowelsOnly)
	case ConsonantsOnly(text):
		return reject(ReasonConsonantsOnly)
	case !HasGermanLetter(text):
		return reject(ReasonNoLetters)
	case MaxRun(text) >= c.limits.MaxRepeat:
		return reject(ReasonRepeatedChar)
	case c.allTokensShort(tokens):
		return reject(ReasonShortTokens)
	}
	if req.AudioByteLength != nil && c.audioTooSmall(*req.AudioByteLength, len(tokens)) {
		return reject(ReasonAudioTooSmall)
	}
	if len(req.WordTimings) > 0 {
		if reason := c.checkTimings(req.WordTimings, len(tokens)); reason != ReasonNone {
			return reject(reason)
		}
	}
	return Verdict{Valid: true}
}

func (c *Classifier) allTokensShort(tokens []transcript.Token) bool {
	if len(tokens) <= c.limits.ShortTokenCount {
		return false
	}
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok.Text) > c.limits.ShortTokenLen {
			return false
		}
	}
	return true
}

func (c *Classifier) audioTooSmall(size int64, tokenCount int) bool {
	if size < c.limits.MinAudioBytes {
		return true
	}
	return size < int64(tokenCount)*c.limits.MinAudioBytesPerWord
}

// checkTimings judges only the tokens that have a timing.
func (c *Classifier) checkTimings(timings []model.WordTiming, tokenCount int) Reason {
	timings = timings[:min(len(timings), tokenCount)]
	span := timings[len(timings)-1].End - timings[0].Start
	if len(timings) > c.limits.FastWordCount && span < c.limits.FastSpan {
		return ReasonTooFast
	}
	var total float64
	for _, t := range timings {
		total += t.Duration()
	}
	if total/float64(len(timings)) < c.limits.MinAvgWordSpan {
		return ReasonTooShortWords
	}
	return ReasonNone
}

func reject(reason Reason) Verdict {
	return Verdict{Valid: false, Reason: reason}
}
