// Package transcript tokenizes transcripts and decodes scoring requests.
package transcript

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ErrEmptyTranscript is returned when a transcript holds no usable tokens.
var ErrEmptyTranscript = errors.New("transcript has no words")

// Token is a normalized word with the index of the whitespace field it came from.
type Token struct {
	Text  string
	Index int
}

// Tokenize splits raw text on whitespace into ordered word tokens.
// Surrounding punctuation is trimmed and empty tokens are dropped; Index keeps
// timings aligned with the original fields.
func Tokenize(raw string) ([]Token, error) {
	fields := strings.Fields(Normalize(raw))
	tokens := make([]Token, 0, len(fields))
	for i, field := range fields {
		text := strings.TrimFunc(field, unicode.IsPunct)
		if text == "" {
			continue
		}
		tokens = append(tokens, Token{Text: text, Index: i})
	}
	if len(tokens) == 0 {
		return nil, ErrEmptyTranscript
	}
	return tokens, nil
}

// Normalize returns the NFC form of raw so combining diaeresis marks fold into
// precomposed umlauts.
func Normalize(raw string) string {
	return norm.NFC.String(raw)
}

// Words returns the token texts in order.
func Words(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}
