package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/sprech/internal/model"
)

// ErrMissingTranscript is returned when a request carries no transcript field.
var ErrMissingTranscript = errors.New("request is missing a transcript")

type requestPayload struct {
	Transcript      *string            `json:"transcript"`
	WordTimings     []model.WordTiming `json:"wordTimings"`
	AudioByteLength *int64             `json:"audioByteLength"`

	// Timed transcription shape.
	Text  *string     `json:"text"`
	Words []timedWord `json:"words"`
}

type timedWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// DecodeRequest reads a JSON scoring request. Both the request contract
// ({transcript, wordTimings, audioByteLength}) and the timed transcription
// shape ({text, words[{word,start,end}]}) are accepted.
func DecodeRequest(r io.Reader) (model.Request, error) {
	var payload requestPayload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return model.Request{}, fmt.Errorf("failed to decode request: %w", err)
	}
	req := model.Request{AudioByteLength: payload.AudioByteLength}
	switch {
	case payload.Transcript != nil:
		req.Transcript = *payload.Transcript
		req.WordTimings = payload.WordTimings
	case payload.Text != nil:
		req.Transcript = *payload.Text
		req.WordTimings = timingsFromWords(payload.Words)
	case len(payload.Words) > 0:
		words := make([]string, len(payload.Words))
		for i, w := range payload.Words {
			words[i] = w.Word
		}
		req.Transcript = strings.Join(words, " ")
		req.WordTimings = timingsFromWords(payload.Words)
	default:
		return model.Request{}, ErrMissingTranscript
	}
	return req, nil
}

// RequestFromText wraps plain text in a request. Lines starting with '{' are
// decoded as JSON instead.
func RequestFromText(data []byte) (model.Request, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		return DecodeRequest(strings.NewReader(trimmed))
	}
	return model.Request{Transcript: string(data)}, nil
}

func timingsFromWords(words []timedWord) []model.WordTiming {
	if len(words) == 0 {
		return nil
	}
	timings := make([]model.WordTiming, len(words))
	for i, w := range words {
		timings[i] = model.WordTiming{Start: w.Start, End: w.End}
	}
	return timings
}
