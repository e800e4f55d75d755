package validity

import (
	"testing"

	"github.com/verte-zerg/sprech/internal/model"
	"github.com/verte-zerg/sprech/internal/transcript"
)

func classify(t *testing.T, req model.Request) Verdict {
	t.Helper()
	tokens, _ := transcript.Tokenize(req.Transcript)
	return New(DefaultLimits()).Classify(req, tokens)
}

func TestClassifyRejectsGibberish(t *testing.T) {
	cases := map[string]Reason{
		"":            ReasonEmpty,
		"   ":         ReasonEmpty,
		"ok":          ReasonTooShort,
		"aeiou":       ReasonVowelsOnly,
		"a e i o u":   ReasonVowelsOnly,
		"hmm brr":     ReasonConsonantsOnly,
		"123 456":     ReasonNoLetters,
		"это тест":    ReasonNoLetters,
		"aaaaaa":      ReasonVowelsOnly,
		"haaaallo":    ReasonRepeatedChar,
		"HaAAallo":    ReasonRepeatedChar,
		"ab cd ef":    ReasonShortTokens,
		"du da so ja": ReasonShortTokens,
	}
	for text, reason := range cases {
		verdict := classify(t, model.Request{Transcript: text})
		if verdict.Valid {
			t.Fatalf("expected %q to be rejected", text)
		}
		if verdict.Reason != reason {
			t.Fatalf("%q: expected reason %q, got %q", text, reason, verdict.Reason)
		}
	}
}

func TestClassifyAcceptsSpeech(t *testing.T) {
	for _, text := range []string{"Guten Morgen", "Ich möchte ein Brötchen", "Tschüss!", "Ja, gut"} {
		verdict := classify(t, model.Request{Transcript: text})
		if !verdict.Valid {
			t.Fatalf("expected %q to be valid, got %q", text, verdict.Reason)
		}
	}
}

func TestClassifyTwoShortTokensAllowed(t *testing.T) {
	verdict := classify(t, model.Request{Transcript: "ja du"})
	if !verdict.Valid {
		t.Fatalf("expected two short tokens to pass, got %q", verdict.Reason)
	}
}

func TestClassifyAudioSize(t *testing.T) {
	small := int64(999)
	verdict := classify(t, model.Request{Transcript: "Guten Morgen", AudioByteLength: &small})
	if verdict.Valid || verdict.Reason != ReasonAudioTooSmall {
		t.Fatalf("expected audio-too-small, got %+v", verdict)
	}

	perWord := int64(1500)
	verdict = classify(t, model.Request{Transcript: "ich gehe heute in die Stadt", AudioByteLength: &perWord})
	if verdict.Valid || verdict.Reason != ReasonAudioTooSmall {
		t.Fatalf("expected per-word audio rejection, got %+v", verdict)
	}

	enough := int64(48000)
	verdict = classify(t, model.Request{Transcript: "ich gehe heute in die Stadt", AudioByteLength: &enough})
	if !verdict.Valid {
		t.Fatalf("expected valid audio size, got %q", verdict.Reason)
	}
}

func TestClassifyTimings(t *testing.T) {
	fast := model.Request{
		Transcript: "ich gehe nach Hause",
		WordTimings: []model.WordTiming{
			{Start: 0, End: 0.2}, {Start: 0.2, End: 0.4}, {Start: 0.4, End: 0.6}, {Start: 0.6, End: 0.9},
		},
	}
	if verdict := classify(t, fast); verdict.Valid || verdict.Reason != ReasonTooFast {
		t.Fatalf("expected too-fast, got %+v", verdict)
	}

	clipped := model.Request{
		Transcript: "Guten Morgen",
		WordTimings: []model.WordTiming{
			{Start: 0, End: 0.02}, {Start: 1.0, End: 1.03},
		},
	}
	if verdict := classify(t, clipped); verdict.Valid || verdict.Reason != ReasonTooShortWords {
		t.Fatalf("expected words-too-short, got %+v", verdict)
	}

	natural := model.Request{
		Transcript: "ich gehe nach Hause",
		WordTimings: []model.WordTiming{
			{Start: 0, End: 0.3}, {Start: 0.4, End: 0.8}, {Start: 0.9, End: 1.3}, {Start: 1.4, End: 2.0},
		},
	}
	if verdict := classify(t, natural); !verdict.Valid {
		t.Fatalf("expected valid timings, got %q", verdict.Reason)
	}

	partial := model.Request{
		Transcript:  "ich gehe heute nach Hause",
		WordTimings: []model.WordTiming{{Start: 0, End: 0.5}},
	}
	if verdict := classify(t, partial); !verdict.Valid {
		t.Fatalf("expected a single timing to pass, got %q", verdict.Reason)
	}

	fastPrefix := model.Request{
		Transcript: "ich gehe heute nach Hause",
		WordTimings: []model.WordTiming{
			{Start: 0, End: 0.2}, {Start: 0.2, End: 0.4}, {Start: 0.4, End: 0.6}, {Start: 0.6, End: 0.8},
		},
	}
	if verdict := classify(t, fastPrefix); verdict.Valid || verdict.Reason != ReasonTooFast {
		t.Fatalf("expected too-fast over the timed tokens, got %+v", verdict)
	}
}

func TestMaxRun(t *testing.T) {
	cases := map[string]int{
		"":      0,
		"a":     1,
		"abba":  2,
		"Aaab":  3,
		"xyzzz": 3,
	}
	for in, expected := range cases {
		if got := MaxRun(in); got != expected {
			t.Fatalf("MaxRun(%q) = %d, expected %d", in, got, expected)
		}
	}
}
