package scoring

import (
	"testing"

	"github.com/verte-zerg/sprech/internal/model"
)

func TestAggregateAllZero(t *testing.T) {
	res := Aggregate([]model.WordScore{{Word: "a"}, {Word: "hmm"}})
	if res.Overall != 0 || !res.HasErrors {
		t.Fatalf("expected zero overall with errors, got %+v", res)
	}
	if res.Breakdown != (model.Breakdown{}) {
		t.Fatalf("expected zero breakdown, got %+v", res.Breakdown)
	}
}

func TestAggregateMeanAndBreakdown(t *testing.T) {
	res := Aggregate([]model.WordScore{{Score: 80}, {Score: 71}})
	if res.Overall != 76 {
		t.Fatalf("expected overall 76, got %d", res.Overall)
	}
	if res.HasErrors {
		t.Fatalf("expected no errors at 76")
	}
	expected := model.Breakdown{VowelAccuracy: 68, ConsonantAccuracy: 72, Rhythm: 65, Stress: 68}
	if res.Breakdown != expected {
		t.Fatalf("expected breakdown %+v, got %+v", expected, res.Breakdown)
	}
	if len(res.Suggestions) != 3 || res.Suggestions[0] != suggestionsMid[0] {
		t.Fatalf("unexpected suggestions: %v", res.Suggestions)
	}
}

func TestAggregateSmallMeanStaysPositive(t *testing.T) {
	words := make([]model.WordScore, 40)
	words[0].Score = 15
	res := Aggregate(words)
	if res.Overall != 1 {
		t.Fatalf("expected overall lifted to 1, got %d", res.Overall)
	}
}

func TestAggregateSuggestionBrackets(t *testing.T) {
	cases := []struct {
		score    int
		expected []string
		errors   bool
	}{
		{score: 59, expected: suggestionsLow, errors: true},
		{score: 60, expected: suggestionsMid, errors: true},
		{score: 69, expected: suggestionsMid, errors: true},
		{score: 70, expected: suggestionsMid, errors: false},
		{score: 79, expected: suggestionsMid, errors: false},
		{score: 80, expected: suggestionsHigh, errors: false},
	}
	for _, tc := range cases {
		res := Aggregate([]model.WordScore{{Score: tc.score}})
		if res.Suggestions[0] != tc.expected[0] {
			t.Fatalf("score %d: unexpected suggestions %v", tc.score, res.Suggestions)
		}
		if res.HasErrors != tc.errors {
			t.Fatalf("score %d: expected hasErrors=%v", tc.score, tc.errors)
		}
	}
}

func TestBreakdownOrdering(t *testing.T) {
	for overall := 1; overall <= 100; overall++ {
		b := breakdownFor(overall)
		if b.ConsonantAccuracy < b.Rhythm {
			t.Fatalf("overall %d: consonant %d < rhythm %d", overall, b.ConsonantAccuracy, b.Rhythm)
		}
	}
}

func TestSuggestionsAreCopies(t *testing.T) {
	res := Aggregate([]model.WordScore{{Score: 90}})
	res.Suggestions[0] = "changed"
	if suggestionsHigh[0] == "changed" {
		t.Fatalf("suggestion set was mutated")
	}
}
