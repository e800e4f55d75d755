package stats

import (
	"testing"

	"github.com/verte-zerg/sprech/internal/model"
)

func TestSelectWeakPhonemes(t *testing.T) {
	aggs := []model.PhonemeAggregate{
		{Symbol: "r", Count: 4, ScoreSum: 360},
		{Symbol: "ü", Count: 2, ScoreSum: 100},
		{Symbol: "ch", Count: 3, ScoreSum: 180},
		{Symbol: "ng"},
	}
	weak := SelectWeakPhonemes(aggs, 2)
	if len(weak) != 2 {
		t.Fatalf("expected 2 weak phonemes, got %v", weak)
	}
	for _, symbol := range []string{"ü", "ch"} {
		if _, ok := weak[symbol]; !ok {
			t.Fatalf("expected %q to be weak: %v", symbol, weak)
		}
	}
	if all := SelectWeakPhonemes(aggs, 0); len(all) != 3 {
		t.Fatalf("expected all sampled phonemes, got %v", all)
	}
}
