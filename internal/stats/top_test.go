package stats

import (
	"testing"

	"github.com/verte-zerg/sprech/internal/model"
)

func TestTopPhonemesByFrequency(t *testing.T) {
	aggs := []model.PhonemeAggregate{
		{Symbol: "r", Count: 4},
		{Symbol: "ü", Count: 4},
		{Symbol: "ch", Count: 1},
	}
	top := TopPhonemesByFrequency(aggs, 2)
	if len(top) != 2 || top[0] != "r" || top[1] != "ü" {
		t.Fatalf("unexpected order: %v", top)
	}
	if got := TopPhonemesByFrequency(aggs, 0); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
