package stats

import (
	"sort"

	"github.com/verte-zerg/sprech/internal/model"
)

// TopPhonemesByFrequency returns the n most frequently scored phonemes.
func TopPhonemesByFrequency(aggs []model.PhonemeAggregate, n int) []string {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	sorted := make([]model.PhonemeAggregate, len(aggs))
	copy(sorted, aggs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count == sorted[j].Count {
			return sorted[i].Symbol < sorted[j].Symbol
		}
		return sorted[i].Count > sorted[j].Count
	})
	n = min(n, len(sorted))
	out := make([]string, n)
	for i := range out {
		out[i] = sorted[i].Symbol
	}
	return out
}
