package stats

import (
	"sort"

	"github.com/verte-zerg/sprech/internal/model"
)

// SelectWeakPhonemes selects the lowest-scoring phonemes from aggregates.
// Phonemes without samples are never weak.
func SelectWeakPhonemes(aggs []model.PhonemeAggregate, top int) map[string]struct{} {
	weak := map[string]struct{}{}
	candidates := make([]model.PhonemeAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Count > 0 {
			candidates = append(candidates, agg)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		mi, mj := candidates[i].Mean(), candidates[j].Mean()
		if mi == mj {
			return candidates[i].Symbol < candidates[j].Symbol
		}
		return mi < mj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	for _, agg := range candidates[:top] {
		weak[agg.Symbol] = struct{}{}
	}
	return weak
}
