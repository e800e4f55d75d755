package stats

import (
	"context"

	"github.com/verte-zerg/sprech/internal/model"
	"github.com/verte-zerg/sprech/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Attempts          []model.AttemptAggregate
	WindowAttemptIDs  []string
	PhonemeAggsAll    []model.PhonemeAggregate
	PhonemeAggsWindow []model.PhonemeAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	attempts, err := st.ListAttempts(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(attempts) > cfg.Last {
		attempts = attempts[len(attempts)-cfg.Last:]
	}

	windowIDs := attemptIDs(tail(attempts, cfg.CurveWindow))
	all, err := st.ListPhonemeAggregatesForAttempts(ctx, attemptIDs(attempts))
	if err != nil {
		return Report{}, err
	}
	window, err := st.ListPhonemeAggregatesForAttempts(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Attempts:          attempts,
		WindowAttemptIDs:  windowIDs,
		PhonemeAggsAll:    all,
		PhonemeAggsWindow: window,
	}, nil
}

// AttemptIDs returns the IDs of the report's attempts in order.
func (r Report) AttemptIDs() []string {
	return attemptIDs(r.Attempts)
}

func attemptIDs(attempts []model.AttemptAggregate) []string {
	ids := make([]string, len(attempts))
	for i, a := range attempts {
		ids[i] = a.AttemptID
	}
	return ids
}

func tail(attempts []model.AttemptAggregate, window int) []model.AttemptAggregate {
	if window <= 0 || len(attempts) <= window {
		return attempts
	}
	return attempts[len(attempts)-window:]
}
