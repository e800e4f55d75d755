package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/sprech/internal/model"
	"github.com/verte-zerg/sprech/internal/store"
)

func TestBuildReport(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "sprech.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []string
	for i := 0; i < 3; i++ {
		res := model.SessionResult{
			Overall: 60 + i*10,
			Words: []model.WordScore{{
				Word:  "für",
				Score: 60 + i*10,
				PhonemeScores: []model.PhonemeScore{
					{Symbol: "ü", Score: 50 + i*10},
					{Symbol: "r", Score: 80},
				},
			}},
		}
		id, err := st.InsertAttempt(ctx, model.Attempt{
			ScoredAt:   time.Unix(0, 0).Add(time.Duration(i) * time.Minute),
			Transcript: "für",
			Result:     res,
		})
		if err != nil {
			t.Fatalf("insert attempt: %v", err)
		}
		ids = append(ids, id)
	}

	report, err := BuildReport(ctx, st, model.StatsConfig{Last: 2, CurveWindow: 1})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(report.Attempts))
	}
	if report.Attempts[0].AttemptID != ids[1] || report.Attempts[1].AttemptID != ids[2] {
		t.Fatalf("unexpected attempt ids: %+v", report.Attempts)
	}
	if len(report.WindowAttemptIDs) != 1 || report.WindowAttemptIDs[0] != ids[2] {
		t.Fatalf("unexpected window ids: %v", report.WindowAttemptIDs)
	}
	var umlaut model.PhonemeAggregate
	for _, agg := range report.PhonemeAggsAll {
		if agg.Symbol == "ü" {
			umlaut = agg
		}
	}
	if umlaut.Count != 2 || umlaut.ScoreSum != 60+70 {
		t.Fatalf("unexpected ü aggregate: %+v", umlaut)
	}
	if len(report.PhonemeAggsWindow) != 2 {
		t.Fatalf("expected window aggregates for 2 phonemes, got %+v", report.PhonemeAggsWindow)
	}
}
