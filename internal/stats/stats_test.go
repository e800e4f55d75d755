package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/sprech/internal/model"
)

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{10, 20, 30, 40}, 2)
	want := []float64{10, 15, 25, 35}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if got := MovingAverage([]float64{5}, 0); got[0] != 5 {
		t.Fatalf("expected copy for window 0, got %v", got)
	}
}

func TestSparklineFixedScale(t *testing.T) {
	if got := Sparkline([]float64{0, 100, 50}); got != " @+" {
		t.Fatalf("unexpected sparkline %q", got)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	attempts := []model.AttemptAggregate{
		{AttemptID: "a", ScoredAt: time.Unix(0, 0), Overall: 60, Words: 3},
		{AttemptID: "b", ScoredAt: time.Unix(60, 0), Overall: 80, Words: 5},
	}
	if err := RenderSummary(&buf, attempts); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Attempts: 2", "Words scored: 8", "Avg overall: 70.0", "Best overall: 80"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}

	buf.Reset()
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "No attempts found.\n" {
		t.Fatalf("unexpected empty summary %q", buf.String())
	}
}

func TestPhonemeSeriesCarriesForward(t *testing.T) {
	attempts := []model.AttemptAggregate{{AttemptID: "a"}, {AttemptID: "b"}, {AttemptID: "c"}}
	per := map[string]map[string]model.PhonemeAggregate{
		"b": {"ü": {Symbol: "ü", Count: 2, ScoreSum: 120}},
	}
	got := PhonemeSeries(attempts, per, "ü")
	if len(got) != 2 || got[0] != 60 || got[1] != 60 {
		t.Fatalf("unexpected series %v", got)
	}
}

func TestRenderPhonemeTableSortsWeakestFirst(t *testing.T) {
	var buf bytes.Buffer
	aggs := []model.PhonemeAggregate{
		{Symbol: "r", Count: 2, ScoreSum: 180},
		{Symbol: "ü", Count: 2, ScoreSum: 100, Low: 2},
	}
	if err := RenderPhonemeTable(&buf, aggs, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 5 || !strings.HasPrefix(lines[3], "ü") || !strings.HasPrefix(lines[4], "r") {
		t.Fatalf("unexpected table:\n%s", buf.String())
	}
	if !strings.Contains(lines[3], "yː") || !strings.Contains(lines[3], "50.0") {
		t.Fatalf("expected IPA and mean in row: %q", lines[3])
	}
}

func TestRenderPhonemeInventory(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPhonemeInventory(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"sch", "ʃ", "ŋ", "hard"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in inventory", want)
		}
	}
}
