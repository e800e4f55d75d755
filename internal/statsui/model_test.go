package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/sprech/internal/model"
	"github.com/verte-zerg/sprech/internal/store"
)

func TestCurveWindowSteps(t *testing.T) {
	cases := []struct {
		in, next, prev int
	}{
		{1, 5, 1},
		{5, 10, 1},
		{7, 10, 5},
		{10, 15, 5},
	}
	for _, c := range cases {
		if got := nextCurveWindow(c.in); got != c.next {
			t.Fatalf("next(%d): expected %d, got %d", c.in, c.next, got)
		}
		if got := prevCurveWindow(c.in); got != c.prev {
			t.Fatalf("prev(%d): expected %d, got %d", c.in, c.prev, got)
		}
	}
}

func TestFitLines(t *testing.T) {
	got := fitLines("ab\ncdef\nxyz", 4, 2)
	if got != "ab  \ncdef" {
		t.Fatalf("unexpected fit %q", got)
	}
	if got := truncateLine("Settings: since=any", 10); got != "Setting..." {
		t.Fatalf("unexpected truncate %q", got)
	}
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "sprech.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestModelLoadsReport(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	for i, score := range []int{55, 65, 75} {
		_, err := st.InsertAttempt(ctx, model.Attempt{
			ScoredAt: time.Unix(int64(i)*60, 0),
			Result: model.SessionResult{
				Overall: score,
				Words: []model.WordScore{{
					Word:          "Küche",
					Score:         score,
					PhonemeScores: []model.PhonemeScore{{Symbol: "ü", Score: score}, {Symbol: "ch", Score: 90}},
				}},
			},
		})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	m := NewModel(st, model.StatsConfig{CurveWindow: 2})
	if m.errMsg != "" {
		t.Fatalf("unexpected error: %s", m.errMsg)
	}
	if len(m.report.Attempts) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(m.report.Attempts))
	}
	if len(m.selection) != 2 {
		t.Fatalf("expected default selection of 2 phonemes, got %v", m.selection)
	}
	if len(m.perAttempt) != 3 {
		t.Fatalf("expected per-attempt data for 3 attempts, got %d", len(m.perAttempt))
	}

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	view := m.View()
	if !strings.Contains(view, "Overview") || !strings.Contains(view, "Attempts") {
		t.Fatalf("expected overview content:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabPhonemeTable {
		t.Fatalf("expected phoneme table tab, got %d", m.activeTab)
	}
	if rows := m.phonemeTable.Rows(); len(rows) != 2 {
		t.Fatalf("expected 2 table rows, got %d", len(rows))
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("=")})
	if m.cfg.CurveWindow != 5 {
		t.Fatalf("expected curve window 5, got %d", m.cfg.CurveWindow)
	}
}

func TestModelCustomSelection(t *testing.T) {
	st := openStore(t)
	m := NewModel(st, model.StatsConfig{CurveWindow: 1, Phonemes: "r,ä"})
	if !m.selectionCustom || strings.Join(m.selection, ",") != "r,ä" {
		t.Fatalf("unexpected selection %v", m.selection)
	}
	if got := m.renderPhonemeCurves(80); got != "No attempts found." {
		t.Fatalf("unexpected curves content %q", got)
	}
}
