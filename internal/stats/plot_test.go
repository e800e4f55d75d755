package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Test Plot", []Series{
		{Name: "A", Values: []float64{10, 40, 90, 60, 30}},
		{Name: "B", Values: []float64{50, 50, 55, 70, 100}},
	}, 12, 4, false)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "Test Plot" {
		t.Fatalf("expected title first, got %q", lines[0])
	}
	if len(lines) != 1+4+1 {
		t.Fatalf("expected 6 lines, got %d: %q", len(lines), lines)
	}
	if !strings.HasPrefix(lines[1], "100"+axisSeparator) {
		t.Fatalf("expected top axis label, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[4], "  0"+axisSeparator) {
		t.Fatalf("expected bottom axis label, got %q", lines[4])
	}
	if !strings.Contains(lines[5], "A (last 30.0)") || !strings.Contains(lines[5], "B (last 100.0)") {
		t.Fatalf("unexpected legend: %q", lines[5])
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("unexpected color codes without force")
	}
}

func TestPlotSeriesSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "Empty", []Series{{Name: "A"}}, 10, 4, false); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestScoreToDotClamps(t *testing.T) {
	if got := scoreToDot(150, 16); got != 0 {
		t.Fatalf("expected top row, got %d", got)
	}
	if got := scoreToDot(-5, 16); got != 15 {
		t.Fatalf("expected bottom row, got %d", got)
	}
}

func TestResample(t *testing.T) {
	got := resample([]float64{0, 100}, 3)
	if len(got) != 3 || got[0] != 0 || got[1] != 50 || got[2] != 100 {
		t.Fatalf("unexpected stretch: %v", got)
	}
	got = resample([]float64{10, 20, 30, 40}, 2)
	if got[0] != 15 || got[1] != 35 {
		t.Fatalf("unexpected average: %v", got)
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 80-3-2 {
		t.Fatalf("expected width 75, got %d", got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}
