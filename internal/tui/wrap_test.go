package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/sprech/internal/model"
)

func plainCells(words ...string) []cell {
	var out []cell
	for i, w := range words {
		if i > 0 {
			out = append(out, cell{s: " ", width: 1, isSpace: true})
		}
		out = append(out, cell{s: w, width: len([]rune(w))})
	}
	return out
}

func TestWrapCellsBreaksAtSpaces(t *testing.T) {
	got := wrapCells(plainCells("Ich", "möchte", "Brötchen"), 10)
	want := "Ich möchte\nBrötchen"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapCellsLongWord(t *testing.T) {
	got := wrapCells(plainCells("ja", "Streichholzschächtelchen", "ok"), 6)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 || lines[0] != "ja" || lines[1] != "Streichholzschächtelchen" || lines[2] != "ok" {
		t.Fatalf("unexpected wrap: %q", lines)
	}
}

func TestWrapCellsNoWidth(t *testing.T) {
	if got := wrapCells(plainCells("a", "b"), 0); got != "a b" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestBuildCellsStylesByScore(t *testing.T) {
	words := []model.WordScore{
		{Word: "gut", Score: 90},
		{Word: "naja", Score: 65},
		{Word: "schlecht", Score: 20},
	}
	cells := buildCells(words, 2)
	if len(cells) != 5 {
		t.Fatalf("expected 5 cells, got %d", len(cells))
	}
	if cells[0].s != goodStyle.Render("gut") {
		t.Fatalf("expected good style for first word")
	}
	if cells[2].s != fairStyle.Render("naja") {
		t.Fatalf("expected fair style for second word")
	}
	if cells[4].s != poorStyle.Underline(true).Bold(true).Render("schlecht") {
		t.Fatalf("expected selected poor style for third word")
	}
	if !cells[1].isSpace || cells[4].width != 8 {
		t.Fatalf("unexpected cell layout: %+v", cells)
	}
}
