// Package stats contains statistics calculations and reporting.
package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// align marks which columns are right aligned.
type align map[int]bool

// formatTable pads cells to a common display width and underlines the header.
// IPA glyphs and umlauts are measured in terminal cells.
func formatTable(headers []string, rows [][]string, right align) []string {
	cols := len(headers)
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	if cols == 0 {
		return nil
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}

	lines := make([]string, 0, len(rows)+2)
	if len(headers) > 0 {
		lines = append(lines, joinCells(headers, widths, right))
		total := cols - 1
		for _, w := range widths {
			total += w
		}
		lines = append(lines, strings.Repeat("-", total))
	}
	for _, row := range rows {
		lines = append(lines, joinCells(row, widths, right))
	}
	return lines
}

func joinCells(row []string, widths []int, right align) string {
	cells := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if right[i] {
			cells[i] = runewidth.FillLeft(cell, w)
		} else {
			cells[i] = runewidth.FillRight(cell, w)
		}
	}
	return strings.TrimRight(strings.Join(cells, " "), " ")
}
