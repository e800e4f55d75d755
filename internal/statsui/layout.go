package statsui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/sprech/internal/model"
	"github.com/verte-zerg/sprech/internal/phoneme"
)

func phonemeColumns() []table.Column {
	return []table.Column{
		{Title: "Phoneme", Width: 7},
		{Title: "IPA", Width: 4},
		{Title: "Tier", Width: 6},
		{Title: "Avg Score", Width: 9},
		{Title: "Samples", Width: 7},
		{Title: "Low", Width: 5},
		{Title: "Low %", Width: 6},
	}
}

// phonemeRows lists aggregates by sample count, most frequent first.
func phonemeRows(aggs []model.PhonemeAggregate, tbl *phoneme.Table) []table.Row {
	sorted := append([]model.PhonemeAggregate(nil), aggs...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count == sorted[j].Count {
			return sorted[i].Symbol < sorted[j].Symbol
		}
		return sorted[i].Count > sorted[j].Count
	})
	rows := make([]table.Row, 0, len(sorted))
	for _, agg := range sorted {
		entry, _ := tbl.Lookup(agg.Symbol)
		lowPct := 0.0
		if agg.Count > 0 {
			lowPct = float64(agg.Low) / float64(agg.Count) * 100
		}
		rows = append(rows, table.Row{
			agg.Symbol,
			entry.ExpectedIPA,
			string(entry.Tier),
			fmt.Sprintf("%.1f", agg.Mean()),
			fmt.Sprintf("%d", agg.Count),
			fmt.Sprintf("%d", agg.Low),
			fmt.Sprintf("%.0f%%", lowPct),
		})
	}
	return rows
}

func phonemeTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func sortedSymbols(symbols []string) []string {
	out := append([]string(nil), symbols...)
	sort.Strings(out)
	return out
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	return (n/5 + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func modalWidth(width int) int {
	return max(40, min(width-4, 80))
}

func modalInnerWidth(width int) int {
	// 2 border + 4 padding
	return max(modalWidth(width)-6, 10)
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	if w := lipgloss.Width(line); w < width {
		return line + strings.Repeat(" ", width-w)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
