package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/sprech/internal/model"
)

// Score bands used for colouring words and phonemes.
const (
	goodScore = 80
	fairScore = 60
)

// cell is one rendered unit of the transcript line: a word or the space
// between two words.
type cell struct {
	s       string
	width   int
	isSpace bool
}

func styleForScore(score int) lipgloss.Style {
	switch {
	case score >= goodScore:
		return goodStyle
	case score >= fairScore:
		return fairStyle
	default:
		return poorStyle
	}
}

func buildCells(words []model.WordScore, selected int) []cell {
	out := make([]cell, 0, len(words)*2)
	for i, w := range words {
		if i > 0 {
			out = append(out, cell{s: " ", width: 1, isSpace: true})
		}
		style := styleForScore(w.Score)
		if i == selected {
			style = style.Underline(true).Bold(true)
		}
		out = append(out, cell{
			s:     style.Render(w.Word),
			width: runewidth.StringWidth(w.Word),
		})
	}
	return out
}

func renderCells(cells []cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(c.s)
	}
	return b.String()
}

// wrapCells breaks the line at spaces so that no line exceeds width. A word
// wider than width gets a line of its own.
func wrapCells(cells []cell, width int) string {
	if width <= 0 {
		return renderCells(cells)
	}
	var lines []string
	var line []cell
	lineWidth := 0
	for _, c := range cells {
		if c.isSpace {
			if lineWidth+c.width > width {
				lines = append(lines, renderCells(line))
				line, lineWidth = nil, 0
				continue
			}
			if len(line) == 0 {
				continue
			}
		} else if lineWidth+c.width > width && len(line) > 0 {
			// Drop the trailing space before breaking.
			if line[len(line)-1].isSpace {
				line = line[:len(line)-1]
			}
			lines = append(lines, renderCells(line))
			line, lineWidth = nil, 0
		}
		line = append(line, c)
		lineWidth += c.width
	}
	if len(line) > 0 {
		lines = append(lines, renderCells(line))
	}
	return strings.Join(lines, "\n")
}
