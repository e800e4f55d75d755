// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Series represents a named score series for plotting. Values are on the
// 0-100 score scale.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight = 8
	minPlotWidth      = 10
	fallbackTermWidth = 80
	axisSeparator     = " ┤"
	colorReset        = "\x1b[0m"
	scoreMax          = 100.0
)

var axisLabels = []int{100, 50, 0}

var seriesColors = []string{
	"\x1b[36m", // cyan
	"\x1b[33m", // yellow
	"\x1b[35m", // magenta
	"\x1b[32m", // green
}

// Braille dot bits indexed by [column][row] within a 2x4 cell.
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// canvas is a braille grid; each cell holds 2x4 dots.
type canvas struct {
	width, height int
	dots          [][]uint8
	owner         [][]int
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, height: height}
	c.dots = make([][]uint8, height)
	c.owner = make([][]int, height)
	for y := range c.dots {
		c.dots[y] = make([]uint8, width)
		c.owner[y] = make([]int, width)
		for x := range c.owner[y] {
			c.owner[y][x] = -1
		}
	}
	return c
}

func (c *canvas) set(px, py, series int) {
	x, y := px/2, py/4
	if px < 0 || py < 0 || x >= c.width || y >= c.height {
		return
	}
	c.dots[y][x] |= brailleBits[px%2][py%4]
	if c.owner[y][x] < 0 {
		c.owner[y][x] = series
	}
}

// line draws between two dot coordinates with Bresenham's algorithm.
func (c *canvas) line(x0, y0, x1, y1, series int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0, series)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *canvas) plot(values []float64, series int) {
	rows := c.height * 4
	prevX, prevY := -1, -1
	for i, v := range values {
		px := i * 2
		py := scoreToDot(v, rows)
		if prevX >= 0 {
			c.line(prevX, prevY, px, py, series)
		} else {
			c.set(px, py, series)
		}
		prevX, prevY = px, py
	}
}

func scoreToDot(v float64, rows int) int {
	v = math.Max(0, math.Min(scoreMax, v))
	return int(math.Round((1 - v/scoreMax) * float64(rows-1)))
}

// PlotSeries renders series on a fixed 0-100 braille chart.
func PlotSeries(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	kept := series[:0:0]
	for _, s := range series {
		if len(s.Values) > 0 {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	width = max(width, minPlotWidth)

	c := newCanvas(width, height)
	for i, s := range kept {
		c.plot(resample(s.Values, width), i)
	}

	useColor := shouldUseColor(w, forceColor)
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	labelWidth := len("100")
	for y := 0; y < height; y++ {
		var b strings.Builder
		b.WriteString(runewidth.FillLeft(rowLabel(y, height), labelWidth))
		b.WriteString(axisSeparator)
		for x := 0; x < width; x++ {
			ch := rune(0x2800 + int(c.dots[y][x]))
			if owner := c.owner[y][x]; useColor && owner >= 0 {
				b.WriteString(seriesColors[owner%len(seriesColors)])
				b.WriteRune(ch)
				b.WriteString(colorReset)
				continue
			}
			b.WriteRune(ch)
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	legend := make([]string, 0, len(kept))
	for i, s := range kept {
		last := s.Values[len(s.Values)-1]
		label := fmt.Sprintf("%s (last %.1f)", s.Name, last)
		if useColor {
			label = seriesColors[i%len(seriesColors)] + label + colorReset
		}
		legend = append(legend, label)
	}
	_, err := fmt.Fprintf(w, "%s\n\n", strings.Join(legend, "  "))
	return err
}

// rowLabel returns the axis label for the cell row covering a label value.
func rowLabel(y, height int) string {
	for _, value := range axisLabels {
		if scoreToDot(float64(value), height*4)/4 == y {
			return fmt.Sprint(value)
		}
	}
	return ""
}

// resample stretches or averages values to one point per column.
func resample(values []float64, width int) []float64 {
	n := len(values)
	out := make([]float64, width)
	switch {
	case n == 1:
		for i := range out {
			out[i] = values[0]
		}
	case n > width:
		for i := range out {
			start := i * n / width
			end := max((i+1)*n/width, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	default:
		for i := range out {
			pos := float64(i) * float64(n-1) / float64(max(width-1, 1))
			idx := int(pos)
			if idx >= n-1 {
				out[i] = values[n-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	return max(totalWidth-len("100")-runewidth.StringWidth(axisSeparator), minPlotWidth)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackTermWidth
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
