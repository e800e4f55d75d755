// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/sprech/internal/model"
	"github.com/verte-zerg/sprech/internal/phoneme"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline on the 0-100 score scale.
func Sparkline(values []float64) string {
	var b strings.Builder
	for _, v := range values {
		v = math.Max(0, math.Min(scoreMax, v))
		idx := int(math.Round(v / scoreMax * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// OverallSeries returns the overall score of each attempt in order.
func OverallSeries(attempts []model.AttemptAggregate) []float64 {
	out := make([]float64, len(attempts))
	for i, a := range attempts {
		out[i] = float64(a.Overall)
	}
	return out
}

// RenderSummary prints a summary of stored attempts.
func RenderSummary(w io.Writer, attempts []model.AttemptAggregate) error {
	if len(attempts) == 0 {
		_, err := fmt.Fprintln(w, "No attempts found.")
		return err
	}
	var total float64
	best := 0
	words := 0
	for _, a := range attempts {
		total += float64(a.Overall)
		best = max(best, a.Overall)
		words += a.Words
	}
	latest := attempts[len(attempts)-1]
	lines := []string{
		"Summary",
		fmt.Sprintf("Attempts: %d", len(attempts)),
		fmt.Sprintf("Words scored: %d", words),
		fmt.Sprintf("Avg overall: %.1f", total/float64(len(attempts))),
		fmt.Sprintf("Best overall: %d", best),
		fmt.Sprintf("Latest: %d (%s)", latest.Overall, latest.ScoredAt.Local().Format("2006-01-02 15:04")),
		fmt.Sprintf("Trend: [%s]", Sparkline(OverallSeries(attempts))),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints the learning curve of overall scores.
func RenderCurves(w io.Writer, attempts []model.AttemptAggregate, window, totalWidth, height int, useColor bool) error {
	if len(attempts) == 0 {
		return nil
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	overall := OverallSeries(attempts)
	return PlotSeries(w, "Learning Curve", []Series{
		{Name: "Overall", Values: overall},
		{Name: fmt.Sprintf("Avg(%d)", window), Values: MovingAverage(overall, window)},
	}, width, height, useColor)
}

// RenderPhonemeTable prints per-phoneme aggregates, weakest first.
func RenderPhonemeTable(w io.Writer, aggs []model.PhonemeAggregate, table *phoneme.Table) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No phoneme stats found.")
		return err
	}
	if table == nil {
		table = phoneme.Default()
	}
	sorted := make([]model.PhonemeAggregate, len(aggs))
	copy(sorted, aggs)
	sort.Slice(sorted, func(i, j int) bool {
		mi, mj := sorted[i].Mean(), sorted[j].Mean()
		if mi == mj {
			return sorted[i].Symbol < sorted[j].Symbol
		}
		return mi < mj
	})

	if _, err := fmt.Fprintln(w, "Per-Phoneme (Windowed)"); err != nil {
		return err
	}
	headers := []string{"Phoneme", "IPA", "Tier", "Avg Score", "Samples", "Low"}
	rows := make([][]string, 0, len(sorted))
	for _, agg := range sorted {
		entry, _ := table.Lookup(agg.Symbol)
		rows = append(rows, []string{
			agg.Symbol,
			entry.ExpectedIPA,
			string(entry.Tier),
			fmt.Sprintf("%.1f", agg.Mean()),
			fmt.Sprintf("%d", agg.Count),
			fmt.Sprintf("%d", agg.Low),
		})
	}
	return writeLines(w, formatTable(headers, rows, align{3: true, 4: true, 5: true}))
}

// RenderPhonemeCurves prints per-phoneme learning curves. Attempts without
// samples of a phoneme carry the previous value forward.
func RenderPhonemeCurves(w io.Writer, attempts []model.AttemptAggregate, perAttempt map[string]map[string]model.PhonemeAggregate, symbols []string, window, totalWidth, height int, useColor bool) error {
	if len(symbols) == 0 || len(attempts) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Per-Phoneme Curves"); err != nil {
		return err
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	for _, symbol := range symbols {
		series := PhonemeSeries(attempts, perAttempt, symbol)
		if len(series) == 0 {
			continue
		}
		if err := PlotSeries(w, fmt.Sprintf("Phoneme %s", symbol), []Series{
			{Name: symbol, Values: MovingAverage(series, window)},
		}, width, height, useColor); err != nil {
			return err
		}
	}
	return nil
}

// PhonemeSeries returns the mean score of a phoneme per attempt, starting at
// the first attempt that contains it.
func PhonemeSeries(attempts []model.AttemptAggregate, perAttempt map[string]map[string]model.PhonemeAggregate, symbol string) []float64 {
	var out []float64
	for _, a := range attempts {
		agg, ok := perAttempt[a.AttemptID][symbol]
		switch {
		case ok && agg.Count > 0:
			out = append(out, agg.Mean())
		case len(out) > 0:
			out = append(out, out[len(out)-1])
		}
	}
	return out
}

// RenderPhonemeInventory prints the recognized phonemes and their difficulty data.
func RenderPhonemeInventory(w io.Writer, table *phoneme.Table) error {
	if table == nil {
		table = phoneme.Default()
	}
	headers := []string{"Phoneme", "IPA", "Tier", "Common mistakes", "Notes"}
	var rows [][]string
	for _, p := range table.All() {
		rows = append(rows, []string{
			p.Symbol,
			p.ExpectedIPA,
			string(p.Tier),
			strings.Join(p.CommonMistakeIPAs, ", "),
			p.Description,
		})
	}
	return writeLines(w, formatTable(headers, rows, nil))
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
