package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/sprech/internal/model"
	"github.com/verte-zerg/sprech/internal/reference"
)

// RenderResult prints a scored session as a word table followed by the
// breakdown and suggestions.
func RenderResult(w io.Writer, res model.SessionResult) error {
	if _, err := fmt.Fprintf(w, "Overall: %d\n", res.Overall); err != nil {
		return err
	}
	if len(res.Words) > 0 {
		headers := []string{"Word", "Score", "Difficulty", "Phonemes", "Feedback"}
		rows := make([][]string, 0, len(res.Words))
		for _, word := range res.Words {
			rows = append(rows, []string{
				word.Word,
				fmt.Sprintf("%d", word.Score),
				string(word.Difficulty),
				phonemeSummary(word.PhonemeScores),
				word.Feedback,
			})
		}
		if err := writeLines(w, formatTable(headers, rows, align{1: true})); err != nil {
			return err
		}
	}
	b := res.Breakdown
	if _, err := fmt.Fprintf(w, "Vowels %d  Consonants %d  Rhythm %d  Stress %d\n",
		b.VowelAccuracy, b.ConsonantAccuracy, b.Rhythm, b.Stress); err != nil {
		return err
	}
	for _, s := range res.Suggestions {
		if _, err := fmt.Fprintf(w, "- %s\n", s); err != nil {
			return err
		}
	}
	return nil
}

func phonemeSummary(scores []model.PhonemeScore) string {
	parts := make([]string, 0, len(scores))
	for _, ps := range scores {
		parts = append(parts, fmt.Sprintf("%s/%s/ %d", ps.Symbol, ps.ActualIPA, ps.Score))
	}
	return strings.Join(parts, " ")
}

// RenderComparison prints how expected words were realized in a transcript.
func RenderComparison(w io.Writer, report reference.Report) error {
	if _, err := fmt.Fprintf(w, "Reference coverage: %.0f%%\n", report.Coverage*100); err != nil {
		return err
	}
	headers := []string{"Expected", "Spoken", "Status", "Similarity"}
	rows := make([][]string, 0, len(report.Words))
	for _, m := range report.Words {
		rows = append(rows, []string{
			m.Expected,
			m.Spoken,
			string(m.Status),
			fmt.Sprintf("%.2f", m.Similarity),
		})
	}
	if len(report.Extra) > 0 {
		rows = append(rows, []string{"", strings.Join(report.Extra, " "), "extra", ""})
	}
	return writeLines(w, formatTable(headers, rows, align{3: true}))
}
