// Package main provides the CLI entrypoint for sprech.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/sprech/internal/config"
	"github.com/verte-zerg/sprech/internal/model"
	"github.com/verte-zerg/sprech/internal/reference"
	"github.com/verte-zerg/sprech/internal/scoring"
	"github.com/verte-zerg/sprech/internal/stats"
	"github.com/verte-zerg/sprech/internal/store"
	"github.com/verte-zerg/sprech/internal/transcript"
	"github.com/verte-zerg/sprech/internal/tui"
	"github.com/verte-zerg/sprech/internal/validity"
)

const (
	defaultJobs        = 4
	defaultDrillWords  = 30
	defaultWeakTop     = 3
	defaultWeakFactor  = 2.0
	defaultWeakWindow  = 20
	defaultCurveWindow = 10
)

var (
	scoreText       string
	scoreAudioBytes int64
	scoreExpect     string
	scoreJSON       bool
	scoreSave       bool
	scoreLabel      string
	scoreTUI        bool
	scoreJobs       int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sprech [files...]",
		Short: "German pronunciation scoring from transcripts",
		Long: "Score German speech transcripts. Input is a JSON request " +
			"({transcript, wordTimings, audioByteLength} or {text, words}) or plain text, " +
			"read from files or stdin.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runScoreCmd,
	}

	rootCmd.Flags().StringVar(&scoreText, "text", "", "score this transcript instead of reading input")
	rootCmd.Flags().Int64Var(&scoreAudioBytes, "audio-bytes", 0, "audio byte length for every input")
	rootCmd.Flags().StringVar(&scoreExpect, "expect", "", "reference text to compare the transcript with")
	rootCmd.Flags().BoolVar(&scoreJSON, "json", false, "print results as JSON")
	rootCmd.Flags().BoolVar(&scoreSave, "save", false, "store results in the attempt history")
	rootCmd.Flags().StringVar(&scoreLabel, "label", "", "label for saved attempts")
	rootCmd.Flags().BoolVar(&scoreTUI, "tui", false, "open the interactive result viewer")
	rootCmd.Flags().IntVar(&scoreJobs, "jobs", defaultJobs, "concurrent scoring workers (0 = unlimited)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPhonemesCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newDrillCmd())

	return rootCmd
}

// input is one transcript source and its decoded request.
type input struct {
	name string
	req  model.Request
}

// scoreOutput is the JSON shape printed when a reference text is given.
type scoreOutput struct {
	Result    model.SessionResult `json:"result"`
	Reference *reference.Report   `json:"reference,omitempty"`
}

func runScoreCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "jobs", &scoreJobs, fileCfg.Score.Jobs)
	applyBoolConfig(cmd, "save", &scoreSave, fileCfg.Score.Save)
	if scoreJobs < 0 {
		return fmt.Errorf("--jobs must be >= 0")
	}
	if scoreJSON && scoreTUI {
		return fmt.Errorf("--json and --tui are mutually exclusive")
	}

	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("audio-bytes") {
		if scoreAudioBytes < 0 {
			return fmt.Errorf("--audio-bytes must be >= 0")
		}
		for i := range inputs {
			size := scoreAudioBytes
			inputs[i].req.AudioByteLength = &size
		}
	}

	engine := scoring.New(scoring.WithLimits(fileCfg.Score.Limits(validity.DefaultLimits())))
	reqs := make([]model.Request, len(inputs))
	for i, in := range inputs {
		reqs[i] = in.req
	}
	results, err := engine.ScoreAll(cmd.Context(), reqs, scoreJobs)
	if err != nil {
		if errors.Is(err, scoring.ErrMalformedTiming) {
			return fmt.Errorf("invalid input: %w", err)
		}
		return fmt.Errorf("failed to score: %w", err)
	}

	if scoreSave {
		if err := saveAttempts(cmd.Context(), inputs, results); err != nil {
			return err
		}
	}

	var comparer *reference.Comparer
	if strings.TrimSpace(scoreExpect) != "" {
		comparer = reference.New()
	}

	switch {
	case scoreTUI:
		entries := make([]tui.Entry, len(inputs))
		for i, in := range inputs {
			entries[i] = tui.Entry{Name: in.name, Result: results[i], Verdict: engine.Check(in.req)}
		}
		if err := tui.Run(entries); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		return nil
	case scoreJSON:
		return writeJSON(cmd.OutOrStdout(), inputs, results, comparer)
	}

	out := cmd.OutOrStdout()
	for i, in := range inputs {
		if len(inputs) > 1 {
			if _, err := fmt.Fprintf(out, "== %s ==\n", in.name); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		if verdict := engine.Check(in.req); !verdict.Valid {
			if _, err := fmt.Fprintf(out, "%s (reason: %s)\n", scoring.RetryMessage, verdict.Reason); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		if err := stats.RenderResult(out, results[i]); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if comparer != nil {
			if err := stats.RenderComparison(out, compare(comparer, in.req)); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		if i < len(inputs)-1 {
			if _, err := fmt.Fprintln(out, ""); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}
	return nil
}

func readInputs(cmd *cobra.Command, args []string) ([]input, error) {
	if cmd.Flags().Changed("text") {
		if len(args) > 0 {
			return nil, fmt.Errorf("--text cannot be combined with input files")
		}
		return []input{{name: "text", req: model.Request{Transcript: scoreText}}}, nil
	}
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		req, err := transcript.RequestFromText(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stdin: %w", err)
		}
		return []input{{name: "stdin", req: req}}, nil
	}
	inputs := make([]input, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		req, err := transcript.RequestFromText(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		inputs = append(inputs, input{name: path, req: req})
	}
	return inputs, nil
}

func compare(c *reference.Comparer, req model.Request) reference.Report {
	// An empty transcript leaves every expected word missing.
	tokens, _ := transcript.Tokenize(req.Transcript)
	return c.Compare(scoreExpect, tokens)
}

func writeJSON(w io.Writer, inputs []input, results []model.SessionResult, comparer *reference.Comparer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, in := range inputs {
		var doc any = results[i]
		if comparer != nil {
			report := compare(comparer, in.req)
			doc = scoreOutput{Result: results[i], Reference: &report}
		}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func saveAttempts(ctx context.Context, inputs []input, results []model.SessionResult) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	for i, in := range inputs {
		if len(results[i].Words) == 0 {
			logErrf("skipping %s: nothing scored\n", in.name)
			continue
		}
		label := scoreLabel
		if label == "" && in.name != "stdin" && in.name != "text" {
			label = in.name
		}
		id, err := st.InsertAttempt(ctx, model.Attempt{
			Label:      label,
			Transcript: transcript.Normalize(in.req.Transcript),
			Result:     results[i],
		})
		if err != nil {
			return fmt.Errorf("failed to save attempt: %w", err)
		}
		logErrf("saved attempt %s\n", id[:8])
	}
	return nil
}
