package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/sprech/internal/config"
	"github.com/verte-zerg/sprech/internal/generator"
	"github.com/verte-zerg/sprech/internal/model"
	"github.com/verte-zerg/sprech/internal/phoneme"
	"github.com/verte-zerg/sprech/internal/stats"
	"github.com/verte-zerg/sprech/internal/statsui"
	"github.com/verte-zerg/sprech/internal/store"
	"github.com/verte-zerg/sprech/internal/wordlist"
)

var (
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPhonemes    string
	statsPlain       bool

	drillWords      int
	drillWeakTop    int
	drillWeakFactor float64
	drillWeakWindow int
	drillWordlist   string
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newPhonemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "phonemes",
		Short: "List recognized phonemes and their difficulty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := stats.RenderPhonemeInventory(cmd.OutOrStdout(), nil); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show progress over saved attempts",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N attempts")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().StringVar(&statsPhonemes, "phoneme", "", "phonemes for per-phoneme curves (e.g. \"ü,ch\")")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print text instead of opening the stats TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "curve-window", &statsCurveWindow, fileCfg.Stats.CurveWindow)
	if statsCurveWindow < 1 {
		return fmt.Errorf("--curve-window must be >= 1")
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
		Phonemes:    statsPhonemes,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain {
		return printStats(cmd, st, cfg)
	}
	if err := statsui.Run(st, cfg); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func printStats(cmd *cobra.Command, st *store.Store, cfg model.StatsConfig) error {
	ctx := cmd.Context()
	report, err := stats.BuildReport(ctx, st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	symbols := stats.TopPhonemesByFrequency(report.PhonemeAggsAll, 5)
	if cfg.Phonemes != "" {
		if symbols, err = phoneme.Default().ParseSymbols(cfg.Phonemes); err != nil {
			return fmt.Errorf("invalid --phoneme value: %w", err)
		}
	}
	perAttempt, err := st.ListPhonemeStatsForAttempts(ctx, report.AttemptIDs(), symbols)
	if err != nil {
		return fmt.Errorf("failed to load phoneme stats: %w", err)
	}

	var buf bytes.Buffer
	if err := stats.RenderSummary(&buf, report.Attempts); err != nil {
		return err
	}
	if err := stats.RenderCurves(&buf, report.Attempts, cfg.CurveWindow, 0, 0, false); err != nil {
		return err
	}
	if len(report.Attempts) > 0 {
		if err := stats.RenderPhonemeTable(&buf, report.PhonemeAggsWindow, nil); err != nil {
			return err
		}
	}
	if err := stats.RenderPhonemeCurves(&buf, report.Attempts, perAttempt, symbols, cfg.CurveWindow, 0, 0, false); err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newDrillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drill",
		Short: "Print a drill text weighted toward weak phonemes",
		Args:  cobra.NoArgs,
		RunE:  runDrillCmd,
	}
	cmd.Flags().IntVar(&drillWords, "words", defaultDrillWords, "words per drill text")
	cmd.Flags().IntVar(&drillWeakTop, "weak-top", defaultWeakTop, "number of weak phonemes to focus on")
	cmd.Flags().Float64Var(&drillWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak phonemes")
	cmd.Flags().IntVar(&drillWeakWindow, "weak-window", defaultWeakWindow, "number of recent attempts to compute weak phonemes")
	cmd.Flags().StringVar(&drillWordlist, "wordlist", "", "word list file (default: built-in list)")
	return cmd
}

func runDrillCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "words", &drillWords, fileCfg.Drill.Words)
	applyIntConfig(cmd, "weak-top", &drillWeakTop, fileCfg.Drill.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &drillWeakFactor, fileCfg.Drill.WeakFactor)
	applyIntConfig(cmd, "weak-window", &drillWeakWindow, fileCfg.Drill.WeakWindow)
	applyStringConfig(cmd, "wordlist", &drillWordlist, fileCfg.Drill.Wordlist)

	cfg := model.DrillConfig{
		Words:      drillWords,
		WeakTop:    drillWeakTop,
		WeakFactor: drillWeakFactor,
		WeakWindow: drillWeakWindow,
	}
	if err := validateDrillConfig(cfg); err != nil {
		return err
	}

	path := drillWordlist
	if path == "" {
		path = config.DefaultWordListPath()
	}
	words, err := wordlist.LoadOrDefault(path)
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}

	weak := loadWeakPhonemes(cmd.Context(), cfg)
	gen := generator.New()
	drill := gen.GenerateWeighted(words, cfg.Words, weak, cfg.WeakFactor)
	for _, line := range generator.Sentences(drill) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func loadWeakPhonemes(ctx context.Context, cfg model.DrillConfig) map[string]struct{} {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open db: %v\n", err)
		return nil
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	aggs, err := st.GetWeakPhonemes(ctx, cfg.WeakWindow)
	if err != nil {
		logErrf("failed to load weak phonemes: %v\n", err)
		return nil
	}
	weak := stats.SelectWeakPhonemes(aggs, cfg.WeakTop)
	if len(weak) == 0 {
		logErrln("no saved attempts with phoneme scores yet; using an unweighted drill")
		return nil
	}
	symbols := make([]string, 0, len(weak))
	for symbol := range weak {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	logErrf("focus: %s\n", strings.Join(symbols, ", "))
	return weak
}

func validateDrillConfig(cfg model.DrillConfig) error {
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	return nil
}
