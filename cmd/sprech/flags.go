package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/sprech/internal/validity"
)

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	limits := validity.DefaultLimits()
	return fmt.Sprintf(`# sprech configuration
# Uncomment a value to enable it. CLI flags override config values.

[score]
# min-audio-bytes = %d            # Minimum audio length in bytes
# min-audio-bytes-per-word = %d    # Minimum audio bytes per spoken word
# fast-word-count = %d              # Words allowed inside fast-span
# fast-span = %.2f                 # Seconds; more words than fast-word-count is too fast
# min-avg-word-span = %.2f         # Minimum average seconds per word
# jobs = %d                         # Concurrent scoring workers (0 = unlimited)
# save = false                      # Store every scored attempt

[drill]
# words = %d                       # Words per drill text
# weak-top = %d                     # Number of weak phonemes to focus on
# weak-factor = %.1f                # Weight factor for weak phonemes
# weak-window = %d                 # Number of recent attempts to compute weak phonemes
# wordlist = "/path/to/words.txt"   # One word per line

[stats]
# curve-window = %d                # Moving average window
`,
		limits.MinAudioBytes,
		limits.MinAudioBytesPerWord,
		limits.FastWordCount,
		limits.FastSpan,
		limits.MinAvgWordSpan,
		defaultJobs,
		defaultDrillWords,
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
		defaultCurveWindow,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
