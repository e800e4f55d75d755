// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/sprech/internal/validity"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Score ScoreConfig `toml:"score"`
	Drill DrillConfig `toml:"drill"`
	Stats StatsConfig `toml:"stats"`
}

// ScoreConfig maps scoring-related settings.
type ScoreConfig struct {
	MinAudioBytes        *int64   `toml:"min-audio-bytes"`
	MinAudioBytesPerWord *int64   `toml:"min-audio-bytes-per-word"`
	FastWordCount        *int     `toml:"fast-word-count"`
	FastSpan             *float64 `toml:"fast-span"`
	MinAvgWordSpan       *float64 `toml:"min-avg-word-span"`
	Jobs                 *int     `toml:"jobs"`
	Save                 *bool    `toml:"save"`
}

// DrillConfig maps drill-related settings.
type DrillConfig struct {
	Words      *int     `toml:"words"`
	WeakTop    *int     `toml:"weak-top"`
	WeakFactor *float64 `toml:"weak-factor"`
	WeakWindow *int     `toml:"weak-window"`
	Wordlist   *string  `toml:"wordlist"`
}

// StatsConfig maps stats-related settings.
type StatsConfig struct {
	CurveWindow *int `toml:"curve-window"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Limits applies the score section on top of base.
func (c ScoreConfig) Limits(base validity.Limits) validity.Limits {
	if c.MinAudioBytes != nil {
		base.MinAudioBytes = *c.MinAudioBytes
	}
	if c.MinAudioBytesPerWord != nil {
		base.MinAudioBytesPerWord = *c.MinAudioBytesPerWord
	}
	if c.FastWordCount != nil {
		base.FastWordCount = *c.FastWordCount
	}
	if c.FastSpan != nil {
		base.FastSpan = *c.FastSpan
	}
	if c.MinAvgWordSpan != nil {
		base.MinAvgWordSpan = *c.MinAvgWordSpan
	}
	return base
}
