// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - Loading layers defaults, an optional YAML file, and env vars.
// - External errors must be wrapped via this package's error kinds.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Dataset names the packaged dataset to analyze.
	Dataset string `koanf:"dataset"`

	// ScoreLow and ScoreHigh bound the score domain; unit-width bin
	// edges are derived from them.
	ScoreLow  int `koanf:"score_low"`
	ScoreHigh int `koanf:"score_high"`

	// ChartPath is where the rendered chart is written. Empty disables
	// rendering.
	ChartPath string `koanf:"chart_path"`

	// ChartTitle labels the rendered chart.
	ChartTitle string `koanf:"chart_title"`

	// MetricsEnabled toggles pipeline instrumentation.
	MetricsEnabled bool `koanf:"metrics_enabled"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and currently
// unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:       "info",
		Dataset:        "act_gpa",
		ScoreLow:       16,
		ScoreHigh:      33,
		ChartPath:      "gpa_by_score.png",
		ChartTitle:     "Mean GPA by ACT score",
		MetricsEnabled: true,
	}
}
