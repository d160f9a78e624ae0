package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if SCOREDIST_CONFIG is set
//  3. env (prefix SCOREDIST_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SCOREDIST_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SCOREDIST_DATASET, SCOREDIST_SCORE_LOW, ...
	// Map env keys like SCOREDIST_SCORE_LOW -> score_low (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SCOREDIST_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "scoredist_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Dataset == "" {
		return fmt.Errorf("%w: dataset must not be empty", ErrInvalidConfig)
	}
	if cfg.ScoreHigh < cfg.ScoreLow {
		return fmt.Errorf("%w: score range [%d, %d] is empty",
			ErrInvalidConfig, cfg.ScoreLow, cfg.ScoreHigh)
	}
	return nil
}
