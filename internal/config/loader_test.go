package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/scoredist/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"SCOREDIST_CONFIG",
		"SCOREDIST_LOG_LEVEL",
		"SCOREDIST_DATASET",
		"SCOREDIST_SCORE_LOW",
		"SCOREDIST_SCORE_HIGH",
		"SCOREDIST_CHART_PATH",
		"SCOREDIST_CHART_TITLE",
		"SCOREDIST_METRICS_ENABLED",
	} {
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Dataset, convey.ShouldEqual, "act_gpa")
				convey.So(cfg.ScoreLow, convey.ShouldEqual, 16)
				convey.So(cfg.ScoreHigh, convey.ShouldEqual, 33)
				convey.So(cfg.ChartPath, convey.ShouldEqual, "gpa_by_score.png")
				convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SCOREDIST_DATASET", "act_gpa")
			_ = os.Setenv("SCOREDIST_SCORE_LOW", "10")
			_ = os.Setenv("SCOREDIST_SCORE_HIGH", "36")
			_ = os.Setenv("SCOREDIST_CHART_PATH", "out/chart.svg")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.ScoreLow, convey.ShouldEqual, 10)
				convey.So(cfg.ScoreHigh, convey.ShouldEqual, 36)
				convey.So(cfg.ChartPath, convey.ShouldEqual, "out/chart.svg")
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
log_level: "debug"
dataset: "act_gpa"
score_low: 12
score_high: 34
chart_title: "custom title"
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("SCOREDIST_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the file values should apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.ScoreLow, convey.ShouldEqual, 12)
				convey.So(cfg.ScoreHigh, convey.ShouldEqual, 34)
				convey.So(cfg.ChartTitle, convey.ShouldEqual, "custom title")
			})

			convey.Convey("And env vars should take precedence over the file", func() {
				_ = os.Setenv("SCOREDIST_SCORE_HIGH", "36")

				cfg, err := config.Load(ctx)

				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.ScoreLow, convey.ShouldEqual, 12)
				convey.So(cfg.ScoreHigh, convey.ShouldEqual, 36)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("SCOREDIST_CONFIG", "/nonexistent/scoredist.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading should fail with ErrLoadConfig", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the dataset name is blanked out", func() {
			_ = os.Setenv("SCOREDIST_DATASET", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then validation should reject the config", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the score range is inverted", func() {
			_ = os.Setenv("SCOREDIST_SCORE_LOW", "30")
			_ = os.Setenv("SCOREDIST_SCORE_HIGH", "20")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation should reject the config", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scoredist.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}
