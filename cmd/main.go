package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	app "github.com/okian/scoredist/internal/app"
	"github.com/okian/scoredist/internal/config"
	"github.com/okian/scoredist/pkg/logger"
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since the logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Err(err))
		_ = logger.SetLevelString("info")
	}

	// Build the pipeline with configuration options
	svc := app.New(
		app.WithLogger(log),
		app.WithDatasetName(cfg.Dataset),
		app.WithScoreRange(cfg.ScoreLow, cfg.ScoreHigh),
		app.WithChartPath(cfg.ChartPath),
		app.WithChartTitle(cfg.ChartTitle),
		app.WithMetricsEnabled(cfg.MetricsEnabled),
	)

	report, err := svc.Run(ctx)
	if err != nil {
		log.Error(ctx, "pipeline run failed", logger.Err(err))
		os.Exit(1)
	}

	for _, row := range report.Table {
		log.Info(ctx, "probability table row",
			logger.Int("score", row.Score),
			logger.Float64("probability", row.Probability),
			logger.String("percentage", row.Percentage),
			logger.String("percentile", row.Percentile),
		)
	}
	for _, g := range report.Groups {
		log.Info(ctx, "group mean",
			logger.Int("score", g.Score),
			logger.Float64("mean", g.Mean),
			logger.Int("n", g.N),
		)
	}
	log.Info(ctx, "analysis complete",
		logger.String("run_id", report.RunID),
		logger.Float64("trend_intercept", report.Line.Alpha),
		logger.Float64("trend_slope", report.Line.Beta),
		logger.String("chart", report.ChartPath),
	)
}
