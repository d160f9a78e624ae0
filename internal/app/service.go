// Package service runs the analysis pipeline: load dataset, build the
// probability table, join it back onto the records, aggregate the outcome
// by score, fit a trend line, and render the chart.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/scoredist/internal/adapters/chart"
	"github.com/okian/scoredist/internal/domain/dataset"
	"github.com/okian/scoredist/internal/domain/distribution"
	"github.com/okian/scoredist/internal/domain/model"
	"github.com/okian/scoredist/internal/domain/relation"
	"github.com/okian/scoredist/internal/domain/trend"
	"github.com/okian/scoredist/pkg/logger"
	"github.com/okian/scoredist/pkg/metrics"
)

// Renderer abstracts the chart surface so tests can swap it out.
type Renderer interface {
	Render(ctx context.Context, groups []model.GroupMean, line trend.Line, path string) error
}

// Report is the immutable result of one pipeline run.
type Report struct {
	RunID     string
	Dataset   string
	Records   []model.Record
	Table     distribution.Table
	Joined    []relation.JoinedRow
	Groups    []model.GroupMean
	Line      trend.Line
	ChartPath string // empty when rendering was disabled
}

// Service wires the pipeline stages together.
type Service struct {
	mu sync.RWMutex

	// Collaborators
	provider dataset.Provider
	renderer Renderer

	// Configuration
	datasetName    string
	scoreLow       int
	scoreHigh      int
	chartPath      string
	chartTitle     string
	metricsEnabled bool

	// Last completed run, served by Lookup and Stats.
	report *Report

	// Logging
	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithProvider sets the dataset provider.
func WithProvider(p dataset.Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.provider = p
		}
	}
}

// WithRenderer sets the chart renderer.
func WithRenderer(r Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithDatasetName sets the packaged dataset to analyze.
func WithDatasetName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.datasetName = name
		}
	}
}

// WithScoreRange sets the score domain the bin edges must cover.
func WithScoreRange(lo, hi int) Option {
	return func(s *Service) {
		s.scoreLow = lo
		s.scoreHigh = hi
	}
}

// WithChartPath sets where the chart is written. Empty disables rendering.
func WithChartPath(path string) Option {
	return func(s *Service) {
		s.chartPath = path
	}
}

// WithChartTitle sets the rendered chart title.
func WithChartTitle(title string) Option {
	return func(s *Service) {
		if title != "" {
			s.chartTitle = title
		}
	}
}

// WithMetricsEnabled toggles pipeline instrumentation.
func WithMetricsEnabled(enabled bool) Option {
	return func(s *Service) {
		s.metricsEnabled = enabled
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		provider:       dataset.NewEmbedded(),
		datasetName:    "act_gpa",
		scoreLow:       16,
		scoreHigh:      33,
		chartPath:      "gpa_by_score.png",
		chartTitle:     "Mean GPA by ACT score",
		metricsEnabled: true,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.renderer == nil {
		s.renderer = chart.New(chart.WithTitle(s.chartTitle))
	}
	if s.log == nil {
		_ = logger.Init()
		s.log = logger.Get()
	}

	return s
}

// Run executes the pipeline once and returns its report. The stages are
// pure transformations; any stage error aborts the run.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	runID := uuid.NewString()
	log := s.log.With(logger.String("run_id", runID), logger.String("dataset", s.datasetName))

	if s.metricsEnabled {
		metrics.RecordRunStarted()
	}
	log.Info(ctx, "pipeline run starting")

	records, err := s.loadStage(ctx, log)
	if err != nil {
		return nil, s.fail(metrics.StageLoad, err)
	}

	table, err := s.binStage(ctx, log, records)
	if err != nil {
		return nil, s.fail(metrics.StageBin, err)
	}

	joined := s.joinStage(ctx, log, records, table)
	groups := s.aggregateStage(ctx, log, joined)

	line, err := s.fitStage(ctx, log, groups)
	if err != nil {
		return nil, s.fail(metrics.StageFit, err)
	}

	chartPath := ""
	if s.chartPath != "" {
		if err := s.renderStage(ctx, log, groups, line); err != nil {
			return nil, s.fail(metrics.StageRender, err)
		}
		chartPath = s.chartPath
	}

	report := &Report{
		RunID:     runID,
		Dataset:   s.datasetName,
		Records:   records,
		Table:     table,
		Joined:    joined,
		Groups:    groups,
		Line:      line,
		ChartPath: chartPath,
	}

	s.mu.Lock()
	s.report = report
	s.mu.Unlock()

	log.Info(ctx, "pipeline run finished",
		logger.Int("rows", len(records)),
		logger.Int("bins", len(table)),
		logger.Int("groups", len(groups)),
		logger.Float64("slope", line.Beta),
	)
	return report, nil
}

// Lookup returns the display percentage and percentile for score from the
// most recent run. A score outside the table is a miss, not an error.
func (s *Service) Lookup(score int) (distribution.Summary, bool) {
	s.mu.RLock()
	report := s.report
	s.mu.RUnlock()

	if report == nil {
		return distribution.Summary{}, false
	}
	summary, ok := report.Table.Lookup(score)
	if s.metricsEnabled {
		metrics.RecordLookup(ok)
	}
	return summary, ok
}

// GetStats returns pipeline statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"dataset":   s.datasetName,
		"scoreLow":  s.scoreLow,
		"scoreHigh": s.scoreHigh,
		"hasReport": s.report != nil,
	}
	if s.report != nil {
		stats["rows"] = len(s.report.Records)
		stats["bins"] = len(s.report.Table)
		stats["groups"] = len(s.report.Groups)
		stats["coverage"] = s.report.Table.TotalProbability()
	}
	return stats
}

func (s *Service) fail(stage string, err error) error {
	if s.metricsEnabled {
		metrics.RecordRunFailure(stage)
	}
	return err
}

func (s *Service) loadStage(ctx context.Context, log logger.Logger) ([]model.Record, error) {
	start := time.Now()
	records, err := s.provider.Load(ctx, s.datasetName)
	if err != nil {
		return nil, fmt.Errorf("load stage: %w", err)
	}
	s.observeStage(metrics.StageLoad, start)
	if s.metricsEnabled {
		metrics.UpdateDatasetRows(len(records))
	}
	log.Debug(ctx, "dataset loaded", logger.Int("rows", len(records)))
	return records, nil
}

func (s *Service) binStage(ctx context.Context, log logger.Logger, records []model.Record) (distribution.Table, error) {
	start := time.Now()
	edges, err := distribution.UnitEdges(s.scoreLow, s.scoreHigh)
	if err != nil {
		return nil, fmt.Errorf("bin stage: %w", err)
	}

	scores := make([]int, len(records))
	for i, rec := range records {
		scores[i] = rec.Score
	}
	table, err := distribution.Build(scores, edges)
	if err != nil {
		return nil, fmt.Errorf("bin stage: %w", err)
	}
	s.observeStage(metrics.StageBin, start)
	if s.metricsEnabled {
		metrics.RecordValuesBinned(len(scores))
		metrics.UpdateTableBins(len(table))
	}
	log.Debug(ctx, "probability table built",
		logger.Int("bins", len(table)),
		logger.Float64("coverage", table.TotalProbability()),
	)
	return table, nil
}

func (s *Service) joinStage(ctx context.Context, log logger.Logger, records []model.Record, table distribution.Table) []relation.JoinedRow {
	start := time.Now()
	joined := relation.LeftJoin(records, table)
	s.observeStage(metrics.StageJoin, start)
	log.Debug(ctx, "table joined onto records", logger.Int("rows", len(joined)))
	return joined
}

func (s *Service) aggregateStage(ctx context.Context, log logger.Logger, joined []relation.JoinedRow) []model.GroupMean {
	start := time.Now()
	groups := relation.MeanByScore(joined)
	s.observeStage(metrics.StageAggregate, start)
	if s.metricsEnabled {
		metrics.UpdateAggregateGroups(len(groups))
	}
	log.Debug(ctx, "outcome aggregated", logger.Int("groups", len(groups)))
	return groups
}

func (s *Service) fitStage(ctx context.Context, log logger.Logger, groups []model.GroupMean) (trend.Line, error) {
	start := time.Now()
	line, err := trend.Fit(groups)
	if err != nil {
		return trend.Line{}, fmt.Errorf("fit stage: %w", err)
	}
	s.observeStage(metrics.StageFit, start)
	log.Debug(ctx, "trend line fitted",
		logger.Float64("intercept", line.Alpha),
		logger.Float64("slope", line.Beta),
	)
	return line, nil
}

func (s *Service) renderStage(ctx context.Context, log logger.Logger, groups []model.GroupMean, line trend.Line) error {
	start := time.Now()
	if err := s.renderer.Render(ctx, groups, line, s.chartPath); err != nil {
		return fmt.Errorf("render stage: %w", err)
	}
	s.observeStage(metrics.StageRender, start)
	log.Info(ctx, "chart rendered", logger.String("path", s.chartPath))
	return nil
}

func (s *Service) observeStage(stage string, start time.Time) {
	if s.metricsEnabled {
		metrics.RecordStageDuration(stage, time.Since(start).Seconds())
	}
}
