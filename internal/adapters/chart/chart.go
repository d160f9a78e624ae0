// Package chart renders the aggregate means and the fitted trend line
// to an image file. It is the pipeline's only output surface besides logs.
package chart

import (
	"context"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/okian/scoredist/internal/domain/model"
	"github.com/okian/scoredist/internal/domain/trend"
)

// Default rendering configuration constants.
const (
	defaultTitle  = "Mean outcome by score"
	defaultXLabel = "score"
	defaultYLabel = "mean outcome"
	defaultWidth  = 6 * vg.Inch
	defaultHeight = 4 * vg.Inch
)

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithTitle sets the chart title.
func WithTitle(title string) Option {
	return func(r *Renderer) {
		if title != "" {
			r.title = title
		}
	}
}

// WithAxisLabels sets the x and y axis labels.
func WithAxisLabels(x, y string) Option {
	return func(r *Renderer) {
		if x != "" {
			r.xLabel = x
		}
		if y != "" {
			r.yLabel = y
		}
	}
}

// WithSize sets the rendered image size.
func WithSize(width, height vg.Length) Option {
	return func(r *Renderer) {
		if width > 0 && height > 0 {
			r.width = width
			r.height = height
		}
	}
}

// Renderer draws scatter-plus-trend charts.
type Renderer struct {
	title  string
	xLabel string
	yLabel string
	width  vg.Length
	height vg.Length
}

// New creates a renderer with configuration options applied.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		title:  defaultTitle,
		xLabel: defaultXLabel,
		yLabel: defaultYLabel,
		width:  defaultWidth,
		height: defaultHeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws one point per group mean plus the fitted line spanning the
// observed score range, and saves the result to path. The output format
// follows the file extension (png, svg, pdf, ...).
func (r *Renderer) Render(ctx context.Context, groups []model.GroupMean, line trend.Line, path string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	points := make(plotter.XYs, 0, len(groups))
	for _, g := range groups {
		if g.N == 0 {
			continue
		}
		points = append(points, plotter.XY{X: float64(g.Score), Y: g.Mean})
	}
	if len(points) == 0 {
		return fmt.Errorf("render chart: no drawable points")
	}

	p := plot.New()
	p.Title.Text = r.title
	p.X.Label.Text = r.xLabel
	p.Y.Label.Text = r.yLabel

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	p.Add(scatter)

	lo, hi := points[0].X, points[0].X
	for _, pt := range points[1:] {
		if pt.X < lo {
			lo = pt.X
		}
		if pt.X > hi {
			hi = pt.X
		}
	}
	fit, err := plotter.NewLine(plotter.XYs{
		{X: lo, Y: line.At(lo)},
		{X: hi, Y: line.At(hi)},
	})
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	p.Add(fit)
	p.Legend.Add("trend", fit)

	if err := p.Save(r.width, r.height, path); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
