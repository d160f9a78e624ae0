// Package trend fits an ordinary-least-squares line to aggregate points.
package trend

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/scoredist/internal/domain/model"
)

// ErrTooFewPoints marks an input that cannot determine a line.
var ErrTooFewPoints = errors.New("too few points for a trend line")

// Line is a fitted y = Alpha + Beta*x trend.
type Line struct {
	Alpha float64 // intercept
	Beta  float64 // slope
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Alpha + l.Beta*x
}

// Fit computes the unweighted least-squares line through the group means.
// Groups with a zero count (all-missing outcomes) are skipped. At least
// two distinct x positions are required.
func Fit(groups []model.GroupMean) (Line, error) {
	xs := make([]float64, 0, len(groups))
	ys := make([]float64, 0, len(groups))
	for _, g := range groups {
		if g.N == 0 {
			continue
		}
		xs = append(xs, float64(g.Score))
		ys = append(ys, g.Mean)
	}
	if len(xs) < 2 || allEqual(xs) {
		return Line{}, fmt.Errorf("%w: %d usable points", ErrTooFewPoints, len(xs))
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return Line{Alpha: alpha, Beta: beta}, nil
}

func allEqual(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}
