package trend_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/scoredist/internal/domain/model"
	"github.com/okian/scoredist/internal/domain/trend"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFit(t *testing.T) {
	Convey("Given aggregate points on an exact line", t, func() {
		// y = 0.5 + 0.1*x
		groups := []model.GroupMean{
			{Score: 20, Mean: 2.5, N: 3},
			{Score: 25, Mean: 3.0, N: 5},
			{Score: 30, Mean: 3.5, N: 2},
		}

		Convey("When fitting the trend line", func() {
			line, err := trend.Fit(groups)

			Convey("Then slope and intercept are recovered exactly", func() {
				So(err, ShouldBeNil)
				So(line.Beta, ShouldAlmostEqual, 0.1)
				So(line.Alpha, ShouldAlmostEqual, 0.5)
			})

			Convey("Then the line evaluates through the points", func() {
				So(err, ShouldBeNil)
				So(line.At(25), ShouldAlmostEqual, 3.0)
			})
		})
	})

	Convey("Given noisy points", t, func() {
		groups := []model.GroupMean{
			{Score: 16, Mean: 2.1, N: 4},
			{Score: 20, Mean: 2.6, N: 9},
			{Score: 24, Mean: 2.9, N: 12},
			{Score: 28, Mean: 3.6, N: 7},
			{Score: 33, Mean: 3.9, N: 2},
		}

		Convey("When fitting", func() {
			line, err := trend.Fit(groups)

			Convey("Then the slope is positive and residuals balance", func() {
				So(err, ShouldBeNil)
				So(line.Beta, ShouldBeGreaterThan, 0)
				residual := 0.0
				for _, g := range groups {
					residual += g.Mean - line.At(float64(g.Score))
				}
				So(residual, ShouldAlmostEqual, 0, 1e-9)
			})
		})
	})

	Convey("Given groups with all-missing outcomes", t, func() {
		groups := []model.GroupMean{
			{Score: 18, Mean: math.NaN(), N: 0},
			{Score: 22, Mean: 3.0, N: 4},
			{Score: 26, Mean: 3.4, N: 6},
		}

		Convey("When fitting", func() {
			line, err := trend.Fit(groups)

			Convey("Then empty groups are skipped and the fit stays finite", func() {
				So(err, ShouldBeNil)
				So(math.IsNaN(line.Beta), ShouldBeFalse)
				So(line.Beta, ShouldAlmostEqual, 0.1)
			})
		})
	})

	Convey("Given too few usable points", t, func() {
		Convey("When only one group exists", func() {
			_, err := trend.Fit([]model.GroupMean{{Score: 24, Mean: 3.0, N: 5}})

			Convey("Then the fit fails with ErrTooFewPoints", func() {
				So(errors.Is(err, trend.ErrTooFewPoints), ShouldBeTrue)
			})
		})

		Convey("When every point shares one x position", func() {
			_, err := trend.Fit([]model.GroupMean{
				{Score: 24, Mean: 3.0, N: 5},
				{Score: 24, Mean: 3.2, N: 2},
			})

			Convey("Then the line is underdetermined", func() {
				So(errors.Is(err, trend.ErrTooFewPoints), ShouldBeTrue)
			})
		})

		Convey("When no groups exist", func() {
			_, err := trend.Fit(nil)

			Convey("Then the fit fails", func() {
				So(errors.Is(err, trend.ErrTooFewPoints), ShouldBeTrue)
			})
		})
	})
}
