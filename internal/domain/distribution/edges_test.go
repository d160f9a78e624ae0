package distribution_test

import (
	"errors"
	"testing"

	"github.com/okian/scoredist/internal/domain/distribution"
	. "github.com/smartystreets/goconvey/convey"
)

func TestUnitEdges(t *testing.T) {
	Convey("Given a score range", t, func() {
		Convey("When the range is [16, 33]", func() {
			edges, err := distribution.UnitEdges(16, 33)

			Convey("Then one more edge than scores is produced", func() {
				So(err, ShouldBeNil)
				So(len(edges), ShouldEqual, 19)
				So(edges.Bins(), ShouldEqual, 18)
				So(edges.Low(), ShouldEqual, 16)
				So(edges.High(), ShouldEqual, 33)
			})

			Convey("Then the edges validate", func() {
				So(err, ShouldBeNil)
				So(edges.Validate(), ShouldBeNil)
			})
		})

		Convey("When the range is a single score", func() {
			edges, err := distribution.UnitEdges(20, 20)

			Convey("Then a single closed bin is formed", func() {
				So(err, ShouldBeNil)
				So(edges.Bins(), ShouldEqual, 1)
				So(edges.Low(), ShouldEqual, 20)
				So(edges.High(), ShouldEqual, 20)
			})
		})

		Convey("When the range is inverted", func() {
			_, err := distribution.UnitEdges(33, 16)

			Convey("Then construction fails with ErrBadEdges", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, distribution.ErrBadEdges), ShouldBeTrue)
			})
		})
	})
}

func TestEdgesValidate(t *testing.T) {
	Convey("Given hand-built edge sets", t, func() {
		Convey("When the edges skip an integer", func() {
			err := distribution.Edges{16, 17, 19}.Validate()

			Convey("Then validation fails with ErrBadEdges", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, distribution.ErrBadEdges), ShouldBeTrue)
			})
		})

		Convey("When the edges descend", func() {
			err := distribution.Edges{18, 17}.Validate()

			Convey("Then validation fails", func() {
				So(errors.Is(err, distribution.ErrBadEdges), ShouldBeTrue)
			})
		})

		Convey("When fewer than two edges are given", func() {
			err := distribution.Edges{16}.Validate()

			Convey("Then no bin can be formed", func() {
				So(errors.Is(err, distribution.ErrBadEdges), ShouldBeTrue)
			})
		})
	})
}
