package model_test

import (
	"math"
	"testing"

	"github.com/okian/scoredist/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecord_HasOutcome(t *testing.T) {
	Convey("Given dataset records", t, func() {
		Convey("When the outcome is present", func() {
			r := model.Record{SubjectID: "s-1", Score: 24, Outcome: 3.2}

			Convey("Then HasOutcome should be true", func() {
				So(r.HasOutcome(), ShouldBeTrue)
			})
		})

		Convey("When the outcome is missing", func() {
			r := model.Record{SubjectID: "s-2", Score: 19, Outcome: math.NaN()}

			Convey("Then HasOutcome should be false", func() {
				So(r.HasOutcome(), ShouldBeFalse)
			})
		})

		Convey("When the outcome is zero", func() {
			r := model.Record{SubjectID: "s-3", Score: 18, Outcome: 0}

			Convey("Then zero still counts as present", func() {
				So(r.HasOutcome(), ShouldBeTrue)
			})
		})
	})
}
