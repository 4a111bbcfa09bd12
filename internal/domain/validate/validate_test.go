package validate_test

import (
	"testing"

	"github.com/rhythmlab/tactus/internal/domain/model"
	"github.com/rhythmlab/tactus/internal/domain/validate"
	. "github.com/smartystreets/goconvey/convey"
)

func chartWith(notes ...model.Note) model.Chart {
	return model.Chart{
		SongID:     "test-song",
		Difficulty: "normal",
		Notes:      notes,
		Metadata:   model.NewChartMetadata("algorithm", notes),
	}
}

func TestChart(t *testing.T) {
	Convey("Given an empty chart", t, func() {
		issues := validate.Chart(chartWith(), 60)

		Convey("Then exactly one issue is reported", func() {
			So(issues, ShouldHaveLength, 1)
			So(issues[0].Severity, ShouldEqual, validate.SeverityWarning)
			So(issues[0].Note, ShouldEqual, -1)
		})
	})

	Convey("Given a clean chart", t, func() {
		issues := validate.Chart(chartWith(
			model.Note{Time: 0.5, Type: model.NoteBoth, Velocity: 0.9},
			model.Note{Time: 1.0, Type: model.NoteLeft, Velocity: 0.4},
			model.Note{Time: 1.6, Type: model.NoteRight, Velocity: 0.7},
		), 60)

		Convey("Then no issues are reported", func() {
			So(issues, ShouldBeEmpty)
		})
	})

	Convey("Given a chart with out-of-range values", t, func() {
		issues := validate.Chart(chartWith(
			model.Note{Time: -0.5, Type: model.NoteBoth, Velocity: 0.9},
			model.Note{Time: 61, Type: model.NoteLeft, Velocity: 1.4},
			model.Note{Time: 62, Type: model.NoteType("elbow"), Velocity: 0.5},
		), 60)

		Convey("Then every violation is accumulated, not short-circuited", func() {
			So(len(issues), ShouldBeGreaterThanOrEqualTo, 4)
		})

		Convey("Then the negative time is an error", func() {
			So(issues[0].Severity, ShouldEqual, validate.SeverityError)
			So(issues[0].Note, ShouldEqual, 0)
		})

		Convey("Then only errors remain after filtering", func() {
			for _, is := range validate.Errors(issues) {
				So(is.Severity, ShouldEqual, validate.SeverityError)
			}
		})
	})

	Convey("Given a note exactly one second past the duration", t, func() {
		issues := validate.Chart(chartWith(
			model.Note{Time: 61, Type: model.NoteBoth, Velocity: 0.5},
		), 60)

		Convey("Then at least one out-of-range issue is reported", func() {
			So(len(issues), ShouldBeGreaterThanOrEqualTo, 1)
			So(issues[0].Severity, ShouldEqual, validate.SeverityError)
		})
	})

	Convey("Given consecutive notes closer than 0.15s", t, func() {
		issues := validate.Chart(chartWith(
			model.Note{Time: 1.0, Type: model.NoteBoth, Velocity: 0.5},
			model.Note{Time: 1.1, Type: model.NoteLeft, Velocity: 0.5},
		), 60)

		Convey("Then a warning-class issue is reported", func() {
			So(issues, ShouldHaveLength, 1)
			So(issues[0].Severity, ShouldEqual, validate.SeverityWarning)
			So(issues[0].Note, ShouldEqual, 1)
		})

		Convey("Then warnings are filtered out of the error view", func() {
			So(validate.Errors(issues), ShouldBeEmpty)
		})
	})

	Convey("Given a note exactly at the audio duration", t, func() {
		issues := validate.Chart(chartWith(
			model.Note{Time: 60, Type: model.NoteBoth, Velocity: 0.5},
		), 60)

		Convey("Then the boundary is not flagged", func() {
			So(issues, ShouldBeEmpty)
		})
	})
}
