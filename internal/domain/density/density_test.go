package density_test

import (
	"fmt"
	"testing"

	"github.com/rhythmlab/tactus/internal/domain/density"
	"github.com/rhythmlab/tactus/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestApply(t *testing.T) {
	Convey("Given three notes of varying velocity", t, func() {
		notes := []model.Note{
			{Time: 0, Type: model.NoteBoth, Velocity: 0.9},
			{Time: 1, Type: model.NoteLeft, Velocity: 0.2},
			{Time: 2, Type: model.NoteRight, Velocity: 0.7},
		}

		Convey("When filtering to two thirds density", func() {
			got := density.Apply(notes, 2.0/3.0)

			Convey("Then the two loudest notes survive in time order", func() {
				So(got, ShouldHaveLength, 2)
				So(got[0].Time, ShouldEqual, 0)
				So(got[0].Velocity, ShouldEqual, 0.9)
				So(got[1].Time, ShouldEqual, 2)
				So(got[1].Velocity, ShouldEqual, 0.7)
			})
		})

		Convey("When the density is 1.0 or above", func() {
			Convey("Then the input is returned unchanged", func() {
				So(density.Apply(notes, 1.0), ShouldResemble, notes)
				So(density.Apply(notes, 1.5), ShouldResemble, notes)
			})
		})

		Convey("When the density would keep less than one note", func() {
			got := density.Apply(notes, 0.01)

			Convey("Then at least one note is kept", func() {
				So(got, ShouldHaveLength, 1)
				So(got[0].Velocity, ShouldEqual, 0.9)
			})
		})
	})

	Convey("Given notes with tied velocities", t, func() {
		notes := []model.Note{
			{Time: 0, Type: model.NoteLeft, Velocity: 0.5},
			{Time: 1, Type: model.NoteRight, Velocity: 0.5},
			{Time: 2, Type: model.NoteBoth, Velocity: 0.5},
			{Time: 3, Type: model.NoteLeft, Velocity: 0.4},
		}

		Convey("When filtering to half density", func() {
			got := density.Apply(notes, 0.5)

			Convey("Then ties break toward the earlier note", func() {
				So(got, ShouldHaveLength, 2)
				So(got[0].Time, ShouldEqual, 0)
				So(got[1].Time, ShouldEqual, 1)
			})
		})
	})

	Convey("Given a larger sequence", t, func() {
		var notes []model.Note
		for i := 0; i < 10; i++ {
			notes = append(notes, model.Note{
				Time:     float64(i),
				Type:     model.NoteLeft,
				Velocity: float64(i) / 10,
			})
		}

		Convey("When filtering at various densities", func() {
			for _, d := range []float64{0.1, 0.3, 0.55, 0.99} {
				got := density.Apply(notes, d)

				Convey(fmt.Sprintf("Then the cardinality matches max(1, floor(n*d)) for d=%.2f", d), func() {
					want := int(float64(len(notes)) * d)
					if want < 1 {
						want = 1
					}
					So(got, ShouldHaveLength, want)
				})

				Convey(fmt.Sprintf("Then the output remains time-ascending for d=%.2f", d), func() {
					for i := 1; i < len(got); i++ {
						So(got[i].Time, ShouldBeGreaterThan, got[i-1].Time)
					}
				})
			}
		})
	})

	Convey("Given an empty note sequence", t, func() {
		Convey("Then filtering yields an empty sequence", func() {
			So(density.Apply(nil, 0.5), ShouldBeEmpty)
		})
	})
}
