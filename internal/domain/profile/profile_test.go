package profile_test

import (
	"testing"

	"github.com/rhythmlab/tactus/internal/domain/profile"
	. "github.com/smartystreets/goconvey/convey"
)

func TestProfile(t *testing.T) {
	Convey("Given a tiny spectrogram with one bin per band", t, func() {
		// Bin layout: 50 Hz (kick), 500 Hz (snare), 8000 Hz (hihat), 20 kHz (none).
		freqs := []float64{50, 500, 8000, 20000}
		magnitude := [][]float64{
			{1.0, 2.0, 3.0, 9.0}, // frame 0
			{4.0, 5.0, 6.0, 9.0}, // frame 1
		}
		// sampleRate/hopSize of 1000/500 puts frame boundaries every 0.5s.
		p := profile.New(
			profile.WithSampleRate(1000),
			profile.WithHopSize(500),
		)

		Convey("When profiling a time in the first frame", func() {
			events := p.Profile(magnitude, freqs, []float64{0.0})

			Convey("Then each band sums only its masked bins", func() {
				So(events, ShouldHaveLength, 1)
				So(events[0].KickEnergy, ShouldEqual, 1.0)
				So(events[0].SnareEnergy, ShouldEqual, 2.0)
				So(events[0].HihatEnergy, ShouldEqual, 3.0)
			})

			Convey("Then normalized fields stay zero until Normalize runs", func() {
				So(events[0].KickNorm, ShouldEqual, 0)
				So(events[0].SnareNorm, ShouldEqual, 0)
				So(events[0].HihatNorm, ShouldEqual, 0)
			})
		})

		Convey("When a time maps past the final frame", func() {
			events := p.Profile(magnitude, freqs, []float64{10.0})

			Convey("Then the last frame is reused", func() {
				So(events[0].KickEnergy, ShouldEqual, 4.0)
				So(events[0].SnareEnergy, ShouldEqual, 5.0)
				So(events[0].HihatEnergy, ShouldEqual, 6.0)
			})
		})

		Convey("When the time set is empty", func() {
			Convey("Then the event set is empty, not an error", func() {
				So(p.Profile(magnitude, freqs, nil), ShouldBeEmpty)
			})
		})

		Convey("When custom bands exclude every bin", func() {
			narrow := profile.New(
				profile.WithSampleRate(1000),
				profile.WithHopSize(500),
				profile.WithBands(profile.Bands{
					Kick:  profile.Band{MinHz: 1, MaxHz: 2},
					Snare: profile.Band{MinHz: 3, MaxHz: 4},
					Hihat: profile.Band{MinHz: 5, MaxHz: 6},
				}),
			)
			events := narrow.Profile(magnitude, freqs, []float64{0.0})

			Convey("Then all energies are zero", func() {
				So(events[0].KickEnergy, ShouldEqual, 0)
				So(events[0].SnareEnergy, ShouldEqual, 0)
				So(events[0].HihatEnergy, ShouldEqual, 0)
			})
		})

		Convey("When band bounds sit exactly on a bin frequency", func() {
			edge := profile.New(
				profile.WithSampleRate(1000),
				profile.WithHopSize(500),
				profile.WithBands(profile.Bands{
					Kick:  profile.Band{MinHz: 50, MaxHz: 50},
					Snare: profile.Band{MinHz: 500, MaxHz: 500},
					Hihat: profile.Band{MinHz: 8000, MaxHz: 8000},
				}),
			)
			events := edge.Profile(magnitude, freqs, []float64{0.0})

			Convey("Then bounds are inclusive", func() {
				So(events[0].KickEnergy, ShouldEqual, 1.0)
				So(events[0].SnareEnergy, ShouldEqual, 2.0)
				So(events[0].HihatEnergy, ShouldEqual, 3.0)
			})
		})
	})
}
