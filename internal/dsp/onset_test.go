package dsp_test

import (
	"math"
	"testing"

	"github.com/rhythmlab/tactus/internal/dsp"
	. "github.com/smartystreets/goconvey/convey"
)

// clickTrack places short decaying noise bursts at the given times.
func clickTrack(times []float64, sampleRate int, seconds float64) []float64 {
	out := make([]float64, int(float64(sampleRate)*seconds))
	burst := sampleRate / 100 // 10ms
	for _, t := range times {
		start := int(t * float64(sampleRate))
		for i := 0; i < burst && start+i < len(out); i++ {
			decay := math.Exp(-8 * float64(i) / float64(burst))
			out[start+i] += decay * math.Sin(2*math.Pi*1000*float64(i)/float64(sampleRate))
		}
	}
	return out
}

func TestOnsetEnvelope(t *testing.T) {
	Convey("Given a track with two isolated clicks", t, func() {
		const sampleRate = 22050
		samples := clickTrack([]float64{0.5, 1.2}, sampleRate, 2)

		envelope := dsp.OnsetEnvelope(samples, sampleRate)

		Convey("Then the envelope is non-negative everywhere", func() {
			for _, v := range envelope {
				So(v, ShouldBeGreaterThanOrEqualTo, 0)
			}
		})

		Convey("Then flux rises near the clicks", func() {
			frame := int(0.5*sampleRate) / dsp.HopSize
			window := envelope[frame-2 : frame+4]
			var peak float64
			for _, v := range window {
				peak = math.Max(peak, v)
			}
			So(peak, ShouldBeGreaterThan, 0)
		})
	})
}

func TestDetectOnsets(t *testing.T) {
	Convey("Given a track with clicks at known times", t, func() {
		const sampleRate = 22050
		hits := []float64{0.5, 1.0, 1.5}
		samples := clickTrack(hits, sampleRate, 2)

		onsets := dsp.DetectOnsets(samples, sampleRate)

		Convey("Then an onset lands near each click", func() {
			So(len(onsets), ShouldBeGreaterThanOrEqualTo, len(hits))
			for _, want := range hits {
				closest := math.Inf(1)
				for _, got := range onsets {
					closest = math.Min(closest, math.Abs(got-want))
				}
				So(closest, ShouldBeLessThan, 0.08)
			}
		})

		Convey("Then onsets are sorted ascending", func() {
			for i := 1; i < len(onsets); i++ {
				So(onsets[i], ShouldBeGreaterThan, onsets[i-1])
			}
		})
	})

	Convey("Given pure silence", t, func() {
		onsets := dsp.DetectOnsets(make([]float64, 22050), 22050)

		Convey("Then no onsets are detected", func() {
			So(onsets, ShouldBeEmpty)
		})
	})
}
