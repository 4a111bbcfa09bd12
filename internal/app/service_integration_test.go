package service_test

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	service "github.com/rhythmlab/tactus/internal/app"
	"github.com/rhythmlab/tactus/internal/audio"
	"github.com/rhythmlab/tactus/internal/domain/model"
	"github.com/rhythmlab/tactus/internal/store"
	. "github.com/smartystreets/goconvey/convey"
)

const testRate = 22050

// writeClickTrack creates a WAV with decaying noise bursts on a 120 BPM grid,
// enough signal for the analysis stages to find beats and band energy.
func writeClickTrack(t *testing.T, seconds float64) string {
	t.Helper()
	samples := make([]float64, int(seconds*testRate))
	burst := testRate / 100
	for beat := 0.0; beat < seconds; beat += 0.5 {
		start := int(beat * testRate)
		for i := 0; i < burst && start+i < len(samples); i++ {
			decay := math.Exp(-8 * float64(i) / float64(burst))
			samples[start+i] += 0.8 * decay * math.Sin(2*math.Pi*1000*float64(i)/testRate)
		}
	}
	path := filepath.Join(t.TempDir(), "track.wav")
	if err := audio.Save(path, samples, testRate); err != nil {
		t.Fatalf("write click track: %v", err)
	}
	return path
}

func TestPipelineEndToEnd(t *testing.T) {
	Convey("Given a click track and a fresh store", t, func() {
		st, err := store.NewFileStore(t.TempDir())
		So(err, ShouldBeNil)
		svc := service.New(st, service.WithSampleRate(testRate))
		ctx := context.Background()
		input := writeClickTrack(t, 4)

		Convey("When the full pipeline runs", func() {
			meta, err := svc.Prepare(ctx, input, "click")
			So(err, ShouldBeNil)

			Convey("Then prepare normalizes and describes the track", func() {
				So(meta.SongID, ShouldEqual, "click")
				So(meta.SampleRate, ShouldEqual, testRate)
				So(meta.Duration, ShouldAlmostEqual, 4, 0.01)
				So(meta.BPM, ShouldBeBetweenOrEqual, 60, 200)

				_, statErr := os.Stat(st.AudioPath("click"))
				So(statErr, ShouldBeNil)
			})

			analysis, err := svc.Analyze(ctx, "click", true)
			So(err, ShouldBeNil)

			Convey("Then analysis yields normalized candidate events", func() {
				So(analysis.EventCount, ShouldEqual, len(analysis.Events))
				So(analysis.Events, ShouldNotBeEmpty)
				for _, e := range analysis.Events {
					So(e.Time, ShouldBeBetweenOrEqual, 0, analysis.Duration)
					So(e.KickNorm, ShouldBeBetweenOrEqual, 0, 1)
					So(e.SnareNorm, ShouldBeBetweenOrEqual, 0, 1)
					So(e.HihatNorm, ShouldBeBetweenOrEqual, 0, 1)
				}
			})

			charts, err := svc.GenerateAll(ctx, "click")
			So(err, ShouldBeNil)

			Convey("Then every difficulty produces a consistent chart", func() {
				So(charts, ShouldHaveLength, 3)
				for _, chart := range charts {
					So(chart.Metadata.NoteCount, ShouldEqual, len(chart.Notes))
					partition := chart.Metadata.LeftCount + chart.Metadata.RightCount + chart.Metadata.BothCount
					So(partition, ShouldEqual, chart.Metadata.NoteCount)
					for i, n := range chart.Notes {
						So(n.Type.Valid(), ShouldBeTrue)
						So(n.Velocity, ShouldBeBetweenOrEqual, 0, 1)
						if i > 0 {
							So(n.Time, ShouldBeGreaterThanOrEqualTo, chart.Notes[i-1].Time)
						}
					}
				}
			})

			So(svc.GenerateSamples(ctx), ShouldBeNil)
			out, err := svc.RenderPreview(ctx, "click", "normal", true)
			So(err, ShouldBeNil)

			Convey("Then the preview is a readable WAV", func() {
				mix, loadErr := audio.Load(out, testRate)
				So(loadErr, ShouldBeNil)
				So(len(mix), ShouldBeGreaterThanOrEqualTo, 4*testRate)
			})
		})

		Convey("When analysis is skipped", func() {
			_, err := svc.Prepare(ctx, input, "fresh")
			So(err, ShouldBeNil)

			_, chartErr := svc.GenerateAll(ctx, "fresh")

			Convey("Then chart generation aborts with no charts written", func() {
				So(chartErr, ShouldNotBeNil)
				_, loadErr := st.LoadChart(ctx, "fresh", "normal")
				So(loadErr, ShouldNotBeNil)
			})
		})
	})
}

func TestAnalyzeWithoutOnsets(t *testing.T) {
	Convey("Given a prepared click track", t, func() {
		st, err := store.NewFileStore(t.TempDir())
		So(err, ShouldBeNil)
		svc := service.New(st, service.WithSampleRate(testRate))
		ctx := context.Background()
		input := writeClickTrack(t, 4)

		_, err = svc.Prepare(ctx, input, "gridonly")
		So(err, ShouldBeNil)

		Convey("When analyzing on the beat grid alone", func() {
			analysis, err := svc.Analyze(ctx, "gridonly", false)

			Convey("Then candidates follow the periodic grid", func() {
				So(err, ShouldBeNil)
				So(analysis.Events, ShouldNotBeEmpty)
				period := 60.0 / analysis.BPM
				for i := 1; i < len(analysis.Events); i++ {
					gap := analysis.Events[i].Time - analysis.Events[i-1].Time
					So(gap, ShouldAlmostEqual, period, 0.01)
				}
			})
		})
	})
}

func TestChartRounding(t *testing.T) {
	Convey("Given an analysis with unrounded values", t, func() {
		st, err := store.NewFileStore(t.TempDir())
		So(err, ShouldBeNil)
		svc := service.New(st)
		ctx := context.Background()

		seedAnalysis(t, st, "shape", []model.DrumEvent{
			{Time: 0.123456, KickNorm: 0.876543},
		})

		chart, _, err := svc.GenerateChart(ctx, "shape", "normal")

		Convey("Then note times and velocities are rounded for persistence", func() {
			So(err, ShouldBeNil)
			So(chart.Notes, ShouldHaveLength, 1)
			So(chart.Notes[0].Time, ShouldEqual, 0.123)
			So(chart.Notes[0].Velocity, ShouldEqual, 0.88)
		})
	})
}
