package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rhythmlab/tactus/internal/domain/model"
	"github.com/rhythmlab/tactus/internal/store"
	. "github.com/smartystreets/goconvey/convey"
)

func newStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestMetadataRoundTrip(t *testing.T) {
	Convey("Given a prepared song descriptor", t, func() {
		s := newStore(t)
		ctx := context.Background()
		meta := model.SongMetadata{
			SongID:       "funky",
			OriginalFile: "funky.wav",
			Duration:     60.5,
			SampleRate:   44100,
			BPM:          120,
			Samples:      2668050,
		}

		Convey("When it is saved and loaded back", func() {
			So(s.SaveMetadata(ctx, meta), ShouldBeNil)
			got, err := s.LoadMetadata(ctx, "funky")

			Convey("Then the descriptor survives intact", func() {
				So(err, ShouldBeNil)
				So(got, ShouldResemble, meta)
			})
		})

		Convey("When an unknown song is loaded", func() {
			_, err := s.LoadMetadata(ctx, "missing")

			Convey("Then ErrNotFound comes back", func() {
				So(errors.Is(err, store.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestChartRoundTrip(t *testing.T) {
	Convey("Given a generated chart", t, func() {
		s := newStore(t)
		ctx := context.Background()
		chart := model.Chart{
			SongID:     "funky",
			Difficulty: "normal",
			Notes: []model.Note{
				{Time: 0.5, Type: model.NoteBoth, Velocity: 0.9},
				{Time: 1.0, Type: model.NoteLeft, Velocity: 0.4},
			},
		}
		chart.Metadata = model.NewChartMetadata("algorithm", chart.Notes)

		Convey("When it is saved and loaded back by song and difficulty", func() {
			So(s.SaveChart(ctx, chart), ShouldBeNil)
			got, err := s.LoadChart(ctx, "funky", "normal")

			Convey("Then the chart survives intact", func() {
				So(err, ShouldBeNil)
				So(got, ShouldResemble, chart)
			})
		})

		Convey("When another difficulty is requested", func() {
			So(s.SaveChart(ctx, chart), ShouldBeNil)
			_, err := s.LoadChart(ctx, "funky", "hard")

			Convey("Then ErrNotFound comes back", func() {
				So(errors.Is(err, store.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestAnalysisRoundTrip(t *testing.T) {
	Convey("Given an analysis document", t, func() {
		s := newStore(t)
		ctx := context.Background()
		analysis := model.Analysis{
			BPM:        128.5,
			Duration:   30,
			EventCount: 1,
			Events: []model.DrumEvent{
				{Time: 0.25, KickEnergy: 3.2, KickNorm: 0.8},
			},
		}

		So(s.SaveAnalysis(ctx, "track", analysis), ShouldBeNil)
		got, err := s.LoadAnalysis(ctx, "track")

		Convey("Then the analysis survives intact", func() {
			So(err, ShouldBeNil)
			So(got, ShouldResemble, analysis)
		})
	})
}

func TestListSongs(t *testing.T) {
	Convey("Given three prepared songs", t, func() {
		s := newStore(t)
		ctx := context.Background()
		for _, id := range []string{"charlie", "alpha", "bravo"} {
			So(s.SaveMetadata(ctx, model.SongMetadata{SongID: id}), ShouldBeNil)
		}

		songs, err := s.ListSongs(ctx)

		Convey("Then all songs come back sorted by id", func() {
			So(err, ShouldBeNil)
			So(songs, ShouldHaveLength, 3)
			So(songs[0].SongID, ShouldEqual, "alpha")
			So(songs[1].SongID, ShouldEqual, "bravo")
			So(songs[2].SongID, ShouldEqual, "charlie")
		})
	})

	Convey("Given an empty store", t, func() {
		songs, err := newStore(t).ListSongs(context.Background())

		Convey("Then the listing is empty without error", func() {
			So(err, ShouldBeNil)
			So(songs, ShouldBeEmpty)
		})
	})
}

func TestSongIDValidation(t *testing.T) {
	Convey("Given identifiers that could escape the layout", t, func() {
		s := newStore(t)
		ctx := context.Background()

		for _, id := range []string{"", "../evil", "a/b", `a\b`} {
			err := s.SaveMetadata(ctx, model.SongMetadata{SongID: id})
			So(errors.Is(err, store.ErrBadSongID), ShouldBeTrue)
		}
	})
}

func TestArtifactPaths(t *testing.T) {
	Convey("Given a store", t, func() {
		s := newStore(t)

		Convey("Then artifact paths are distinct per kind", func() {
			So(s.AudioPath("x"), ShouldNotEqual, s.SamplePath("x"))
			So(s.PreviewPath("x", "easy"), ShouldNotEqual, s.PreviewPath("x", "hard"))
			So(s.AudioPath("x"), ShouldEndWith, "x.wav")
		})
	})
}
