// Package store defines the artifact store interface and errors. Artifacts
// are the JSON documents and WAV files each pipeline stage leaves behind.
package store

import (
	"context"

	"github.com/rhythmlab/tactus/internal/domain/model"
)

// Store provides read/write access to prepared songs, analyses and charts.
type Store interface {
	// SaveMetadata persists the descriptor of a prepared song.
	SaveMetadata(ctx context.Context, meta model.SongMetadata) error
	// LoadMetadata returns the descriptor for a song.
	// Returns ErrNotFound if the song was never prepared.
	LoadMetadata(ctx context.Context, songID string) (model.SongMetadata, error)

	// SaveAnalysis persists the beat/energy analysis for a song.
	SaveAnalysis(ctx context.Context, songID string, analysis model.Analysis) error
	// LoadAnalysis returns the analysis for a song.
	// Returns ErrNotFound if the song was never analyzed.
	LoadAnalysis(ctx context.Context, songID string) (model.Analysis, error)

	// SaveChart persists a generated chart keyed by song and difficulty.
	SaveChart(ctx context.Context, chart model.Chart) error
	// LoadChart returns one generated chart.
	// Returns ErrNotFound if no chart exists for the pair.
	LoadChart(ctx context.Context, songID, difficulty string) (model.Chart, error)

	// ListSongs returns the descriptors of every prepared song.
	ListSongs(ctx context.Context) ([]model.SongMetadata, error)

	// AudioPath returns where the prepared audio for a song lives.
	AudioPath(songID string) string
	// SamplePath returns where a named drum sample lives.
	SamplePath(name string) string
	// PreviewPath returns where a rendered chart preview lives.
	PreviewPath(songID, difficulty string) string
}
