// Package density reduces a note sequence to a target fraction while
// biasing retention toward the loudest hits.
package density

import (
	"math"
	"slices"

	"github.com/rhythmlab/tactus/internal/domain/model"
)

// Apply keeps the top targetDensity fraction of notes by velocity and
// returns them in chronological order. A density of 1.0 or more returns the
// input unchanged; anything lower keeps at least one note. Ties in velocity
// preserve the original relative order, so earlier notes win.
func Apply(notes []model.Note, targetDensity float64) []model.Note {
	if targetDensity >= 1.0 || len(notes) == 0 {
		return notes
	}

	targetCount := int(math.Floor(float64(len(notes)) * targetDensity))
	if targetCount < 1 {
		targetCount = 1
	}

	ranked := make([]model.Note, len(notes))
	copy(ranked, notes)
	slices.SortStableFunc(ranked, func(a, b model.Note) int {
		switch {
		case a.Velocity > b.Velocity:
			return -1
		case a.Velocity < b.Velocity:
			return 1
		}
		return 0
	})

	kept := ranked[:targetCount]
	slices.SortFunc(kept, func(a, b model.Note) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
	return kept
}
