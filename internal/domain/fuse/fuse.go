// Package fuse merges the periodic beat grid and sparse onset detections
// into one deduplicated, sorted set of candidate hit times.
package fuse

import (
	"math"
	"slices"

	"github.com/rhythmlab/tactus/internal/domain/model"
)

// Fuser combines two candidate time-point sources into one time base.
type Fuser interface {
	// Fuse keeps every onset time and adds a beat time only when no onset
	// lies within the configured tolerance of it. The result is rounded to
	// millisecond precision, deduplicated, and sorted ascending.
	Fuse(beatTimes, onsetTimes []float64) []float64
}

// timeBaseFuser treats onsets as the higher-precision base set. Beat times
// survive only when onset detection missed them entirely, which still
// catches strong periodic hits with weak transients (e.g. sustained kicks).
type timeBaseFuser struct {
	tolerance float64
}

// New creates a Fuser with the default tolerance unless overridden.
func New(opts ...Option) Fuser {
	f := &timeBaseFuser{
		tolerance: defaultTolerance,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *timeBaseFuser) Fuse(beatTimes, onsetTimes []float64) []float64 {
	combined := make([]float64, 0, len(onsetTimes)+len(beatTimes))
	combined = append(combined, onsetTimes...)

	for _, bt := range beatTimes {
		covered := false
		for _, ot := range onsetTimes {
			if math.Abs(bt-ot) < f.tolerance {
				covered = true
				break
			}
		}
		if !covered {
			combined = append(combined, bt)
		}
	}

	// Millisecond precision, exact-duplicate removal, ascending order.
	seen := make(map[int64]struct{}, len(combined))
	fused := make([]float64, 0, len(combined))
	for _, t := range combined {
		key := int64(math.Round(t * 1000))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		fused = append(fused, model.RoundMillis(t))
	}
	slices.Sort(fused)
	return fused
}
