// Package classify converts normalized drum events into typed notes by
// thresholding band energy with a fixed category priority.
package classify

import (
	"math"

	"github.com/rhythmlab/tactus/internal/domain/model"
)

// Thresholds holds the per-category normalized-energy cutoffs. A category
// fires only when its normalized energy is strictly above the cutoff.
type Thresholds struct {
	Kick  float64
	Snare float64
	Hihat float64
}

// Mapping assigns a hand to each drum category.
type Mapping struct {
	Kick  model.NoteType
	Snare model.NoteType
	Hihat model.NoteType
}

// DefaultMapping returns the conventional assignment: kick on both hands,
// snare on the right, hihat on the left.
func DefaultMapping() Mapping {
	return Mapping{
		Kick:  model.NoteBoth,
		Snare: model.NoteRight,
		Hihat: model.NoteLeft,
	}
}

// Classifier performs the sequential threshold scan over an event set.
type Classifier struct {
	thresholds  Thresholds
	minInterval float64
	mapping     Mapping
}

// New creates a Classifier with defaults suitable for a mid difficulty.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		thresholds:  Thresholds{Kick: defaultKickThreshold, Snare: defaultSnareThreshold, Hihat: defaultHihatThreshold},
		minInterval: defaultMinInterval,
		mapping:     DefaultMapping(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify scans time-ascending events and emits at most one note per event.
// An event closer than the minimum interval to the previously accepted one is
// skipped outright. Otherwise categories are tried in fixed priority
// kick > snare > hihat: kick is the lowest-frequency, structurally dominant
// hit and must not be masked by simultaneous snare or hihat energy. Emitted
// note times are rounded to millisecond precision while the spacing state
// keeps the full-precision time.
func (c *Classifier) Classify(events []model.DrumEvent) []model.Note {
	notes := make([]model.Note, 0, len(events))

	// Sentinel far below any real timestamp.
	lastAccepted := -999.0
	for _, e := range events {
		if e.Time-lastAccepted < c.minInterval {
			continue
		}

		var (
			noteType model.NoteType
			velocity float64
		)
		switch {
		case e.KickNorm > c.thresholds.Kick:
			noteType = c.mapping.Kick
			velocity = e.KickNorm
		case e.SnareNorm > c.thresholds.Snare:
			noteType = c.mapping.Snare
			velocity = e.SnareNorm
		case e.HihatNorm > c.thresholds.Hihat:
			noteType = c.mapping.Hihat
			velocity = e.HihatNorm
		default:
			// No category fired; the event is discarded and does not
			// advance the spacing state.
			continue
		}

		notes = append(notes, model.Note{
			Time:     model.RoundMillis(e.Time),
			Type:     noteType,
			Velocity: math.Round(velocity*100) / 100,
		})
		lastAccepted = e.Time
	}
	return notes
}
