package profile

import "github.com/rhythmlab/tactus/internal/domain/model"

// Normalize rescales each band's energy series to [0,1] using the per-band
// maximum across the whole event set, substituting 1.0 when a band is silent
// for the entire track. The pass is track-global: results depend on the full
// set and must be recomputed whenever the set changes. Events are mutated in
// place and the same slice is returned.
func Normalize(events []model.DrumEvent) []model.DrumEvent {
	if len(events) == 0 {
		return events
	}

	maxKick, maxSnare, maxHihat := 0.0, 0.0, 0.0
	for _, e := range events {
		maxKick = max(maxKick, e.KickEnergy)
		maxSnare = max(maxSnare, e.SnareEnergy)
		maxHihat = max(maxHihat, e.HihatEnergy)
	}
	// Guard division by zero on silent or constant input.
	if maxKick == 0 {
		maxKick = 1
	}
	if maxSnare == 0 {
		maxSnare = 1
	}
	if maxHihat == 0 {
		maxHihat = 1
	}

	for i := range events {
		events[i].KickNorm = events[i].KickEnergy / maxKick
		events[i].SnareNorm = events[i].SnareEnergy / maxSnare
		events[i].HihatNorm = events[i].HihatEnergy / maxHihat
	}
	return events
}
