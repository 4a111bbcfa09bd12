// Package profile measures per-band spectral energy at candidate hit times
// and normalizes the resulting event set.
package profile

import (
	"math"

	"github.com/rhythmlab/tactus/internal/domain/model"
)

// Band is an inclusive frequency range in Hz.
type Band struct {
	MinHz float64
	MaxHz float64
}

// Bands holds the frequency bounds for the three drum categories.
type Bands struct {
	Kick  Band
	Snare Band
	Hihat Band
}

// DefaultBands returns the stock band layout: kick in the low end, snare in
// the low mids, hihat in the highs.
func DefaultBands() Bands {
	return Bands{
		Kick:  Band{MinHz: 20, MaxHz: 150},
		Snare: Band{MinHz: 150, MaxHz: 2000},
		Hihat: Band{MinHz: 5000, MaxHz: 12000},
	}
}

// Profiler extracts raw band energies from a magnitude spectrogram.
type Profiler struct {
	bands      Bands
	sampleRate int
	hopSize    int
}

// New creates a Profiler with default bands and frame geometry unless
// overridden.
func New(opts ...Option) *Profiler {
	p := &Profiler{
		bands:      DefaultBands(),
		sampleRate: defaultSampleRate,
		hopSize:    defaultHopSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Profile computes one DrumEvent per input time. magnitude is frame-major
// (frames x bins) and freqs is the center frequency of each bin. A time that
// maps past the final frame reuses the last frame rather than failing; an
// empty time set yields an empty event set. Only raw energies are filled in;
// Normalize populates the normalized fields.
func (p *Profiler) Profile(magnitude [][]float64, freqs []float64, times []float64) []model.DrumEvent {
	if len(times) == 0 || len(magnitude) == 0 {
		return nil
	}

	kickMask := bandMask(freqs, p.bands.Kick)
	snareMask := bandMask(freqs, p.bands.Snare)
	hihatMask := bandMask(freqs, p.bands.Hihat)

	events := make([]model.DrumEvent, 0, len(times))
	for _, t := range times {
		frame := p.frameIndex(t, len(magnitude))
		events = append(events, model.DrumEvent{
			Time:        t,
			KickEnergy:  maskedSum(magnitude[frame], kickMask),
			SnareEnergy: maskedSum(magnitude[frame], snareMask),
			HihatEnergy: maskedSum(magnitude[frame], hihatMask),
		})
	}
	return events
}

// frameIndex maps a time in seconds to the nearest spectrogram frame,
// clamped to the valid range. Clamping to the last frame for times at or
// after track end is the deliberate boundary policy.
func (p *Profiler) frameIndex(t float64, numFrames int) int {
	frame := int(math.Round(t * float64(p.sampleRate) / float64(p.hopSize)))
	if frame < 0 {
		frame = 0
	}
	if frame >= numFrames {
		frame = numFrames - 1
	}
	return frame
}

func bandMask(freqs []float64, b Band) []bool {
	mask := make([]bool, len(freqs))
	for i, f := range freqs {
		mask[i] = f >= b.MinHz && f <= b.MaxHz
	}
	return mask
}

func maskedSum(row []float64, mask []bool) float64 {
	var sum float64
	for i, m := range mask {
		if m && i < len(row) {
			sum += row[i]
		}
	}
	return sum
}
