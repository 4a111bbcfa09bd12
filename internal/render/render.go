// Package render turns a chart into an audible preview by overlaying
// synthesized drum hits on a silent (or background) track.
package render

import (
	"math"

	"github.com/rhythmlab/tactus/internal/domain/model"
)

// velocityFloorDB is the gain applied to a zero-velocity hit; velocity 1.0
// plays the sample at unity.
const velocityFloorDB = -12.0

// targetPeakDBFS is where the final mix peak lands after soft normalization.
const targetPeakDBFS = -1.0

// Renderer overlays kit samples at note times and normalizes the result.
type Renderer struct {
	sampleRate int
	instrument map[model.NoteType]string
}

// New builds a renderer with the given options applied over defaults.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		sampleRate: defaultSampleRate,
		instrument: defaultInstruments(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Chart renders the chart's notes over an optional background track. The
// output is at least duration seconds long, extended when the background or
// a late sample tail runs past it.
func (r *Renderer) Chart(chart model.Chart, duration float64, kit map[string][]float64, background []float64) []float64 {
	length := int(duration * float64(r.sampleRate))
	length = max(length, len(background))
	for _, note := range chart.Notes {
		if sample, ok := r.sampleFor(note, kit); ok {
			length = max(length, int(note.Time*float64(r.sampleRate))+len(sample))
		}
	}

	mix := make([]float64, length)
	copy(mix, background)

	for _, note := range chart.Notes {
		sample, ok := r.sampleFor(note, kit)
		if !ok {
			continue
		}
		gain := velocityGain(note.Velocity)
		start := int(note.Time * float64(r.sampleRate))
		if start < 0 {
			start = 0
		}
		for i, s := range sample {
			if start+i >= len(mix) {
				break
			}
			mix[start+i] += s * gain
		}
	}

	return normalize(mix)
}

func (r *Renderer) sampleFor(note model.Note, kit map[string][]float64) ([]float64, bool) {
	name, ok := r.instrument[note.Type]
	if !ok {
		return nil, false
	}
	sample, ok := kit[name]
	return sample, ok && len(sample) > 0
}

// velocityGain maps velocity 0..1 onto velocityFloorDB..0 dB, linear scale.
func velocityGain(velocity float64) float64 {
	v := math.Max(0, math.Min(1, velocity))
	db := velocityFloorDB * (1 - v)
	return math.Pow(10, db/20)
}

// normalize scales the mix so its peak sits at targetPeakDBFS.
func normalize(mix []float64) []float64 {
	var peak float64
	for _, s := range mix {
		peak = math.Max(peak, math.Abs(s))
	}
	if peak == 0 {
		return mix
	}
	scale := math.Pow(10, targetPeakDBFS/20) / peak
	for i := range mix {
		mix[i] *= scale
	}
	return mix
}
