// Package synth generates percussion samples from scratch: sine bodies for
// drums, filtered noise for cymbals, exponential decay envelopes throughout.
// The samples back chart previews when no recorded kit is available.
package synth

import (
	"math"
	"math/rand"
)

// Deterministic noise keeps generated kits byte-stable across runs.
const noiseSeed = 1337

// Kick renders a low sine with a second harmonic and a fast decay.
func Kick(sampleRate int) []float64 {
	const (
		freq     = 60.0
		duration = 0.3
		decay    = 8.0
	)
	n := int(float64(sampleRate) * duration)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		env := math.Exp(-t * decay)
		wave := math.Sin(2 * math.Pi * freq * t)
		wave += 0.3 * math.Sin(2*math.Pi*freq*2*t) * env
		out[i] = wave * env
	}
	return normalizePeak(out, 0.8)
}

// Snare mixes white noise with a 200 Hz body tone.
func Snare(sampleRate int) []float64 {
	const (
		bodyFreq = 200.0
		duration = 0.2
		decay    = 15.0
	)
	rng := rand.New(rand.NewSource(noiseSeed))
	n := int(float64(sampleRate) * duration)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		env := math.Exp(-t * decay)
		noise := rng.NormFloat64() * 0.5
		body := math.Sin(2 * math.Pi * bodyFreq * t)
		out[i] = (noise*0.7 + body*0.3) * env
	}
	return normalizePeak(out, 0.8)
}

// Hihat is short bright noise with the fastest decay in the kit.
func Hihat(sampleRate int) []float64 {
	const (
		duration = 0.1
		decay    = 30.0
	)
	rng := rand.New(rand.NewSource(noiseSeed))
	n := int(float64(sampleRate) * duration)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		out[i] = rng.NormFloat64() * math.Exp(-t*decay)
	}
	return normalizePeak(out, 0.7)
}

// Crash is wideband noise left to ring for a full second.
func Crash(sampleRate int) []float64 {
	const (
		duration = 1.0
		decay    = 2.0
	)
	rng := rand.New(rand.NewSource(noiseSeed))
	n := int(float64(sampleRate) * duration)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		out[i] = rng.NormFloat64() * math.Exp(-t*decay)
	}
	return normalizePeak(out, 0.8)
}

// Ride layers an 800 Hz tone under the noise for a more bell-like tail.
func Ride(sampleRate int) []float64 {
	const (
		tonalFreq = 800.0
		duration  = 0.5
		decay     = 5.0
	)
	rng := rand.New(rand.NewSource(noiseSeed))
	n := int(float64(sampleRate) * duration)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		env := math.Exp(-t * decay)
		noise := rng.NormFloat64() * 0.8
		tonal := math.Sin(2*math.Pi*tonalFreq*t) * 0.2
		out[i] = (noise + tonal) * env
	}
	return normalizePeak(out, 0.7)
}

// Tom is a 150 Hz sine with a touch of second harmonic and medium sustain.
func Tom(sampleRate int) []float64 {
	const (
		pitch    = 150.0
		duration = 0.4
		decay    = 6.0
	)
	n := int(float64(sampleRate) * duration)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		wave := math.Sin(2 * math.Pi * pitch * t)
		wave += 0.2 * math.Sin(2*math.Pi*pitch*2*t)
		out[i] = wave * math.Exp(-t*decay)
	}
	return normalizePeak(out, 0.8)
}

// All returns the full kit keyed by instrument name.
func All(sampleRate int) map[string][]float64 {
	return map[string][]float64{
		"kick":  Kick(sampleRate),
		"snare": Snare(sampleRate),
		"hihat": Hihat(sampleRate),
		"crash": Crash(sampleRate),
		"ride":  Ride(sampleRate),
		"tom":   Tom(sampleRate),
	}
}

// normalizePeak scales the buffer so its absolute peak sits at target.
func normalizePeak(samples []float64, target float64) []float64 {
	var peak float64
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s))
	}
	if peak == 0 {
		return samples
	}
	scale := target / peak
	for i := range samples {
		samples[i] *= scale
	}
	return samples
}
