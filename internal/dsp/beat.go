package dsp

import (
	"math"

	"github.com/rhythmlab/tactus/internal/domain/model"
)

// Tempo search bounds in beats per minute. Estimates outside the range are
// folded back in by octave doubling/halving.
const (
	minTempo     = 60.0
	maxTempo     = 200.0
	defaultTempo = 120.0
)

// EstimateTempo returns the dominant tempo of the track in BPM, found by
// autocorrelating the spectral-flux envelope over the lag range that
// corresponds to [minTempo, maxTempo].
func EstimateTempo(samples []float64, sampleRate int) float64 {
	return tempoFromEnvelope(OnsetEnvelope(samples, sampleRate), sampleRate)
}

func tempoFromEnvelope(envelope []float64, sampleRate int) float64 {
	if len(envelope) < 8 {
		return defaultTempo
	}

	framesPerSecond := float64(sampleRate) / HopSize
	minLag := int(framesPerSecond * 60.0 / maxTempo)
	maxLag := int(framesPerSecond * 60.0 / minTempo)
	if maxLag >= len(envelope) {
		maxLag = len(envelope) - 1
	}
	if minLag < 1 || minLag > maxLag {
		return defaultTempo
	}

	bestLag, bestCorr := minLag, -1.0
	for lag := minLag; lag <= maxLag; lag++ {
		var corr float64
		n := 0
		for i := 0; i+lag < len(envelope); i++ {
			corr += envelope[i] * envelope[i+lag]
			n++
		}
		if n > 0 {
			corr /= float64(n)
		}
		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}

	period := float64(bestLag) / framesPerSecond
	if period <= 0 {
		return defaultTempo
	}
	bpm := 60.0 / period
	for bpm > maxTempo {
		bpm /= 2
	}
	for bpm < minTempo {
		bpm *= 2
	}
	return math.Round(bpm*10) / 10
}

// BeatTimes lays a periodic grid over the track at the given tempo. When an
// onset envelope is supplied, the grid phase is chosen to maximize envelope
// energy at the grid points, aligning beats with actual hits instead of
// always starting at zero. Times are rounded to millisecond precision.
func BeatTimes(duration, bpm float64, envelope []float64, sampleRate int) []float64 {
	if bpm <= 0 {
		bpm = defaultTempo
	}
	period := 60.0 / bpm

	phase := 0.0
	if len(envelope) > 0 {
		phase = bestPhase(envelope, sampleRate, period)
	}

	var beats []float64
	for t := phase; t < duration; t += period {
		beats = append(beats, model.RoundMillis(t))
	}
	return beats
}

// bestPhase scans candidate offsets within one beat period and returns the
// one whose grid points land on the most envelope energy.
func bestPhase(envelope []float64, sampleRate int, period float64) float64 {
	framesPerSecond := float64(sampleRate) / HopSize
	steps := 16

	best, bestScore := 0.0, -1.0
	for s := 0; s < steps; s++ {
		phase := period * float64(s) / float64(steps)
		var score float64
		for t := phase; ; t += period {
			frame := int(math.Round(t * framesPerSecond))
			if frame >= len(envelope) {
				break
			}
			score += envelope[frame]
		}
		if score > bestScore {
			bestScore = score
			best = phase
		}
	}
	return best
}
