package dsp

import "math"

// Onset picking parameters. The threshold rides on the envelope's global
// mean plus a fraction of its spread; candidate peaks closer together than
// the minimum separation collapse into the first one.
const (
	onsetThresholdSigma = 1.5
	minOnsetSeparation  = 0.05 // seconds
)

// OnsetEnvelope computes a spectral-flux novelty curve: per frame, the sum
// of positive magnitude increases across all bins.
func OnsetEnvelope(samples []float64, sampleRate int) []float64 {
	spec := ComputeSpectrogram(samples, sampleRate)
	return fluxFromSpectrogram(spec)
}

func fluxFromSpectrogram(spec *Spectrogram) []float64 {
	envelope := make([]float64, spec.NumFrames())
	var prev []float64
	for i, row := range spec.Magnitude {
		if prev != nil {
			var flux float64
			for k := range row {
				if d := row[k] - prev[k]; d > 0 {
					flux += d
				}
			}
			envelope[i] = flux
		}
		prev = row
	}
	return envelope
}

// DetectOnsets returns the start times of detected transients, sorted
// ascending. Peaks are local flux maxima above mean+sigma*std, thinned to
// the minimum separation and backtracked to the preceding local minimum so
// the reported time sits at the attack start rather than the flux peak.
func DetectOnsets(samples []float64, sampleRate int) []float64 {
	spec := ComputeSpectrogram(samples, sampleRate)
	return onsetsFromEnvelope(fluxFromSpectrogram(spec), sampleRate)
}

func onsetsFromEnvelope(envelope []float64, sampleRate int) []float64 {
	if len(envelope) < 3 {
		return nil
	}

	mean, std := meanStd(envelope)
	threshold := mean + onsetThresholdSigma*std

	minGapFrames := int(minOnsetSeparation * float64(sampleRate) / HopSize)
	if minGapFrames < 1 {
		minGapFrames = 1
	}

	var times []float64
	lastPeak := -minGapFrames - 1
	for i := 1; i < len(envelope)-1; i++ {
		if envelope[i] <= threshold {
			continue
		}
		if envelope[i] < envelope[i-1] || envelope[i] < envelope[i+1] {
			continue
		}
		if i-lastPeak <= minGapFrames {
			continue
		}
		lastPeak = i
		times = append(times, frameToTime(backtrack(envelope, i), sampleRate))
	}
	return times
}

// backtrack walks left from a peak to the preceding local minimum.
func backtrack(envelope []float64, peak int) int {
	i := peak
	for i > 0 && envelope[i-1] < envelope[i] {
		i--
	}
	return i
}

func meanStd(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))

	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(xs)))
}
