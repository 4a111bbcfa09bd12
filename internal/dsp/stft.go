// Package dsp implements the spectral analysis the chart pipeline consumes:
// magnitude spectrograms, onset detection, and tempo/beat estimation.
package dsp

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Frame geometry shared by every analysis pass.
const (
	FrameSize = 2048
	HopSize   = 512
)

// Spectrogram is a frame-major magnitude representation of a track.
type Spectrogram struct {
	// Magnitude holds one row per frame, FrameSize/2+1 bins each.
	Magnitude [][]float64
	// Freqs is the center frequency of each bin in Hz.
	Freqs      []float64
	SampleRate int
	HopSize    int
}

// ComputeSpectrogram runs a Hann-windowed STFT over mono samples. Short
// inputs still produce a single (zero-padded) frame so downstream clamping
// has something to clamp to.
func ComputeSpectrogram(samples []float64, sampleRate int) *Spectrogram {
	numFrames := 1 + (len(samples) / HopSize)
	win := hann(FrameSize)
	fft := fourier.NewFFT(FrameSize)

	magnitude := make([][]float64, numFrames)
	buf := make([]float64, FrameSize)
	for i := 0; i < numFrames; i++ {
		start := i * HopSize
		for k := 0; k < FrameSize; k++ {
			if start+k < len(samples) {
				buf[k] = samples[start+k] * win[k]
			} else {
				buf[k] = 0
			}
		}
		coeffs := fft.Coefficients(nil, buf)
		row := make([]float64, len(coeffs))
		for k, c := range coeffs {
			row[k] = math.Hypot(real(c), imag(c))
		}
		magnitude[i] = row
	}

	return &Spectrogram{
		Magnitude:  magnitude,
		Freqs:      FFTFrequencies(sampleRate),
		SampleRate: sampleRate,
		HopSize:    HopSize,
	}
}

// FFTFrequencies returns the bin center frequencies for the fixed frame
// size: bin k sits at k*sampleRate/FrameSize, up to Nyquist.
func FFTFrequencies(sampleRate int) []float64 {
	freqs := make([]float64, FrameSize/2+1)
	for k := range freqs {
		freqs[k] = float64(k) * float64(sampleRate) / float64(FrameSize)
	}
	return freqs
}

// NumFrames returns the number of STFT frames.
func (s *Spectrogram) NumFrames() int {
	return len(s.Magnitude)
}

func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

// frameToTime converts a frame index to seconds.
func frameToTime(frame, sampleRate int) float64 {
	return float64(frame) * HopSize / float64(sampleRate)
}
