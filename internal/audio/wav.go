// Package audio loads and writes WAV files as mono float64 sample slices,
// resampling on load so every downstream stage sees one fixed rate.
package audio

import (
	"fmt"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// resampleQuality trades CPU for fidelity; 4 is beep's recommended default.
const resampleQuality = 4

// Load reads a WAV file, averages its channels down to mono and resamples to
// targetRate when the file uses a different rate.
func Load(path string, targetRate int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: open %s: %w", path, err)
	}
	defer f.Close()

	stream, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}
	defer stream.Close()

	var streamer beep.Streamer = stream
	if int(format.SampleRate) != targetRate {
		streamer = beep.Resample(resampleQuality, format.SampleRate, beep.SampleRate(targetRate), stream)
	}

	samples := drainMono(streamer)
	if len(samples) == 0 {
		return nil, fmt.Errorf("audio: %s: %w", path, ErrNoSamples)
	}
	return samples, nil
}

// Save writes mono samples as a 16-bit stereo WAV file, duplicating the
// channel so the output plays everywhere.
func Save(path string, samples []float64, sampleRate int) error {
	if len(samples) == 0 {
		return fmt.Errorf("audio: save %s: %w", path, ErrNoSamples)
	}

	buf := make([][2]float64, len(samples))
	for i, s := range samples {
		buf[i][0] = s
		buf[i][1] = s
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audio: create %s: %w", path, err)
	}
	defer f.Close()

	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 2,
		Precision:   2,
	}
	if err := wav.Encode(f, &sliceStreamer{buf: buf}, format); err != nil {
		return fmt.Errorf("audio: encode %s: %w", path, err)
	}
	return nil
}

// Duration returns the playback length of a sample slice in seconds.
func Duration(samples []float64, sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return float64(len(samples)) / float64(sampleRate)
}

func drainMono(streamer beep.Streamer) []float64 {
	var out []float64
	buf := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(buf)
		for _, frame := range buf[:n] {
			out = append(out, (frame[0]+frame[1])/2)
		}
		if !ok {
			return out
		}
	}
}

// sliceStreamer streams a fixed stereo buffer once.
type sliceStreamer struct {
	buf [][2]float64
	pos int
}

func (s *sliceStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	n = copy(samples, s.buf[s.pos:])
	s.pos += n
	return n, true
}

func (s *sliceStreamer) Err() error {
	return nil
}
