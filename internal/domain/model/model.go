// Package model contains the domain types passed between pipeline stages.
package model

import "math"

// NoteType is the hand assignment of a generated note.
type NoteType string

// Hand assignments recognized by the game client.
const (
	NoteLeft  NoteType = "left"
	NoteRight NoteType = "right"
	NoteBoth  NoteType = "both"
)

// Valid reports whether t is one of the recognized hand assignments.
func (t NoteType) Valid() bool {
	switch t {
	case NoteLeft, NoteRight, NoteBoth:
		return true
	}
	return false
}

// DrumEvent is the per-band spectral energy measured at one candidate hit
// time. Raw energies are absolute magnitudes; the *Norm fields are only
// meaningful after a full-track normalization pass.
type DrumEvent struct {
	Time        float64 `json:"time"`
	KickEnergy  float64 `json:"kick_energy"`
	SnareEnergy float64 `json:"snare_energy"`
	HihatEnergy float64 `json:"hihat_energy"`
	KickNorm    float64 `json:"kick_energy_norm"`
	SnareNorm   float64 `json:"snare_energy_norm"`
	HihatNorm   float64 `json:"hihat_energy_norm"`
}

// Note is a single playable hit in a chart.
type Note struct {
	Time     float64  `json:"time"`
	Type     NoteType `json:"type"`
	Velocity float64  `json:"velocity"`
}

// ChartMetadata summarizes a finished note sequence.
type ChartMetadata struct {
	GeneratedBy     string  `json:"generatedBy"`
	NoteCount       int     `json:"noteCount"`
	LeftCount       int     `json:"leftCount"`
	RightCount      int     `json:"rightCount"`
	BothCount       int     `json:"bothCount"`
	AverageInterval float64 `json:"averageInterval"`
}

// Chart is the terminal artifact of a generation run. It is persisted as-is
// and never mutated in place; regeneration produces a new Chart.
type Chart struct {
	SongID     string        `json:"songId"`
	Difficulty string        `json:"difficulty"`
	Notes      []Note        `json:"notes"`
	Metadata   ChartMetadata `json:"metadata"`
}

// Analysis is the persisted result of one beat/energy analysis run.
type Analysis struct {
	BPM        float64     `json:"bpm"`
	Duration   float64     `json:"duration"`
	EventCount int         `json:"eventCount"`
	Events     []DrumEvent `json:"events"`
}

// SongMetadata describes a prepared track.
type SongMetadata struct {
	SongID       string  `json:"songId"`
	OriginalFile string  `json:"originalFile"`
	Duration     float64 `json:"duration"`
	SampleRate   int     `json:"sample_rate"`
	BPM          float64 `json:"bpm"`
	Samples      int     `json:"samples"`
}

// DifficultyConfig carries the per-difficulty tuning knobs.
type DifficultyConfig struct {
	KickThreshold  float64 `koanf:"kick_threshold" json:"kick_threshold"`
	SnareThreshold float64 `koanf:"snare_threshold" json:"snare_threshold"`
	HihatThreshold float64 `koanf:"hihat_threshold" json:"hihat_threshold"`
	MinInterval    float64 `koanf:"min_interval" json:"min_interval"`
	NoteDensity    float64 `koanf:"note_density" json:"note_density"`
}

// NewChartMetadata derives metadata from a finished note sequence. The counts
// partition the notes exactly by type; AverageInterval is the mean of
// consecutive-note deltas, 0 when fewer than two notes exist.
func NewChartMetadata(generatedBy string, notes []Note) ChartMetadata {
	m := ChartMetadata{
		GeneratedBy: generatedBy,
		NoteCount:   len(notes),
	}
	for _, n := range notes {
		switch n.Type {
		case NoteLeft:
			m.LeftCount++
		case NoteRight:
			m.RightCount++
		case NoteBoth:
			m.BothCount++
		}
	}
	if len(notes) > 1 {
		var sum float64
		for i := 1; i < len(notes); i++ {
			sum += notes[i].Time - notes[i-1].Time
		}
		m.AverageInterval = RoundMillis(sum / float64(len(notes)-1))
	}
	return m
}

// RoundMillis rounds a time in seconds to millisecond precision.
func RoundMillis(t float64) float64 {
	return math.Round(t*1000) / 1000
}
