package render

import "github.com/rhythmlab/tactus/internal/domain/model"

const defaultSampleRate = 44100

// defaultInstruments inverts the standard hand mapping: kick hits land on
// both hands, snare on the right, hihat on the left.
func defaultInstruments() map[model.NoteType]string {
	return map[model.NoteType]string{
		model.NoteBoth:  "kick",
		model.NoteRight: "snare",
		model.NoteLeft:  "hihat",
	}
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSampleRate sets the output sample rate.
func WithSampleRate(rate int) Option {
	return func(r *Renderer) {
		if rate > 0 {
			r.sampleRate = rate
		}
	}
}

// WithInstruments replaces the note-type to instrument table.
func WithInstruments(instruments map[model.NoteType]string) Option {
	return func(r *Renderer) {
		if len(instruments) > 0 {
			r.instrument = instruments
		}
	}
}
