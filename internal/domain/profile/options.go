package profile

// Default frame geometry, matching the analyzer's spectrogram settings.
const (
	defaultSampleRate = 44100
	defaultHopSize    = 512
)

// Option applies a configuration option to the Profiler.
type Option func(*Profiler)

// WithBands sets the frequency bounds per drum category.
func WithBands(b Bands) Option {
	return func(p *Profiler) {
		p.bands = b
	}
}

// WithSampleRate sets the sample rate used for time-to-frame mapping.
func WithSampleRate(sr int) Option {
	return func(p *Profiler) {
		if sr > 0 {
			p.sampleRate = sr
		}
	}
}

// WithHopSize sets the hop size used for time-to-frame mapping.
func WithHopSize(hop int) Option {
	return func(p *Profiler) {
		if hop > 0 {
			p.hopSize = hop
		}
	}
}
