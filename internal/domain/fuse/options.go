package fuse

// Default fusion configuration constants.
const (
	defaultTolerance = 0.1 // seconds
)

// Option applies a configuration option to the fuser.
type Option func(*timeBaseFuser)

// WithTolerance sets the window, in seconds, within which a beat time is
// considered covered by an existing onset. Zero reduces fusion to a pure
// set union with exact-duplicate removal.
func WithTolerance(seconds float64) Option {
	return func(f *timeBaseFuser) {
		if seconds >= 0 {
			f.tolerance = seconds
		}
	}
}
