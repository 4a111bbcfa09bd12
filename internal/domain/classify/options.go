package classify

import "github.com/rhythmlab/tactus/internal/domain/model"

// Default classification constants.
const (
	defaultKickThreshold  = 0.5
	defaultSnareThreshold = 0.55
	defaultHihatThreshold = 0.6
	defaultMinInterval    = 0.25 // seconds
)

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithThresholds sets the per-category energy cutoffs.
func WithThresholds(t Thresholds) Option {
	return func(c *Classifier) {
		c.thresholds = t
	}
}

// WithMinInterval sets the global minimum spacing between accepted notes.
func WithMinInterval(seconds float64) Option {
	return func(c *Classifier) {
		if seconds >= 0 {
			c.minInterval = seconds
		}
	}
}

// WithMapping sets the category-to-hand assignment.
func WithMapping(m Mapping) Option {
	return func(c *Classifier) {
		if m.Kick.Valid() && m.Snare.Valid() && m.Hihat.Valid() {
			c.mapping = m
		}
	}
}

// FromDifficulty builds the options matching a difficulty configuration.
func FromDifficulty(d model.DifficultyConfig) []Option {
	return []Option{
		WithThresholds(Thresholds{
			Kick:  d.KickThreshold,
			Snare: d.SnareThreshold,
			Hihat: d.HihatThreshold,
		}),
		WithMinInterval(d.MinInterval),
	}
}
