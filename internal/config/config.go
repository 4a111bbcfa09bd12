// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load() layers file/env.
// - External errors must be wrapped via this package's sentinel errors.
package config

import (
	"github.com/rhythmlab/tactus/internal/domain/model"
)

// BandConfig bounds one frequency band in Hz.
type BandConfig struct {
	Min float64 `koanf:"min"`
	Max float64 `koanf:"max"`
}

// BandsConfig groups the three instrument bands used by energy profiling.
type BandsConfig struct {
	Kick  BandConfig `koanf:"kick"`
	Snare BandConfig `koanf:"snare"`
	Hihat BandConfig `koanf:"hihat"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address for the serve command.
	Addr string `koanf:"addr"`

	// DataDir is the artifact store root.
	DataDir string `koanf:"data_dir"`

	// SampleRate is the rate every track is resampled to on prepare.
	SampleRate int `koanf:"sample_rate"`

	// FuseTolerance is the beat/onset coverage window in seconds.
	FuseTolerance float64 `koanf:"fuse_tolerance"`

	// FrequencyBands bound the kick/snare/hihat energy measurements.
	FrequencyBands BandsConfig `koanf:"frequency_bands"`

	// Difficulty maps difficulty names to their tuning knobs.
	Difficulty map[string]model.DifficultyConfig `koanf:"difficulty"`

	// Mapping assigns each instrument to a hand: kick/snare/hihat ->
	// left/right/both.
	Mapping map[string]string `koanf:"mapping"`
}

// New creates a Config with the stock tuning.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":9080",
		DataDir:       "data",
		SampleRate:    44100,
		FuseTolerance: 0.1,
		FrequencyBands: BandsConfig{
			Kick:  BandConfig{Min: 20, Max: 150},
			Snare: BandConfig{Min: 150, Max: 2000},
			Hihat: BandConfig{Min: 5000, Max: 12000},
		},
		Difficulty: map[string]model.DifficultyConfig{
			"easy": {
				KickThreshold:  0.6,
				SnareThreshold: 0.65,
				HihatThreshold: 0.7,
				MinInterval:    0.45,
				NoteDensity:    0.7,
			},
			"normal": {
				KickThreshold:  0.5,
				SnareThreshold: 0.55,
				HihatThreshold: 0.6,
				MinInterval:    0.25,
				NoteDensity:    1.0,
			},
			"hard": {
				KickThreshold:  0.4,
				SnareThreshold: 0.45,
				HihatThreshold: 0.5,
				MinInterval:    0.12,
				NoteDensity:    1.0,
			},
		},
		Mapping: map[string]string{
			"kick":  "both",
			"snare": "right",
			"hihat": "left",
		},
	}
}
