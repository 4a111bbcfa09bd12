package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rhythmlab/tactus/internal/domain/model"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if TACTUS_CONFIG is set
//  3. env (prefix TACTUS_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("TACTUS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: TACTUS_ADDR, TACTUS_SAMPLE_RATE, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("TACTUS_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "tactus_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample_rate must be positive", ErrInvalidConfig)
	}
	if c.FuseTolerance < 0 {
		return fmt.Errorf("%w: fuse_tolerance must not be negative", ErrInvalidConfig)
	}
	for name, band := range map[string]BandConfig{
		"kick":  c.FrequencyBands.Kick,
		"snare": c.FrequencyBands.Snare,
		"hihat": c.FrequencyBands.Hihat,
	} {
		if band.Min < 0 || band.Max <= band.Min {
			return fmt.Errorf("%w: %s band bounds out of order", ErrInvalidConfig, name)
		}
	}
	if len(c.Difficulty) == 0 {
		return fmt.Errorf("%w: at least one difficulty is required", ErrInvalidConfig)
	}
	for name, d := range c.Difficulty {
		if d.MinInterval < 0 || d.NoteDensity < 0 {
			return fmt.Errorf("%w: difficulty %s has negative tuning", ErrInvalidConfig, name)
		}
	}
	for instrument, hand := range c.Mapping {
		if !model.NoteType(hand).Valid() {
			return fmt.Errorf("%w: mapping %s -> %q is not a hand", ErrInvalidConfig, instrument, hand)
		}
	}
	return nil
}
