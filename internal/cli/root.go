// Package cli wires the command surface of the tactus tool.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	service "github.com/rhythmlab/tactus/internal/app"
	"github.com/rhythmlab/tactus/internal/config"
	"github.com/rhythmlab/tactus/internal/domain/classify"
	"github.com/rhythmlab/tactus/internal/domain/model"
	"github.com/rhythmlab/tactus/internal/domain/profile"
	"github.com/rhythmlab/tactus/internal/store"
	"github.com/rhythmlab/tactus/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "tactus",
	Short: "Derive rhythm-game drum charts from audio tracks",
	Long: `tactus analyzes music tracks and derives timed percussion charts:
prepare normalizes the audio, analyze finds candidate hits, chart turns
them into per-difficulty note sequences, render makes them audible.`,
	SilenceUsage: true,
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// buildService assembles the pipeline service from the loaded config.
func buildService(ctx context.Context) (*service.Service, *config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return nil, nil, err
	}

	st, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}

	svc := service.New(st,
		service.WithSampleRate(cfg.SampleRate),
		service.WithFuseTolerance(cfg.FuseTolerance),
		service.WithBands(bandsFromConfig(cfg.FrequencyBands)),
		service.WithDifficulties(cfg.Difficulty),
		service.WithMapping(mappingFromConfig(cfg.Mapping)),
	)
	return svc, cfg, nil
}

func bandsFromConfig(bc config.BandsConfig) profile.Bands {
	return profile.Bands{
		Kick:  profile.Band{MinHz: bc.Kick.Min, MaxHz: bc.Kick.Max},
		Snare: profile.Band{MinHz: bc.Snare.Min, MaxHz: bc.Snare.Max},
		Hihat: profile.Band{MinHz: bc.Hihat.Min, MaxHz: bc.Hihat.Max},
	}
}

func mappingFromConfig(m map[string]string) classify.Mapping {
	mapping := classify.DefaultMapping()
	if hand, ok := m["kick"]; ok {
		mapping.Kick = model.NoteType(hand)
	}
	if hand, ok := m["snare"]; ok {
		mapping.Snare = model.NoteType(hand)
	}
	if hand, ok := m["hihat"]; ok {
		mapping.Hihat = model.NoteType(hand)
	}
	return mapping
}
