// Package service provides the core business service that implements
// the chart pipeline and the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rhythmlab/tactus/internal/audio"
	"github.com/rhythmlab/tactus/internal/domain/classify"
	"github.com/rhythmlab/tactus/internal/domain/density"
	"github.com/rhythmlab/tactus/internal/domain/fuse"
	"github.com/rhythmlab/tactus/internal/domain/model"
	"github.com/rhythmlab/tactus/internal/domain/profile"
	"github.com/rhythmlab/tactus/internal/domain/validate"
	"github.com/rhythmlab/tactus/internal/dsp"
	"github.com/rhythmlab/tactus/internal/render"
	"github.com/rhythmlab/tactus/internal/store"
	"github.com/rhythmlab/tactus/internal/synth"
	"github.com/rhythmlab/tactus/pkg/logger"
	"github.com/rhythmlab/tactus/pkg/metrics"
)

// generatedBy tags charts produced by the analysis pipeline, as opposed to
// hand-authored ones.
const generatedBy = "algorithm"

// Service runs the prepare/analyze/chart pipeline over an artifact store.
type Service struct {
	store store.Store

	// Configuration
	sampleRate    int
	fuseTolerance float64
	bands         profile.Bands
	difficulties  map[string]model.DifficultyConfig
	mapping       classify.Mapping

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSampleRate sets the rate tracks are resampled to on prepare.
func WithSampleRate(rate int) Option {
	return func(s *Service) {
		if rate > 0 {
			s.sampleRate = rate
		}
	}
}

// WithFuseTolerance sets the beat/onset coverage window in seconds.
func WithFuseTolerance(tolerance float64) Option {
	return func(s *Service) {
		if tolerance >= 0 {
			s.fuseTolerance = tolerance
		}
	}
}

// WithBands sets the instrument frequency bands used for profiling.
func WithBands(bands profile.Bands) Option {
	return func(s *Service) {
		s.bands = bands
	}
}

// WithDifficulties replaces the difficulty tuning table.
func WithDifficulties(difficulties map[string]model.DifficultyConfig) Option {
	return func(s *Service) {
		if len(difficulties) > 0 {
			s.difficulties = difficulties
		}
	}
}

// WithMapping sets the instrument to hand mapping.
func WithMapping(mapping classify.Mapping) Option {
	return func(s *Service) {
		s.mapping = mapping
	}
}

// New constructs a Service over the given store with default tuning.
func New(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:         st,
		sampleRate:    44100,
		fuseTolerance: 0.1,
		bands:         profile.DefaultBands(),
		difficulties: map[string]model.DifficultyConfig{
			"normal": {
				KickThreshold:  0.5,
				SnareThreshold: 0.55,
				HihatThreshold: 0.6,
				MinInterval:    0.25,
				NoteDensity:    1.0,
			},
		},
		mapping: classify.DefaultMapping(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	return s
}

// Prepare loads a track, resamples it to the working rate, estimates its
// tempo and stores the normalized audio plus a song descriptor. An empty
// songID gets a fresh UUID.
func (s *Service) Prepare(ctx context.Context, inputPath, songID string) (model.SongMetadata, error) {
	start := time.Now()
	if songID == "" {
		songID = uuid.NewString()
	}

	samples, err := audio.Load(inputPath, s.sampleRate)
	if err != nil {
		metrics.RecordPipelineError("prepare")
		return model.SongMetadata{}, fmt.Errorf("prepare %s: %w", songID, err)
	}

	duration := audio.Duration(samples, s.sampleRate)
	bpm := dsp.EstimateTempo(samples, s.sampleRate)

	if err := audio.Save(s.store.AudioPath(songID), samples, s.sampleRate); err != nil {
		metrics.RecordPipelineError("prepare")
		return model.SongMetadata{}, fmt.Errorf("prepare %s: %w", songID, err)
	}

	meta := model.SongMetadata{
		SongID:       songID,
		OriginalFile: filepath.Base(inputPath),
		Duration:     model.RoundMillis(duration),
		SampleRate:   s.sampleRate,
		BPM:          bpm,
		Samples:      len(samples),
	}
	if err := s.store.SaveMetadata(ctx, meta); err != nil {
		metrics.RecordPipelineError("prepare")
		return model.SongMetadata{}, fmt.Errorf("prepare %s: %w", songID, err)
	}

	metrics.RecordSongPrepared()
	metrics.RecordStageDuration("prepare", float64(time.Since(start).Milliseconds()))
	s.logger.Info(ctx, "song prepared",
		logger.String("songID", songID),
		logger.Float64("duration", meta.Duration),
		logger.Float64("bpm", bpm),
	)
	return meta, nil
}

// Analyze derives the candidate hit times for a prepared song and measures
// band energies at each. With useOnsets set, detected onsets are fused with
// the beat grid; otherwise the grid alone drives the candidates.
func (s *Service) Analyze(ctx context.Context, songID string, useOnsets bool) (model.Analysis, error) {
	start := time.Now()

	meta, err := s.store.LoadMetadata(ctx, songID)
	if err != nil {
		metrics.RecordPipelineError("analyze")
		return model.Analysis{}, fmt.Errorf("analyze %s: %w", songID, err)
	}

	samples, err := audio.Load(s.store.AudioPath(songID), meta.SampleRate)
	if err != nil {
		metrics.RecordPipelineError("analyze")
		return model.Analysis{}, fmt.Errorf("analyze %s: %w", songID, err)
	}

	duration := audio.Duration(samples, meta.SampleRate)
	spec := dsp.ComputeSpectrogram(samples, meta.SampleRate)
	envelope := dsp.OnsetEnvelope(samples, meta.SampleRate)

	bpm := meta.BPM
	if bpm <= 0 {
		bpm = dsp.EstimateTempo(samples, meta.SampleRate)
	}
	beats := dsp.BeatTimes(duration, bpm, envelope, meta.SampleRate)

	times := beats
	if useOnsets {
		onsets := dsp.DetectOnsets(samples, meta.SampleRate)
		fuser := fuse.New(fuse.WithTolerance(s.fuseTolerance))
		times = fuser.Fuse(beats, onsets)
	}

	profiler := profile.New(
		profile.WithBands(s.bands),
		profile.WithSampleRate(meta.SampleRate),
		profile.WithHopSize(spec.HopSize),
	)
	events := profiler.Profile(spec.Magnitude, spec.Freqs, times)
	profile.Normalize(events)

	analysis := model.Analysis{
		BPM:        bpm,
		Duration:   model.RoundMillis(duration),
		EventCount: len(events),
		Events:     events,
	}
	if err := s.store.SaveAnalysis(ctx, songID, analysis); err != nil {
		metrics.RecordPipelineError("analyze")
		return model.Analysis{}, fmt.Errorf("analyze %s: %w", songID, err)
	}

	metrics.RecordAnalysisCompleted()
	metrics.ObserveFusedEvents(len(events))
	metrics.RecordStageDuration("analyze", float64(time.Since(start).Milliseconds()))
	s.logger.Info(ctx, "song analyzed",
		logger.String("songID", songID),
		logger.Float64("bpm", bpm),
		logger.Int("events", len(events)),
	)
	return analysis, nil
}

// GenerateChart turns a stored analysis into a playable chart for one
// difficulty. Missing inputs abort before anything is written.
func (s *Service) GenerateChart(ctx context.Context, songID, difficulty string) (model.Chart, []validate.Issue, error) {
	start := time.Now()

	tuning, ok := s.difficulties[difficulty]
	if !ok {
		return model.Chart{}, nil, fmt.Errorf("chart %s/%s: %w", songID, difficulty, ErrUnknownDifficulty)
	}

	meta, err := s.store.LoadMetadata(ctx, songID)
	if err != nil {
		metrics.RecordPipelineError("chart")
		return model.Chart{}, nil, fmt.Errorf("chart %s/%s: %w", songID, difficulty, err)
	}
	analysis, err := s.store.LoadAnalysis(ctx, songID)
	if err != nil {
		metrics.RecordPipelineError("chart")
		return model.Chart{}, nil, fmt.Errorf("chart %s/%s: %w", songID, difficulty, err)
	}

	classifier := classify.New(append(
		classify.FromDifficulty(tuning),
		classify.WithMapping(s.mapping),
	)...)
	notes := classifier.Classify(analysis.Events)
	notes = density.Apply(notes, tuning.NoteDensity)

	chart := model.Chart{
		SongID:     songID,
		Difficulty: difficulty,
		Notes:      notes,
		Metadata:   model.NewChartMetadata(generatedBy, notes),
	}

	issues := validate.Chart(chart, meta.Duration)
	for _, issue := range issues {
		metrics.RecordValidationIssue(string(issue.Severity))
		s.logger.Warn(ctx, "chart validation issue",
			logger.String("songID", songID),
			logger.String("difficulty", difficulty),
			logger.String("severity", string(issue.Severity)),
			logger.String("message", issue.Message),
			logger.Int("note", issue.Note),
		)
	}

	if err := s.store.SaveChart(ctx, chart); err != nil {
		metrics.RecordPipelineError("chart")
		return model.Chart{}, nil, fmt.Errorf("chart %s/%s: %w", songID, difficulty, err)
	}

	metrics.RecordChartGenerated(difficulty)
	metrics.ObserveChartNotes(difficulty, len(notes))
	metrics.RecordStageDuration("chart", float64(time.Since(start).Milliseconds()))
	s.logger.Info(ctx, "chart generated",
		logger.String("songID", songID),
		logger.String("difficulty", difficulty),
		logger.Int("notes", len(notes)),
		logger.Int("issues", len(issues)),
	)
	return chart, issues, nil
}

// GenerateAll builds charts for every configured difficulty concurrently.
// Each difficulty works from its own load of the analysis, so one failing
// difficulty never corrupts another.
func (s *Service) GenerateAll(ctx context.Context, songID string) (map[string]model.Chart, error) {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		charts = make(map[string]model.Chart, len(s.difficulties))
		errs   []error
	)

	for difficulty := range s.difficulties {
		wg.Add(1)
		go func(difficulty string) {
			defer wg.Done()
			chart, _, err := s.GenerateChart(ctx, songID, difficulty)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			charts[difficulty] = chart
		}(difficulty)
	}
	wg.Wait()

	return charts, errors.Join(errs...)
}

// GenerateSamples synthesizes the drum kit into the store's sample dir.
func (s *Service) GenerateSamples(ctx context.Context) error {
	for name, samples := range synth.All(s.sampleRate) {
		if err := audio.Save(s.store.SamplePath(name), samples, s.sampleRate); err != nil {
			metrics.RecordPipelineError("samples")
			return fmt.Errorf("samples: %w", err)
		}
	}
	s.logger.Info(ctx, "drum samples generated")
	return nil
}

// RenderPreview mixes a chart into an audible WAV. Kit samples come from the
// store when present, falling back to synthesis; withBackground layers the
// hits over the prepared track.
func (s *Service) RenderPreview(ctx context.Context, songID, difficulty string, withBackground bool) (string, error) {
	start := time.Now()

	meta, err := s.store.LoadMetadata(ctx, songID)
	if err != nil {
		metrics.RecordPipelineError("render")
		return "", fmt.Errorf("render %s/%s: %w", songID, difficulty, err)
	}
	chart, err := s.store.LoadChart(ctx, songID, difficulty)
	if err != nil {
		metrics.RecordPipelineError("render")
		return "", fmt.Errorf("render %s/%s: %w", songID, difficulty, err)
	}

	var background []float64
	if withBackground {
		background, err = audio.Load(s.store.AudioPath(songID), meta.SampleRate)
		if err != nil {
			metrics.RecordPipelineError("render")
			return "", fmt.Errorf("render %s/%s: %w", songID, difficulty, err)
		}
	}

	renderer := render.New(render.WithSampleRate(meta.SampleRate))
	mix := renderer.Chart(chart, meta.Duration, s.loadKit(meta.SampleRate), background)

	out := s.store.PreviewPath(songID, difficulty)
	if err := audio.Save(out, mix, meta.SampleRate); err != nil {
		metrics.RecordPipelineError("render")
		return "", fmt.Errorf("render %s/%s: %w", songID, difficulty, err)
	}

	metrics.RecordPreviewRendered()
	metrics.RecordStageDuration("render", float64(time.Since(start).Milliseconds()))
	s.logger.Info(ctx, "preview rendered",
		logger.String("songID", songID),
		logger.String("difficulty", difficulty),
		logger.String("path", out),
	)
	return out, nil
}

// loadKit reads each stored drum sample, synthesizing any that are missing.
func (s *Service) loadKit(sampleRate int) map[string][]float64 {
	kit := synth.All(sampleRate)
	for name := range kit {
		if samples, err := audio.Load(s.store.SamplePath(name), sampleRate); err == nil {
			kit[name] = samples
		}
	}
	return kit
}

// ListSongs returns descriptors for every prepared song.
func (s *Service) ListSongs(ctx context.Context) ([]model.SongMetadata, error) {
	songs, err := s.store.ListSongs(ctx)
	if err != nil {
		return nil, err
	}
	metrics.UpdateSongsTracked(len(songs))
	return songs, nil
}

// Analysis returns the stored analysis for a song.
func (s *Service) Analysis(ctx context.Context, songID string) (model.Analysis, error) {
	return s.store.LoadAnalysis(ctx, songID)
}

// Chart returns one stored chart.
func (s *Service) Chart(ctx context.Context, songID, difficulty string) (model.Chart, error) {
	return s.store.LoadChart(ctx, songID, difficulty)
}
