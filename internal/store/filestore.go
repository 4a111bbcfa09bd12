package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rhythmlab/tactus/internal/domain/model"
)

// Layout under the store root. Each artifact kind gets its own directory so
// a song's files never collide.
const (
	songsDir    = "songs"
	analysisDir = "analysis"
	chartsDir   = "charts"
	audioDir    = "audio"
	samplesDir  = "samples"
	previewsDir = "previews"
)

// fileStore keeps every artifact as a file under one root directory. JSON
// documents are written atomically via a temp file and rename.
type fileStore struct {
	root string
}

// NewFileStore opens (creating if needed) a file-backed store rooted at dir.
func NewFileStore(dir string) (Store, error) {
	for _, sub := range []string{songsDir, analysisDir, chartsDir, audioDir, samplesDir, previewsDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("store: create %s: %w", sub, err)
		}
	}
	return &fileStore{root: dir}, nil
}

func (s *fileStore) SaveMetadata(_ context.Context, meta model.SongMetadata) error {
	if err := checkSongID(meta.SongID); err != nil {
		return err
	}
	return writeJSON(filepath.Join(s.root, songsDir, meta.SongID+".json"), meta)
}

func (s *fileStore) LoadMetadata(_ context.Context, songID string) (model.SongMetadata, error) {
	var meta model.SongMetadata
	if err := checkSongID(songID); err != nil {
		return meta, err
	}
	err := readJSON(filepath.Join(s.root, songsDir, songID+".json"), &meta)
	return meta, err
}

func (s *fileStore) SaveAnalysis(_ context.Context, songID string, analysis model.Analysis) error {
	if err := checkSongID(songID); err != nil {
		return err
	}
	return writeJSON(filepath.Join(s.root, analysisDir, songID+".json"), analysis)
}

func (s *fileStore) LoadAnalysis(_ context.Context, songID string) (model.Analysis, error) {
	var analysis model.Analysis
	if err := checkSongID(songID); err != nil {
		return analysis, err
	}
	err := readJSON(filepath.Join(s.root, analysisDir, songID+".json"), &analysis)
	return analysis, err
}

func (s *fileStore) SaveChart(_ context.Context, chart model.Chart) error {
	if err := checkSongID(chart.SongID); err != nil {
		return err
	}
	name := chart.SongID + "-" + chart.Difficulty + ".json"
	return writeJSON(filepath.Join(s.root, chartsDir, name), chart)
}

func (s *fileStore) LoadChart(_ context.Context, songID, difficulty string) (model.Chart, error) {
	var chart model.Chart
	if err := checkSongID(songID); err != nil {
		return chart, err
	}
	name := songID + "-" + difficulty + ".json"
	err := readJSON(filepath.Join(s.root, chartsDir, name), &chart)
	return chart, err
}

func (s *fileStore) ListSongs(_ context.Context) ([]model.SongMetadata, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, songsDir))
	if err != nil {
		return nil, fmt.Errorf("store: list songs: %w", err)
	}

	var songs []model.SongMetadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		var meta model.SongMetadata
		if err := readJSON(filepath.Join(s.root, songsDir, entry.Name()), &meta); err != nil {
			continue
		}
		songs = append(songs, meta)
	}
	sort.Slice(songs, func(i, j int) bool { return songs[i].SongID < songs[j].SongID })
	return songs, nil
}

func (s *fileStore) AudioPath(songID string) string {
	return filepath.Join(s.root, audioDir, songID+".wav")
}

func (s *fileStore) SamplePath(name string) string {
	return filepath.Join(s.root, samplesDir, name+".wav")
}

func (s *fileStore) PreviewPath(songID, difficulty string) string {
	return filepath.Join(s.root, previewsDir, songID+"-"+difficulty+".wav")
}

// checkSongID rejects identifiers that could escape the store layout.
func checkSongID(songID string) error {
	if songID == "" || strings.ContainsAny(songID, `/\`) || strings.Contains(songID, "..") {
		return fmt.Errorf("store: %q: %w", songID, ErrBadSongID)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("store: temp for %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: rename %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("store: %s: %w", path, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("store: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("store: unmarshal %s: %w", path, err)
	}
	return nil
}
