package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var ErrNoRun = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Hot       string             `json:"hot"`
	Cold      string             `json:"cold"`
	FPS       int                `json:"fps"`
	Frames    int                `json:"frames"`
	BaseSpeed float64            `json:"base_speed"`
	SpeedGain float64            `json:"speed_gain"`
	Metrics   map[string]float64 `json:"metrics"`
}

var header = []string{"frame", "angle", "stage", "validity", "running", "efficiency", "speed", "crank_x", "crank_y", "piston_y"}

// Save writes metadata.json and frames.csv under a new run directory and
// returns the run id.
func (s *Store) Save(meta RunMetadata, samples []Sample) (string, error) {
	if meta.Name == "" {
		meta.Name = "run"
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Frames = len(samples)

	id, runDir, err := s.newRunDir(meta)
	if err != nil {
		return "", err
	}
	meta.ID = id

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, samples); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) newRunDir(meta RunMetadata) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := meta.ID
	if base == "" {
		base = fmt.Sprintf("%s_%d", meta.Name, meta.Timestamp.Unix())
	}
	id := base
	for n := 2; ; n++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}

// WriteCSV writes samples with a header row.
func WriteCSV(out io.Writer, samples []Sample) error {
	w := csv.NewWriter(out)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, sm := range samples {
		if err := w.Write(sm.record()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns all runs ordered oldest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s metadata: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}
	defer file.Close()
	return ReadCSV(file)
}

// ReadCSV parses rows written by WriteCSV. Malformed rows are skipped.
func ReadCSV(in io.Reader) ([]Sample, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		sm, err := parseRecord(rec)
		if err != nil {
			continue
		}
		samples = append(samples, sm)
	}
	return samples, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
