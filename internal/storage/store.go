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

	"github.com/san-kum/constellation/internal/sim"
)

var ErrNoStats = errors.New("storage: run has no per-frame stats")

// Store keeps one directory per headless run under baseDir.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Engine    string             `json:"engine"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Frames    int                `json:"frames"`
	Elapsed   time.Duration      `json:"elapsed_ns"`
	Metrics   map[string]float64 `json:"metrics"`
}

var statsHeader = []string{"frame", "population", "target", "edges", "saturated", "mean_alpha", "max_speed"}

// Save writes metadata.json and, when the result kept them, stats.csv.
func (s *Store) Save(preset string, seed int64, width, height float64, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", preset, now.UnixNano())
	if len(result.EngineID) >= 8 {
		runID = fmt.Sprintf("%s_%d_%s", preset, now.Unix(), result.EngineID[:8])
	}
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Engine:    result.EngineID,
		Preset:    preset,
		Timestamp: now,
		Seed:      seed,
		Width:     width,
		Height:    height,
		Frames:    result.FramesRun,
		Elapsed:   result.Elapsed,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if len(result.Stats) == 0 {
		return runID, nil
	}

	csvFile, err := os.Create(filepath.Join(runDir, "stats.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteStatsCSV(csvFile, result.Stats); err != nil {
		return "", err
	}
	return runID, nil
}

// WriteStatsCSV writes one row per frame.
func WriteStatsCSV(out io.Writer, stats []sim.FrameStats) error {
	w := csv.NewWriter(out)
	if err := w.Write(statsHeader); err != nil {
		return err
	}
	for _, st := range stats {
		row := []string{
			strconv.FormatUint(st.Index, 10),
			strconv.Itoa(st.Population),
			strconv.Itoa(st.Target),
			strconv.Itoa(st.Edges),
			strconv.Itoa(st.Saturated),
			strconv.FormatFloat(st.MeanAlpha, 'f', 6, 64),
			strconv.FormatFloat(st.MaxSpeed, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns saved runs, oldest first. Directories without readable
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadStats reads stats.csv back. Rows that fail to parse are skipped.
func (s *Store) LoadStats(runID string) ([]sim.FrameStats, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "stats.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoStats
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.FrameStats{}, nil
	}

	stats := make([]sim.FrameStats, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(statsHeader) {
			continue
		}
		st, err := parseRow(rec)
		if err != nil {
			continue
		}
		stats = append(stats, st)
	}
	return stats, nil
}

func parseRow(rec []string) (sim.FrameStats, error) {
	var (
		st   sim.FrameStats
		err  error
		ints [4]int
	)
	if st.Index, err = strconv.ParseUint(rec[0], 10, 64); err != nil {
		return st, err
	}
	for i := range ints {
		if ints[i], err = strconv.Atoi(rec[i+1]); err != nil {
			return st, err
		}
	}
	st.Population, st.Target, st.Edges, st.Saturated = ints[0], ints[1], ints[2], ints[3]
	if st.MeanAlpha, err = strconv.ParseFloat(rec[5], 64); err != nil {
		return st, err
	}
	if st.MaxSpeed, err = strconv.ParseFloat(rec[6], 64); err != nil {
		return st, err
	}
	return st, nil
}
