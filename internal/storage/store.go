package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/bouncebox/internal/boxes"
	"github.com/san-kum/bouncebox/internal/config"
	"github.com/san-kum/bouncebox/internal/sim"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
	finalFile    = "final.csv"
	configFile   = "config.yaml"
)

var sampleHeader = []string{"time", "count", "energy", "mean_height", "bounces", "draws"}

var boxHeader = []string{"x", "y", "vx", "vy", "r", "g", "b", "rotation", "rotation_speed"}

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
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      uint64             `json:"seed"`
	FrameMs   float32            `json:"frame_ms"`
	Frames    int                `json:"frames"`
	Width     uint32             `json:"width"`
	Height    uint32             `json:"height"`
	Boxes     int                `json:"boxes"`
	Stats     boxes.Stats        `json:"stats"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one run directory: metadata, per-frame samples, final box
// states and the config that produced them.
func (s *Store) Save(preset string, cfg *config.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", preset, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    preset,
		Timestamp: now,
		Seed:      result.Seed,
		FrameMs:   cfg.FrameMs,
		Frames:    result.FramesRun,
		Width:     result.Width,
		Height:    result.Height,
		Boxes:     len(result.Final),
		Stats:     result.Stats,
		Metrics:   result.Metrics,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	rows := make([][]string, 0, len(result.Samples))
	for _, sm := range result.Samples {
		rows = append(rows, []string{
			ftoa(sm.Time),
			strconv.Itoa(sm.Count),
			ftoa(sm.Energy),
			ftoa(sm.MeanHeight),
			strconv.Itoa(sm.Bounces),
			strconv.Itoa(sm.Draws),
		})
	}
	if err := writeCSV(filepath.Join(runDir, samplesFile), sampleHeader, rows); err != nil {
		return "", err
	}

	rows = rows[:0]
	for _, b := range result.Final {
		rows = append(rows, []string{
			ftoa(b.X), ftoa(b.Y), ftoa(b.VX), ftoa(b.VY),
			ftoa(b.R), ftoa(b.G), ftoa(b.B),
			ftoa(b.Rotation), ftoa(b.RotationSpeed),
		})
	}
	if err := writeCSV(filepath.Join(runDir, finalFile), boxHeader, rows); err != nil {
		return "", err
	}

	saved := *cfg
	saved.Seed = result.Seed
	if err := config.Save(filepath.Join(runDir, configFile), &saved); err != nil {
		return "", err
	}

	return runID, nil
}

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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadConfig returns the config of a stored run with its resolved seed, so
// the run can be replayed exactly.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, configFile))
}

func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}

	samples := make([]sim.Sample, 0, len(records))
	for _, rec := range records {
		if len(rec) < len(sampleHeader) {
			continue
		}
		var sm sim.Sample
		var perr error
		parse := func(i int) float64 {
			v, err := strconv.ParseFloat(rec[i], 64)
			if err != nil && perr == nil {
				perr = err
			}
			return v
		}
		sm.Time = parse(0)
		sm.Count = int(parse(1))
		sm.Energy = parse(2)
		sm.MeanHeight = parse(3)
		sm.Bounces = int(parse(4))
		sm.Draws = int(parse(5))
		if perr != nil {
			continue
		}
		samples = append(samples, sm)
	}

	return samples, nil
}

func (s *Store) LoadFinal(runID string) ([]boxes.Box, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, finalFile))
	if err != nil {
		return nil, err
	}

	out := make([]boxes.Box, 0, len(records))
	for _, rec := range records {
		if len(rec) < len(boxHeader) {
			continue
		}
		vals := make([]float64, len(boxHeader))
		ok := true
		for i := range vals {
			v, err := strconv.ParseFloat(rec[i], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		out = append(out, boxes.Box{
			X: vals[0], Y: vals[1], VX: vals[2], VY: vals[3],
			R: vals[4], G: vals[5], B: vals[6],
			Rotation: vals[7], RotationSpeed: vals[8],
		})
	}
	return out, nil
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

// readCSV returns data rows, skipping the header.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]string{}, nil
	}
	return records[1:], nil
}
