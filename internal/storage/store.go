package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/binnev/lissajous-patterns/internal/config"
	"github.com/binnev/lissajous-patterns/internal/physics"
	"github.com/binnev/lissajous-patterns/internal/trajectory"
)

// Store keeps one directory per run holding metadata.json and states.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type ThrowMetadata struct {
	X0  float64 `json:"x0"`
	Y0  float64 `json:"y0"`
	VX0 float64 `json:"vx0"`
	VY0 float64 `json:"vy0"`
}

type RunMetadata struct {
	ID           string               `json:"id"`
	Timestamp    time.Time            `json:"timestamp"`
	Method       string               `json:"method"`
	Integrator   string               `json:"integrator,omitempty"`
	LengthX      float64              `json:"length_x"`
	LengthY      float64              `json:"length_y"`
	Gravity      float64              `json:"gravity"`
	Damping      float64              `json:"damping"`
	Linear       bool                 `json:"linear"`
	TMax         float64              `json:"t_max"`
	Dt           float64              `json:"d_time"`
	Samples      int                  `json:"samples"`
	Throw        ThrowMetadata        `json:"throw"`
	Coefficients physics.Coefficients `json:"coefficients"`
	Ratio        string               `json:"ratio"`
	Warnings     []string             `json:"warnings,omitempty"`
	Metrics      map[string]float64   `json:"metrics,omitempty"`
}

// NewMetadata describes a computed path without saving it.
func NewMetadata(cfg *config.Config, th trajectory.Throw, path *trajectory.Path) RunMetadata {
	meta := RunMetadata{
		Timestamp:    time.Now(),
		Method:       string(path.Method),
		LengthX:      cfg.LengthX,
		LengthY:      cfg.LengthY,
		Gravity:      cfg.Gravity,
		Damping:      cfg.Damping,
		Linear:       cfg.Linear,
		TMax:         cfg.TMax,
		Dt:           cfg.DTime,
		Samples:      path.Len(),
		Throw:        ThrowMetadata{X0: th.X0, Y0: th.Y0, VX0: th.VX0, VY0: th.VY0},
		Coefficients: path.Coefficients,
		Metrics:      path.Metrics,
	}
	if path.Method == trajectory.Numeric {
		meta.Integrator = cfg.Integrator
	}
	pend := cfg.Pendulum()
	if r, err := physics.FrequencyRatio(&pend); err == nil {
		meta.Ratio = r.Label()
	}
	for _, w := range path.Coefficients.Warnings() {
		meta.Warnings = append(meta.Warnings, w.String())
	}
	return meta
}

func (s *Store) Save(cfg *config.Config, th trajectory.Throw, path *trajectory.Path) (string, error) {
	meta := NewMetadata(cfg, th, path)
	meta.ID = fmt.Sprintf("lissajous_%d", meta.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
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

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, path); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// WriteCSV writes time,x,y rows with a header.
func WriteCSV(out io.Writer, path *trajectory.Path) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"time", "x", "y"}); err != nil {
		return err
	}
	for i, p := range path.Points {
		row := []string{
			strconv.FormatFloat(path.Times[i], 'f', 6, 64),
			strconv.FormatFloat(p.X, 'f', 6, 64),
			strconv.FormatFloat(p.Y, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadPath reads the samples of a run back. Unparseable rows are skipped.
func (s *Store) LoadPath(runID string) (*trajectory.Path, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	path := &trajectory.Path{}
	if meta, err := s.Load(runID); err == nil {
		path.Method = trajectory.Method(meta.Method)
		path.Coefficients = meta.Coefficients
		path.Metrics = meta.Metrics
	}
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 3 {
			continue
		}
		vals := make([]float64, 3)
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		path.Times = append(path.Times, vals[0])
		path.Points = append(path.Points, physics.Point{X: vals[1], Y: vals[2]})
	}
	return path, nil
}
