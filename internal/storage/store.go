// Package storage persists a completed run's configuration and per-step
// diagnostics to disk: a metadata.json plus a diagnostics.csv per run
// directory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/deltaflow/piso1d/internal/config"
	"github.com/deltaflow/piso1d/internal/driver"
)

// Store writes and reads run archives rooted at baseDir, one subdirectory
// per run.
type Store struct {
	baseDir string
}

// New returns a Store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Init creates baseDir if it does not already exist.
func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata is the run-level summary written alongside the per-step
// diagnostics.
type RunMetadata struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	N          int       `json:"n"`
	Length     float64   `json:"length"`
	Dt         float64   `json:"dt"`
	TMax       float64   `json:"t_max"`
	RhieChow   bool      `json:"rhie_chow"`
	Turbulence bool      `json:"turbulence"`
	StepsTaken int       `json:"steps_taken"`
	Converged  bool      `json:"converged"`
}

// Save writes metadata.json and diagnostics.csv for one run, returning the
// generated run ID.
func (s *Store) Save(cfg *config.Config, result *driver.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	converged := false
	if len(result.Diagnostics) > 0 {
		converged = result.Diagnostics[len(result.Diagnostics)-1].Converged
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		N:          cfg.N,
		Length:     cfg.Length,
		Dt:         cfg.Dt,
		TMax:       cfg.TMax,
		RhieChow:   cfg.RhieChow,
		Turbulence: cfg.Turbulence,
		StepsTaken: result.StepsTaken,
		Converged:  converged,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "diagnostics.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"step", "time", "max_courant", "max_reynolds", "piso_iterations", "max_residual", "converged"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, d := range result.Diagnostics {
		row := []string{
			strconv.Itoa(d.Step),
			strconv.FormatFloat(d.Time, 'f', 6, 64),
			strconv.FormatFloat(d.MaxCourant, 'f', 6, 64),
			strconv.FormatFloat(d.MaxReynolds, 'f', 6, 64),
			strconv.Itoa(d.PISOIterations),
			strconv.FormatFloat(d.MaxResidual, 'e', 6, 64),
			strconv.FormatBool(d.Converged),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns the metadata of every archived run under baseDir.
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

// Load reads back one run's metadata by ID.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}
