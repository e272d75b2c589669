package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deltaflow/piso1d/internal/config"
	"github.com/deltaflow/piso1d/internal/driver"
)

func sampleResult() *driver.Result {
	return &driver.Result{
		Diagnostics: []driver.StepDiagnostic{
			{Step: 0, Time: 1e-3, MaxCourant: 0.1, MaxReynolds: 500, PISOIterations: 3, MaxResidual: 1e-9, Converged: true},
			{Step: 1, Time: 2e-3, MaxCourant: 0.11, MaxReynolds: 510, PISOIterations: 2, MaxResidual: 5e-10, Converged: true},
		},
		StepsTaken: 2,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.DefaultConfig()
	runID, err := st.Save(cfg, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.N != cfg.N {
		t.Errorf("expected N=%d, got %d", cfg.N, meta.N)
	}
	if meta.StepsTaken != 2 {
		t.Errorf("expected StepsTaken=2, got %d", meta.StepsTaken)
	}
	if !meta.Converged {
		t.Error("expected Converged=true from the last diagnostic")
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save(config.DefaultConfig(), sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(config.DefaultConfig(), sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "diagnostics.csv")); os.IsNotExist(err) {
		t.Error("diagnostics.csv not created")
	}
}
