package shared_test

import (
	"os"
	"path/filepath"
	"testing"

	"holiday_planner/internal/shared"
)

func TestLoadPrograms_MissingFileUsesDefaults(t *testing.T) {
	p, err := shared.LoadPrograms(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	prog, ok := p.Lookup("virgin")
	if !ok || prog.PointValue != 0.012 {
		t.Fatalf("expected default virgin program, got %+v ok=%v", prog, ok)
	}
	if len(p.List()) == 0 {
		t.Fatalf("expected non-empty default table")
	}
}

func TestLoadPrograms_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "programs.yaml")
	doc := `programs:
  - code: skymiles
    name: Delta SkyMiles
    point_value: 0.011
    conversion_rate: 95
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	p, err := shared.LoadPrograms(path)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	prog, ok := p.Lookup("skymiles")
	if !ok || prog.ConversionRate != 95 {
		t.Fatalf("unexpected program: %+v ok=%v", prog, ok)
	}
	if _, ok := p.Lookup("virgin"); ok {
		t.Fatalf("defaults must not leak when a file is provided")
	}
}

func TestLoadPrograms_RejectsInvalidEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "programs.yaml")
	doc := `programs:
  - code: broken
    point_value: 0
    conversion_rate: 90
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := shared.LoadPrograms(path); err == nil {
		t.Fatalf("expected error for zero point_value")
	}
}
