package adapter

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	m "stunt.dev/pkg/stunt/internal/model"
)

func samplePlans() []m.PackagePlan {
	return []m.PackagePlan{
		{
			Dir:        "fixtures/basic",
			ImportPath: "example.com/fixtures/basic",
			Files: []m.FilePlan{
				{
					File: "fixtures/basic/render.go",
					Hash: "abc123",
					Functions: []m.FunctionPlan{
						{
							Function:     "Render",
							ReceiverKind: "none",
							File:         "fixtures/basic/render.go",
							Line:         10,
							Params:       []string{"name"},
							Refs: []m.PlannedReference{
								{Name: "Logger", Line: 12, Verdict: m.VerdictPatch},
								{Name: "fmt", Sel: "Sprintf", Line: 13, Verdict: m.VerdictCrossPackage},
							},
						},
					},
				},
			},
		},
	}
}

func TestYAMLPlanStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewYAMLPlanStore()

	path := m.Path(filepath.Join(t.TempDir(), "stunt-plan.yaml"))

	plans := samplePlans()

	if err := store.Save(path, plans); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !reflect.DeepEqual(loaded, plans) {
		t.Fatalf("Load() = %+v, want %+v", loaded, plans)
	}
}

func TestYAMLPlanStore_SaveWritesReadableYAML(t *testing.T) {
	store := NewYAMLPlanStore()

	path := m.Path(filepath.Join(t.TempDir(), "stunt-plan.yaml"))

	if err := store.Save(path, samplePlans()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(string(path))
	if err != nil {
		t.Fatalf("failed to read saved plan: %v", err)
	}

	for _, fragment := range []string{"version: 1", "function: Render", "verdict: patch"} {
		if !strings.Contains(string(data), fragment) {
			t.Fatalf("saved plan missing %q:\n%s", fragment, data)
		}
	}
}

func TestYAMLPlanStore_LoadRejectsUnknownVersion(t *testing.T) {
	store := NewYAMLPlanStore()

	path := filepath.Join(t.TempDir(), "stunt-plan.yaml")
	if err := os.WriteFile(path, []byte("version: 99\npackages: []\n"), 0o600); err != nil {
		t.Fatalf("failed to seed plan file: %v", err)
	}

	if _, err := store.Load(m.Path(path)); err == nil {
		t.Fatalf("Load() accepted unsupported version")
	}
}

func TestYAMLPlanStore_LoadMissingFileFails(t *testing.T) {
	store := NewYAMLPlanStore()

	_, err := store.Load(m.Path(filepath.Join(t.TempDir(), "absent.yaml")))
	if err == nil {
		t.Fatalf("Load() succeeded on a missing file")
	}
}
