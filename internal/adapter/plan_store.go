package adapter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "stunt.dev/pkg/stunt/internal/model"
)

// PlanStore persists isolation plans between runs so view and diff can work
// without rescanning sources.
type PlanStore interface {
	// Save writes the plans to path, replacing any previous content.
	Save(path m.Path, plans []m.PackagePlan) error

	// Load reads previously saved plans from path.
	Load(path m.Path) ([]m.PackagePlan, error)
}

// planFile is the on-disk envelope. The version field guards against format
// drift between releases.
type planFile struct {
	Version  int             `yaml:"version"`
	Packages []m.PackagePlan `yaml:"packages"`
}

const planFileVersion = 1

// YAMLPlanStore is the concrete PlanStore writing YAML documents.
type YAMLPlanStore struct{}

// NewYAMLPlanStore constructs a YAMLPlanStore.
func NewYAMLPlanStore() *YAMLPlanStore {
	return &YAMLPlanStore{}
}

// Save writes plans to path as a single YAML document.
func (s *YAMLPlanStore) Save(path m.Path, plans []m.PackagePlan) error {
	doc := planFile{Version: planFileVersion, Packages: plans}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("failed to write plan to %s: %w", path, err)
	}

	return nil
}

// Load reads plans back from path.
func (s *YAMLPlanStore) Load(path m.Path) ([]m.PackagePlan, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read plan from %s: %w", path, err)
	}

	var doc planFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode plan from %s: %w", path, err)
	}

	if doc.Version != planFileVersion {
		return nil, fmt.Errorf("unsupported plan version %d in %s", doc.Version, path)
	}

	return doc.Packages, nil
}
