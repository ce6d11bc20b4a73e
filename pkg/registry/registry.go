// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"calculators/internal/common/validation"

	"gopkg.in/yaml.v3"
)

//go:embed engines.yaml
var embedded []byte

// Default returns the registry compiled into the binary.
func Default() (*EngineRegistry, error) {
	return Parse(embedded)
}

// LoadRegistry reads a registry file. JSON is accepted as well as YAML.
func LoadRegistry(path string) (*EngineRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a registry document and checks that engine IDs are unique.
func Parse(data []byte) (*EngineRegistry, error) {
	var reg EngineRegistry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	seen := make(map[string]bool, len(reg.Engines))
	for _, e := range reg.Engines {
		if e.ID == "" {
			return nil, fmt.Errorf("parse registry: engine without id")
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("parse registry: duplicate engine id %q", e.ID)
		}
		seen[e.ID] = true
	}
	return &reg, nil
}

// Validate checks that the registry lists at least one engine and that every
// engine names its display name, task type and category.
func (r *EngineRegistry) Validate() error {
	if len(r.Engines) == 0 {
		return fmt.Errorf("registry contains no engines")
	}
	for _, e := range r.Engines {
		if e.DisplayName == "" {
			return fmt.Errorf("engine %s missing required field: displayName", e.ID)
		}
		if e.TaskType == "" {
			return fmt.Errorf("engine %s missing required field: taskType", e.ID)
		}
		if e.Category == "" {
			return fmt.Errorf("engine %s missing required field: category", e.ID)
		}
	}
	return nil
}

// Lookup finds an engine by ID.
func (r *EngineRegistry) Lookup(id string) (*Engine, bool) {
	for i := range r.Engines {
		if r.Engines[i].ID == id {
			return &r.Engines[i], true
		}
	}
	return nil, false
}

// IDs returns the engine IDs in sorted order.
func (r *EngineRegistry) IDs() []string {
	ids := make([]string, 0, len(r.Engines))
	for _, e := range r.Engines {
		ids = append(ids, e.ID)
	}
	sort.Strings(ids)
	return ids
}

// ValidateInput checks document against the engine's input schema. Engines
// without a schema accept anything. Violations come back as a *validation.Error.
func (r *EngineRegistry) ValidateInput(id string, document interface{}) error {
	e, ok := r.Lookup(id)
	if !ok {
		return fmt.Errorf("unknown engine %q", id)
	}
	if len(e.InputSchema) == 0 {
		return nil
	}
	result, err := validation.ValidateDocument(e.InputSchema, document)
	if err != nil {
		return err
	}
	return result.Err()
}
