// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bibnorm/internal/keygen"
)

// conflictReport is the YAML document written by WriteConflictReport.
type conflictReport struct {
	Input     string            `yaml:"input"`
	Conflicts []keygen.Conflict `yaml:"conflicts"`
}

// WriteConflictReport writes the residual key conflicts for one run as YAML
// to path, for downstream tooling. An empty conflict list still produces a
// valid document.
func WriteConflictReport(input string, conflicts []keygen.Conflict, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %s: %w", path, err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()
	if err := enc.Encode(conflictReport{Input: input, Conflicts: conflicts}); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
