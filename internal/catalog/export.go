// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes every cataloged rule set to <dir>/export.yaml.
func (s *Store) ExportYAML(ctx context.Context) error {
	sets, err := s.List(ctx, "")
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	data, err := yaml.Marshal(sets)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(s.ExportPath("yaml"), data, 0o644)
}

// ExportJSON writes every cataloged rule set to <dir>/export.json.
func (s *Store) ExportJSON(ctx context.Context) error {
	sets, err := s.List(ctx, "")
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	data, err := json.MarshalIndent(sets, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(s.ExportPath("json"), data, 0o644)
}

// ExportPath returns the export file path for format ("yaml" or "json").
func (s *Store) ExportPath(format string) string {
	return filepath.Join(s.dir, "export."+format)
}
