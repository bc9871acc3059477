// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Extensions lists the file extensions recognized as rule files.
var Extensions = []string{".lex", ".rules", ".txt"}

// Discover returns the rule files directly inside dir in directory order
// (sorted by name). A missing directory is not an error; Discover returns
// nil. Dotfiles and subdirectories are skipped.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading rules directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !IsRuleFile(name) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths, nil
}

// IsRuleFile reports whether name carries a rule file extension.
func IsRuleFile(name string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(name)))
}

// RuleName returns the catalog name of a rule file: its base name without
// extension.
func RuleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
