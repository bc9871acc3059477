//go:build mage

// Package main contains Mage build targets for lexicon developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the CLI expects.
var projectDirs = []string{
	"rules",
	"catalog",
}

const sampleRules = `# Two or three syllable names with an optional epithet.
[onset]
b d g k 2 r th v
[nucleus]
3 a e i o u ae
[coda]
n r s th
[epithet]
the_Bold the_Grey of_the_Vale
[syllable]
onset nucleus 60 coda onset nucleus 40 coda 15 _ 15 epithet
`

// Init creates the project directories and a sample rule file.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}

	sample := filepath.Join("rules", "sample.lex")
	if _, err := os.Stat(sample); os.IsNotExist(err) {
		if err := os.WriteFile(sample, []byte(sampleRules), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", sample, err)
		}
		fmt.Println("  ", sample)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "lexicon"
	cmdPkg  = "./cmd/lexicon"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Sample builds the CLI and prints ten words from rules/sample.lex.
func Sample() error {
	mg.Deps(Init, Build)
	return sh.RunV(filepath.Join(binDir, binName), "generate", "--caps", "-n", "10", filepath.Join("rules", "sample.lex"))
}

// Catalog builds the CLI and indexes the rules directory.
func Catalog() error {
	mg.Deps(Init, Build)
	return sh.RunV(filepath.Join(binDir, binName), "catalog", "index")
}

// Stats prints project metrics: Go production/test LOC and rule file count.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}
	ruleFiles, err := countRuleFiles("rules")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Rule files:                      %d\n", ruleFiles)
	return nil
}

// countGoLines walks the directory tree and counts non-blank lines in Go files.
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), "_") || (d.Name() != "." && strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				total++
			}
		}
		return nil
	})
	return total, err
}

// countRuleFiles counts .lex, .rules and .txt files under root.
func countRuleFiles(root string) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		switch filepath.Ext(path) {
		case ".lex", ".rules", ".txt":
			if !d.IsDir() {
				total++
			}
		}
		return nil
	})
	return total, err
}
