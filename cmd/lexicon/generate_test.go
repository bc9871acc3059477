// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lexicon/internal/catalog"
	"github.com/pdiddy/lexicon/internal/lexicon"
	"github.com/pdiddy/lexicon/internal/source"
	"github.com/pdiddy/lexicon/pkg/types"
)

func TestRunInteractive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.lex")
	require.NoError(t, os.WriteFile(path, []byte("[a]\nold\n[syllable]\na\n"), 0o644))

	lex, err := lexicon.New(context.Background(), source.File(path))
	require.NoError(t, err)

	// Rewrite the file before the session; only "r" picks it up.
	require.NoError(t, os.WriteFile(path, []byte("[a]\nnew\n[syllable]\na\n"), 0o644))

	in := strings.NewReader("\n2\nbogus\nr\n\nq\n\n")
	var out, errOut strings.Builder
	require.NoError(t, runInteractive(context.Background(), lex, in, &out, &errOut))

	assert.Equal(t, "old\nold\nold\nnew\n", out.String())
	assert.Contains(t, errOut.String(), `unknown command "bogus"`)
	assert.Contains(t, errOut.String(), "rules reloaded")
}

func TestRunInteractiveReloadFailureKeepsPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.lex")
	require.NoError(t, os.WriteFile(path, []byte("[a]\nx\n[syllable]\na\n"), 0o644))

	lex, err := lexicon.New(context.Background(), source.File(path))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("[a]\nx\n[syllable]\nb\n"), 0o644))

	var out, errOut strings.Builder
	require.NoError(t, runInteractive(context.Background(), lex, strings.NewReader("r\n\n"), &out, &errOut))

	assert.Equal(t, "x\n", out.String())
	assert.Contains(t, errOut.String(), "reload failed")
	assert.Contains(t, errOut.String(), "no syllable group matches: b")
}

func TestResolveSource(t *testing.T) {
	tmpDir := t.TempDir()
	rulesDir := filepath.Join(tmpDir, "rules")
	require.NoError(t, os.MkdirAll(rulesDir, 0o755))
	path := filepath.Join(rulesDir, "elvish.lex")
	require.NoError(t, os.WriteFile(path, []byte("[a]\nx\n[syllable]\na\n"), 0o644))

	cfg := types.DefaultConfig()
	cfg.Catalog = types.CatalogConfig{Dir: filepath.Join(tmpDir, "catalog"), RulesDir: rulesDir}
	ctx := context.Background()

	src, err := resolveSource(ctx, path, cfg)
	require.NoError(t, err)
	assert.Equal(t, path, src.Name())

	src, err = resolveSource(ctx, "https://example.com/x.lex", cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/x.lex", src.Name())

	_, err = resolveSource(ctx, "elvish", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in the catalog")

	store, err := catalog.NewStore(cfg.Catalog)
	require.NoError(t, err)
	var buf strings.Builder
	_, err = store.Index(ctx, &buf)
	require.NoError(t, err)
	store.Close()

	src, err = resolveSource(ctx, "elvish", cfg)
	require.NoError(t, err)
	assert.Equal(t, path, src.Name())
}
