// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source reads rule text from files, strings, and HTTP URLs.
package source

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/pdiddy/lexicon/internal/httputil"
	"github.com/pdiddy/lexicon/pkg/types"
)

// Source provides rule text as lines. Implementations are read-only and
// may be read any number of times (once per compile or reload).
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string

	// Lines returns the full text split into lines without terminators.
	Lines(ctx context.Context) ([]string, error)
}

// File returns a Source reading the file at path.
func File(path string) Source { return fileSource{path: path} }

type fileSource struct{ path string }

func (f fileSource) Name() string { return f.path }

func (f fileSource) Lines(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("reading rules %s: %w", f.path, err)
	}
	return splitLines(data), nil
}

// String returns a Source over in-memory text.
func String(name, text string) Source { return stringSource{name: name, text: text} }

type stringSource struct{ name, text string }

func (s stringSource) Name() string { return s.name }

func (s stringSource) Lines(_ context.Context) ([]string, error) {
	return splitLines([]byte(s.text)), nil
}

// URL returns a Source fetching rawURL over HTTP on every read.
func URL(rawURL string, cfg types.HTTPConfig) Source {
	return urlSource{
		url:    rawURL,
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type urlSource struct {
	url    string
	cfg    types.HTTPConfig
	client *http.Client
}

func (u urlSource) Name() string { return u.url }

func (u urlSource) Lines(ctx context.Context) ([]string, error) {
	data, err := httputil.Fetch(ctx, u.client, u.url, u.cfg.UserAgent, u.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("fetching rules: %w", err)
	}
	return splitLines(data), nil
}

// Open picks a Source for ref: URL for http(s) references, File otherwise.
func Open(ref string, cfg types.HTTPConfig) Source {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return URL(ref, cfg)
	}
	return File(ref)
}

// splitLines splits data on '\n', dropping a UTF-8 byte order mark, a
// trailing '\r' on each line, and the empty tail after a final newline.
func splitLines(data []byte) []string {
	text := strings.TrimPrefix(string(data), "\ufeff")
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
