// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps a SQLite index of the rule files in a directory so
// rule sets can be listed, looked up by name, and exported.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/lexicon/internal/rules"
	"github.com/pdiddy/lexicon/internal/source"
	"github.com/pdiddy/lexicon/pkg/types"
)

const dbFile = "catalog.db"

// ErrNotFound is returned by Lookup for unknown rule set names.
var ErrNotFound = errors.New("rule set not found")

// Store manages the catalog database.
type Store struct {
	db       *sql.DB
	dir      string
	rulesDir string
}

// NewStore opens or creates the catalog database at cfg.Dir/catalog.db and
// creates the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: cfg.Dir, rulesDir: cfg.RulesDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS rulesets (
			name TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			mod_time TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			error_line INTEGER,
			chain TEXT,
			group_count INTEGER,
			token_count INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rulesets_status ON rulesets(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IndexSummary holds counts from an indexing run.
type IndexSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
	Removed int
}

// Total returns the number of rule files seen.
func (s IndexSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Index compiles every rule file in the rules directory and records the
// result. Files whose modification time matches the stored record are
// skipped. Files that fail to compile are recorded as failed with their
// parse error. Records whose file disappeared are removed. Progress lines
// go to w.
func (s *Store) Index(ctx context.Context, w io.Writer) (IndexSummary, error) {
	paths, err := source.Discover(s.rulesDir)
	if err != nil {
		return IndexSummary{}, err
	}

	var summary IndexSummary
	present := make(map[string]bool, len(paths))

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		name := source.RuleName(path)
		present[name] = true

		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC()

		var storedModTime, storedPath string
		err = s.db.QueryRowContext(ctx,
			`SELECT mod_time, path FROM rulesets WHERE name = ?`, name,
		).Scan(&storedModTime, &storedPath)
		if err == nil && storedPath == path && storedModTime == modTime.Format(time.RFC3339Nano) {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		rs, err := compile(ctx, path, name, modTime)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		if err := s.upsert(ctx, rs); err != nil {
			return summary, err
		}

		switch {
		case rs.Status == types.RuleSetFailed:
			fmt.Fprintf(w, "failed  %s: %s\n", name, rs.Error)
			summary.Failed++
		case isUpdate:
			fmt.Fprintf(w, "updated %s (%d groups, %d tokens)\n", name, rs.Groups, rs.Tokens)
			summary.Updated++
		default:
			fmt.Fprintf(w, "indexed %s (%d groups, %d tokens)\n", name, rs.Groups, rs.Tokens)
			summary.Indexed++
		}
	}

	removed, err := s.prune(ctx, present)
	if err != nil {
		return summary, err
	}
	for _, name := range removed {
		fmt.Fprintf(w, "removed %s\n", name)
	}
	summary.Removed = len(removed)

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d, removed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed, summary.Removed)

	if summary.Indexed > 0 || summary.Updated > 0 || summary.Removed > 0 {
		if err := s.ExportYAML(ctx); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}

	return summary, nil
}

// compile reads and compiles one rule file. A parse error becomes a failed
// record; only read errors are returned.
func compile(ctx context.Context, path, name string, modTime time.Time) (types.RuleSet, error) {
	rs := types.RuleSet{Name: name, Path: path, ModTime: modTime}

	lines, err := source.File(path).Lines(ctx)
	if err != nil {
		return rs, err
	}

	plan, err := rules.Parse(lines)
	if err != nil {
		var pe *rules.ParseError
		if !errors.As(err, &pe) {
			return rs, err
		}
		rs.Status = types.RuleSetFailed
		rs.Error = pe.Msg
		rs.ErrorLine = pe.Line
		return rs, nil
	}

	rs.Status = types.RuleSetOK
	rs.Groups = len(plan.GroupNames())
	for _, name := range plan.GroupNames() {
		g, _ := plan.Group(name)
		rs.Tokens += g.Len()
	}
	for _, e := range plan.Chain() {
		if e.IsSpace() {
			rs.Chain = append(rs.Chain, "_")
			continue
		}
		rs.Chain = append(rs.Chain, e.Group().Name())
	}
	return rs, nil
}

func (s *Store) upsert(ctx context.Context, rs types.RuleSet) error {
	chainJSON, _ := json.Marshal(rs.Chain)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rulesets (name, path, mod_time, status, error, error_line, chain, group_count, token_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			path=excluded.path, mod_time=excluded.mod_time, status=excluded.status,
			error=excluded.error, error_line=excluded.error_line, chain=excluded.chain,
			group_count=excluded.group_count, token_count=excluded.token_count`,
		rs.Name, rs.Path, rs.ModTime.UTC().Format(time.RFC3339Nano), string(rs.Status),
		rs.Error, rs.ErrorLine, string(chainJSON), rs.Groups, rs.Tokens,
	)
	if err != nil {
		return fmt.Errorf("upserting rule set %s: %w", rs.Name, err)
	}
	return nil
}

// prune deletes records whose name is not in present and returns them.
func (s *Store) prune(ctx context.Context, present map[string]bool) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM rulesets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing rule sets: %w", err)
	}
	var stale []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning rule set: %w", err)
		}
		if !present[name] {
			stale = append(stale, name)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, name := range stale {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM rulesets WHERE name = ?`, name); err != nil {
			return nil, fmt.Errorf("removing rule set %s: %w", name, err)
		}
	}
	return stale, nil
}
