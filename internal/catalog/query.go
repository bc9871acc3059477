// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pdiddy/lexicon/pkg/types"
)

const selectColumns = `SELECT name, path, mod_time, status, error, error_line, chain, group_count, token_count FROM rulesets`

// List returns cataloged rule sets sorted by name. A non-empty status
// filters by compile status.
func (s *Store) List(ctx context.Context, status types.RuleSetStatus) ([]types.RuleSet, error) {
	query := selectColumns
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying rule sets: %w", err)
	}
	defer rows.Close()

	var out []types.RuleSet
	for rows.Next() {
		rs, err := scanRuleSet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

// Lookup returns the rule set named name, or ErrNotFound.
func (s *Store) Lookup(ctx context.Context, name string) (types.RuleSet, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE name = ?`, name)
	rs, err := scanRuleSet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.RuleSet{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return rs, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRuleSet(sc scanner) (types.RuleSet, error) {
	var (
		rs        types.RuleSet
		modTime   string
		status    string
		errMsg    sql.NullString
		errLine   sql.NullInt64
		chainJSON sql.NullString
		groups    sql.NullInt64
		tokens    sql.NullInt64
	)
	if err := sc.Scan(&rs.Name, &rs.Path, &modTime, &status, &errMsg, &errLine,
		&chainJSON, &groups, &tokens); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rs, err
		}
		return rs, fmt.Errorf("scanning rule set: %w", err)
	}

	rs.Status = types.RuleSetStatus(status)
	rs.Error = errMsg.String
	rs.ErrorLine = int(errLine.Int64)
	rs.Groups = int(groups.Int64)
	rs.Tokens = int(tokens.Int64)
	if t, err := time.Parse(time.RFC3339Nano, modTime); err == nil {
		rs.ModTime = t
	}
	if chainJSON.Valid && chainJSON.String != "" && chainJSON.String != "null" {
		if err := json.Unmarshal([]byte(chainJSON.String), &rs.Chain); err != nil {
			return rs, fmt.Errorf("decoding chain of %s: %w", rs.Name, err)
		}
	}
	return rs, nil
}
