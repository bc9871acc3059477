// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RuleSetStatus records whether a cataloged rule file compiled.
type RuleSetStatus string

const (
	RuleSetOK     RuleSetStatus = "ok"
	RuleSetFailed RuleSetStatus = "failed"
)

// RuleSet is the catalog record for one rule file.
type RuleSet struct {
	// Name is the file name without extension (e.g. "elvish").
	Name string `json:"name" yaml:"name"`

	// Path is the filesystem path the rules were read from.
	Path string `json:"path" yaml:"path"`

	// ModTime is the file modification time at indexing.
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`

	Status RuleSetStatus `json:"status" yaml:"status"`

	// Error holds the parse error message when Status is failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// ErrorLine is the 1-based line of the parse error, 0 if unknown.
	ErrorLine int `json:"error_line,omitempty" yaml:"error_line,omitempty"`

	// Chain lists the group names of the resolved chain in order.
	Chain []string `json:"chain,omitempty" yaml:"chain,omitempty"`

	Groups int `json:"groups" yaml:"groups"`
	Tokens int `json:"tokens" yaml:"tokens"`
}
