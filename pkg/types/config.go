// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds settings for rule sources fetched over HTTP.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "lexicon/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries is the number of retries on 429 and 503 responses (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// GeneratorConfig holds settings for word generation.
type GeneratorConfig struct {
	// Rules is a rule file path, an http(s) URL, or a catalog name.
	Rules string `json:"rules" yaml:"rules" mapstructure:"rules"`

	// Caps uppercases the first character of every generated word.
	Caps bool `json:"caps" yaml:"caps" mapstructure:"caps"`

	// Verbose logs parser diagnostics and the resolved chain.
	Verbose bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`

	// Count is the number of words to generate per run (default 1).
	Count int `json:"count" yaml:"count" mapstructure:"count"`

	// Seed makes generation reproducible. Zero means a random seed.
	Seed uint64 `json:"seed" yaml:"seed" mapstructure:"seed"`
}

// CatalogConfig holds settings for the rule catalog.
type CatalogConfig struct {
	// Dir is the directory holding the catalog database and exports.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// RulesDir is the directory scanned for rule files.
	RulesDir string `json:"rules_dir" yaml:"rules_dir" mapstructure:"rules_dir"`
}

// Config groups all settings read from lexicon.yaml and the environment.
type Config struct {
	Generator GeneratorConfig `json:"generator" yaml:"generator" mapstructure:",squash"`
	Catalog   CatalogConfig   `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	HTTP      HTTPConfig      `json:"http" yaml:"http" mapstructure:"http"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Generator: GeneratorConfig{Count: 1},
		Catalog: CatalogConfig{
			Dir:      "catalog",
			RulesDir: "rules",
		},
		HTTP: HTTPConfig{
			Timeout:    30 * time.Second,
			UserAgent:  "lexicon/dev",
			MaxRetries: 5,
		},
	}
}
