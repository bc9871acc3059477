// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ChainEntrySummary describes one resolved position of a generation chain.
type ChainEntrySummary struct {
	// Group is the syllable group name, or " " for the space rule.
	Group string `json:"group" yaml:"group"`

	// Chance is the inclusion probability in percent (1-100).
	Chance int `json:"chance" yaml:"chance"`

	// Tokens is the number of tokens the entry samples from.
	Tokens int `json:"tokens" yaml:"tokens"`
}

// PlanSummary is a serializable view of a compiled generation plan.
type PlanSummary struct {
	Caps   bool                `json:"caps" yaml:"caps"`
	Groups map[string][]string `json:"groups" yaml:"groups"`
	Chain  []ChainEntrySummary `json:"chain" yaml:"chain"`
}
