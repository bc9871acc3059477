// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rules

import (
	"slices"

	"github.com/pdiddy/lexicon/pkg/types"
)

// Group is a named, ordered list of tokens. Groups inside a Plan are never
// modified after compilation.
type Group struct {
	name   string
	tokens []string
}

// Name returns the group name. The space rule is named " ".
func (g Group) Name() string { return g.name }

// Len returns the number of tokens, counting repeats.
func (g Group) Len() int { return len(g.tokens) }

// Token returns the i-th token.
func (g Group) Token(i int) string { return g.tokens[i] }

// Tokens returns a copy of the token list.
func (g Group) Tokens() []string { return slices.Clone(g.tokens) }

// spaceGroup backs the "_" chain sentinel.
var spaceGroup = Group{name: " ", tokens: []string{" "}}

// ChainEntry is one position of the generation chain.
type ChainEntry struct {
	group  Group
	chance int
}

// Group returns the group sampled at this position.
func (e ChainEntry) Group() Group { return e.group }

// Chance returns the inclusion probability in percent, 1-100.
func (e ChainEntry) Chance() int { return e.chance }

// IsSpace reports whether the entry is the built-in space rule.
func (e ChainEntry) IsSpace() bool { return e.group.name == spaceGroup.name }

// Plan is a compiled rule set: the resolved chain plus the capitalization
// flag. A Plan is immutable and safe to share across goroutines.
type Plan struct {
	chain  []ChainEntry
	groups map[string]Group
	caps   bool
}

// Chain returns the chain entries in generation order.
func (p *Plan) Chain() []ChainEntry { return slices.Clone(p.chain) }

// Len returns the number of chain entries.
func (p *Plan) Len() int { return len(p.chain) }

// Entry returns the i-th chain entry.
func (p *Plan) Entry(i int) ChainEntry { return p.chain[i] }

// Caps reports whether generated words are capitalized.
func (p *Plan) Caps() bool { return p.caps }

// Group looks up a declared group by name.
func (p *Plan) Group(name string) (Group, bool) {
	g, ok := p.groups[name]
	return g, ok
}

// GroupNames returns the declared group names in sorted order.
func (p *Plan) GroupNames() []string {
	names := make([]string, 0, len(p.groups))
	for name := range p.groups {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Summary returns a serializable description of the plan.
func (p *Plan) Summary() types.PlanSummary {
	s := types.PlanSummary{
		Caps:   p.caps,
		Groups: make(map[string][]string, len(p.groups)),
		Chain:  make([]types.ChainEntrySummary, len(p.chain)),
	}
	for name, g := range p.groups {
		s.Groups[name] = g.Tokens()
	}
	for i, e := range p.chain {
		s.Chain[i] = types.ChainEntrySummary{
			Group:  e.group.name,
			Chance: e.chance,
			Tokens: e.group.Len(),
		}
	}
	return s
}
