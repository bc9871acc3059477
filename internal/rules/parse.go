// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rules compiles lexicon rule source into an immutable generation
// plan.
//
// Rule source is line oriented. A header line "[name]" opens a syllable
// group; the following content lines are whitespace-separated tokens added
// to that group, where "3 ka" adds "ka" three times. The reserved header
// "[syllable]" declares the chain: its single content line lists group names
// in generation order, each optionally preceded by a percentage (1-100) and
// with "_" standing for a literal space. Text from "#" to the end of a line
// is a comment; "\#" is a literal "#".
package rules

import (
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

const (
	// chainHeader is the reserved header that declares the chain.
	chainHeader = "syllable"

	// spaceToken is the chain sentinel for the built-in space rule.
	spaceToken = "_"

	// defaultChance applies to chain entries without a percentage.
	defaultChance = 100

	// MaxRepeat bounds the repeat count of a single group token.
	MaxRepeat = 10000
)

var headerRE = regexp.MustCompile(`^\[(.+?)\](.*)$`)

// DirectiveKind classifies header names and chain tokens.
type DirectiveKind int

const (
	// NamedGroup refers to a user-declared syllable group.
	NamedGroup DirectiveKind = iota
	// ChainDeclaration is the [syllable] header.
	ChainDeclaration
	// SpaceRule is the "_" chain token.
	SpaceRule
)

// Directive is a classified header name or chain token.
type Directive struct {
	Kind DirectiveKind
	Name string
}

func headerDirective(name string) Directive {
	if name == chainHeader {
		return Directive{Kind: ChainDeclaration, Name: name}
	}
	return Directive{Kind: NamedGroup, Name: name}
}

func chainDirective(tok string) Directive {
	if tok == spaceToken {
		return Directive{Kind: SpaceRule, Name: tok}
	}
	return Directive{Kind: NamedGroup, Name: tok}
}

// Option configures compilation.
type Option func(*parser)

// WithCaps sets whether the compiled plan capitalizes generated words.
func WithCaps(caps bool) Option {
	return func(p *parser) { p.caps = caps }
}

// WithLogger receives line diagnostics (Debug) and one record per resolved
// chain entry (Info). A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(p *parser) {
		if l != nil {
			p.log = l
		}
	}
}

type parseState int

const (
	stateNoGroup parseState = iota
	stateInGroup
	stateInChainDecl
)

type parser struct {
	state parseState
	group string

	groups map[string][]string

	// chain holds the last [syllable] content line.
	chain      []string
	chainLine  int
	headerLine int

	caps bool
	log  *slog.Logger
}

// Parse compiles rule source given as lines. It stops at the first error
// and returns a *ParseError.
func Parse(lines []string, opts ...Option) (*Plan, error) {
	p := &parser{
		groups: make(map[string][]string),
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}

	for i, raw := range lines {
		if err := p.line(i+1, raw); err != nil {
			return nil, err
		}
	}
	if p.state == stateInChainDecl {
		return nil, newParseError(EmptyChainLine, p.headerLine, "")
	}
	if p.chain == nil {
		return nil, newParseError(MissingChainDeclaration, 0, "")
	}
	return p.resolve()
}

// ParseText compiles rule source held in a string.
func ParseText(text string, opts ...Option) (*Plan, error) {
	return Parse(strings.Split(text, "\n"), opts...)
}

// ParseReader compiles rule source read from r.
func ParseReader(r io.Reader, opts ...Option) (*Plan, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseText(string(data), opts...)
}

func (p *parser) line(n int, raw string) error {
	line := strings.TrimSpace(stripComment(raw))

	if m := headerRE.FindStringSubmatch(line); m != nil {
		if err := p.header(n, m[1]); err != nil {
			return err
		}
		line = strings.TrimSpace(m[2])
	}
	if line == "" {
		return nil
	}

	fields := strings.Fields(line)
	switch p.state {
	case stateInGroup:
		p.log.Debug("content", "line", n, "group", p.group, "tokens", len(fields))
		return p.addTokens(n, fields)
	case stateInChainDecl:
		p.log.Debug("chain", "line", n, "tokens", len(fields))
		p.chain = fields
		p.chainLine = n
		p.state = stateNoGroup
		return nil
	default:
		return newParseError(ContentOutsideGroup, n, "%s", line)
	}
}

func (p *parser) header(n int, name string) error {
	if p.state == stateInChainDecl {
		return newParseError(EmptyChainLine, p.headerLine, "")
	}
	p.log.Debug("header", "line", n, "name", name)

	d := headerDirective(name)
	switch d.Kind {
	case ChainDeclaration:
		p.state = stateInChainDecl
		p.group = ""
		p.headerLine = n
	default:
		p.state = stateInGroup
		p.group = d.Name
		if _, ok := p.groups[d.Name]; !ok {
			p.groups[d.Name] = nil
		}
	}
	return nil
}

// addTokens appends fields to the current group. A numeric field n adds the
// following field n times and consumes it; a trailing number adds nothing.
func (p *parser) addTokens(n int, fields []string) error {
	toks := p.groups[p.group]
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if !startsWithDigit(f) {
			toks = append(toks, f)
			continue
		}

		count, ok := leadingInt(f)
		switch {
		case !ok || count > MaxRepeat:
			return newParseError(RepeatCountTooLarge, n, "%s (max %d)", f, MaxRepeat)
		case count == 0:
			return newParseError(ZeroRepeatCount, n, "%s", strings.Join(fields, " "))
		}
		if i+1 >= len(fields) {
			continue
		}
		i++
		for range count {
			toks = append(toks, fields[i])
		}
	}
	p.groups[p.group] = toks
	return nil
}

func (p *parser) resolve() (*Plan, error) {
	plan := &Plan{
		groups: make(map[string]Group, len(p.groups)),
		caps:   p.caps,
	}
	for name, toks := range p.groups {
		plan.groups[name] = Group{name: name, tokens: toks}
	}

	decl := p.chain
	for i := 0; i < len(decl); i++ {
		chance := defaultChance
		tok := decl[i]

		if startsWithDigit(tok) {
			pct, ok := leadingInt(tok)
			if !ok || pct < 1 || pct > 100 {
				return nil, newParseError(InvalidPercentage, p.chainLine, "%s is outside 1-100", tok)
			}
			if i+1 >= len(decl) {
				return nil, newParseError(InvalidPercentage, p.chainLine, "%s is not followed by a group", tok)
			}
			chance = pct
			i++
			tok = decl[i]
		}

		var g Group
		d := chainDirective(tok)
		switch d.Kind {
		case SpaceRule:
			g = spaceGroup
		default:
			found, ok := plan.groups[d.Name]
			if !ok {
				return nil, newParseError(UnknownGroupReference, p.chainLine, "%s", d.Name)
			}
			if found.Len() == 0 {
				return nil, newParseError(EmptyGroup, p.chainLine, "%s", d.Name)
			}
			g = found
		}

		plan.chain = append(plan.chain, ChainEntry{group: g, chance: chance})
		p.log.Info("chain entry", "group", g.name, "chance", chance, "tokens", g.Len())
	}

	return plan, nil
}

// stripComment removes everything from the first unescaped '#'. An escaped
// "\#" is kept as a literal '#'.
func stripComment(s string) string {
	if !strings.Contains(s, "#") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == '#':
			b.WriteByte('#')
			i++
		case s[i] == '#':
			return b.String()
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// leadingInt parses the run of leading ASCII digits of s, so "80x" is 80.
// ok is false when the digits overflow an int.
func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
