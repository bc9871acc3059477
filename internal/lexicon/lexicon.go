// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lexicon generates words from compiled rule plans.
//
// A Lexicon owns the current plan for one rule source. Generate may be
// called from many goroutines; Reload recompiles the source and swaps the
// plan atomically, so a generation in progress finishes against the plan
// it started with.
package lexicon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/lexicon/internal/rules"
	"github.com/pdiddy/lexicon/internal/source"
)

// ErrNoSource is returned by Reload on a Lexicon built from a plan.
var ErrNoSource = errors.New("lexicon has no rule source")

// Lexicon generates words from the plan compiled from its source.
type Lexicon struct {
	src  source.Source
	rnd  Rand
	log  *slog.Logger
	caps bool

	plan atomic.Pointer[rules.Plan]

	// reloadMu serializes Reload calls.
	reloadMu sync.Mutex
}

// Option configures a Lexicon.
type Option func(*Lexicon)

// WithRand sets the random provider. The default draws from the
// runtime-seeded global source.
func WithRand(r Rand) Option {
	return func(l *Lexicon) {
		if r != nil {
			l.rnd = r
		}
	}
}

// WithCaps capitalizes generated words. It applies to plans compiled by
// New and Reload.
func WithCaps(caps bool) Option {
	return func(l *Lexicon) { l.caps = caps }
}

// WithLogger receives compiler diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(l *Lexicon) {
		if log != nil {
			l.log = log
		}
	}
}

func newLexicon(src source.Source, opts []Option) *Lexicon {
	l := &Lexicon{
		src: src,
		rnd: globalRand{},
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// New compiles src and returns a Lexicon ready to generate. Parse failures
// are returned as *rules.ParseError wrapped with the source name.
func New(ctx context.Context, src source.Source, opts ...Option) (*Lexicon, error) {
	l := newLexicon(src, opts)
	if _, err := l.Reload(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// FromPlan returns a Lexicon over an already compiled plan. Reload on the
// result returns ErrNoSource; WithCaps is ignored in favor of plan.Caps().
func FromPlan(plan *rules.Plan, opts ...Option) *Lexicon {
	l := newLexicon(nil, opts)
	l.plan.Store(plan)
	return l
}

// Plan returns the current plan snapshot.
func (l *Lexicon) Plan() *rules.Plan { return l.plan.Load() }

// Source returns the rule source, or nil for a Lexicon built from a plan.
func (l *Lexicon) Source() source.Source { return l.src }

// Reload recompiles the source and replaces the plan. On failure the
// previous plan stays in place.
func (l *Lexicon) Reload(ctx context.Context) (*rules.Plan, error) {
	if l.src == nil {
		return nil, ErrNoSource
	}

	l.reloadMu.Lock()
	defer l.reloadMu.Unlock()

	lines, err := l.src.Lines(ctx)
	if err != nil {
		return nil, err
	}
	plan, err := rules.Parse(lines,
		rules.WithCaps(l.caps),
		rules.WithLogger(l.log.With("source", l.src.Name())),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.src.Name(), err)
	}

	l.plan.Store(plan)
	return plan, nil
}

// Generate returns one word from the current plan.
func (l *Lexicon) Generate() string {
	return Generate(l.plan.Load(), l.rnd)
}

// GenerateN returns n independently generated words.
func (l *Lexicon) GenerateN(n int) []string {
	plan := l.plan.Load()
	words := make([]string, 0, max(n, 0))
	for range n {
		words = append(words, Generate(plan, l.rnd))
	}
	return words
}

// Generate builds one word from plan: each chain entry contributes a
// uniformly chosen token with probability Chance()/100. Underscores in
// tokens become spaces. With plan.Caps() the first character is
// uppercased.
func Generate(plan *rules.Plan, r Rand) string {
	var b strings.Builder
	for i := range plan.Len() {
		b.WriteString(choose(plan.Entry(i), r))
	}

	word := b.String()
	if plan.Caps() {
		word = capitalize(word)
	}
	return word
}

func choose(e rules.ChainEntry, r Rand) string {
	if percent(r) > e.Chance() {
		return ""
	}
	g := e.Group()
	return strings.ReplaceAll(g.Token(r.IntN(g.Len())), "_", " ")
}

// capitalize uppercases the first character of s and leaves the rest as is.
func capitalize(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return cases.Upper(language.Und).String(s[:size]) + s[size:]
}
