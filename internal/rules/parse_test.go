// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rules

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRules = `# Simple two-syllable names.
[cons]
t k p
[vowel]
a i u   # trailing comment
[syllable]
cons vowel
`

func TestParseSample(t *testing.T) {
	plan, err := ParseText(sampleRules)
	require.NoError(t, err)

	require.Equal(t, 2, plan.Len())
	assert.Equal(t, "cons", plan.Entry(0).Group().Name())
	assert.Equal(t, []string{"t", "k", "p"}, plan.Entry(0).Group().Tokens())
	assert.Equal(t, 100, plan.Entry(0).Chance())
	assert.Equal(t, "vowel", plan.Entry(1).Group().Name())
	assert.Equal(t, []string{"a", "i", "u"}, plan.Entry(1).Group().Tokens())
	assert.False(t, plan.Caps())
	assert.Equal(t, []string{"cons", "vowel"}, plan.GroupNames())
}

func TestParseRepeatExpansion(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"prefix repeats following token", "3 foo bar", []string{"foo", "foo", "foo", "bar"}},
		{"one is a single copy", "1 foo", []string{"foo"}},
		{"trailing number adds nothing", "foo 4", []string{"foo"}},
		{"repeated token may be numeric", "2 7 foo", []string{"7", "7", "foo"}},
		{"digits then text count as number", "2x foo", []string{"foo", "foo"}},
		{"several prefixes", "2 a b 3 c", []string{"a", "a", "b", "c", "c", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := ParseText("[g]\n" + tt.line + "\n[syllable]\ng\n")
			require.NoError(t, err)
			g, ok := plan.Group("g")
			require.True(t, ok)
			assert.Equal(t, tt.want, g.Tokens())
		})
	}
}

func TestParseHeaderTrailingText(t *testing.T) {
	plan, err := ParseText("[a] x y\n[b]z\n[syllable] a b\n")
	require.NoError(t, err)

	a, _ := plan.Group("a")
	b, _ := plan.Group("b")
	assert.Equal(t, []string{"x", "y"}, a.Tokens())
	assert.Equal(t, []string{"z"}, b.Tokens())
	assert.Equal(t, 2, plan.Len())
}

func TestParseGroupsAccumulate(t *testing.T) {
	src := "[a]\nx\n\n   \ny\n[b]\nq\n[a]\nz\n[syllable]\na b\n"
	plan, err := ParseText(src)
	require.NoError(t, err)

	a, _ := plan.Group("a")
	assert.Equal(t, []string{"x", "y", "z"}, a.Tokens())
}

func TestParseChainPercentages(t *testing.T) {
	src := "[a]\nx\n[b]\ny\n[syllable]\n80 a _ 1 b 100 _\n"
	plan, err := ParseText(src)
	require.NoError(t, err)

	chain := plan.Chain()
	require.Len(t, chain, 4)

	assert.Equal(t, "a", chain[0].Group().Name())
	assert.Equal(t, 80, chain[0].Chance())

	assert.True(t, chain[1].IsSpace())
	assert.Equal(t, 100, chain[1].Chance())
	assert.Equal(t, []string{" "}, chain[1].Group().Tokens())

	assert.Equal(t, "b", chain[2].Group().Name())
	assert.Equal(t, 1, chain[2].Chance())

	assert.True(t, chain[3].IsSpace())
	assert.Equal(t, 100, chain[3].Chance())
}

func TestParseLastChainLineWins(t *testing.T) {
	src := "[a]\nx\n[b]\ny\n[syllable]\na\n[syllable]\nb a\n"
	plan, err := ParseText(src)
	require.NoError(t, err)
	require.Equal(t, 2, plan.Len())
	assert.Equal(t, "b", plan.Entry(0).Group().Name())
}

func TestParseChainBeforeGroups(t *testing.T) {
	plan, err := ParseText("[syllable]\na\n[a]\nx\n")
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Len())
}

func TestParseCaps(t *testing.T) {
	plan, err := ParseText(sampleRules, WithCaps(true))
	require.NoError(t, err)
	assert.True(t, plan.Caps())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		kind     ErrorKind
		sentinel error
		line     int
	}{
		{
			name: "no chain declaration", src: "[a]\nx\n",
			kind: MissingChainDeclaration, sentinel: ErrMissingChainDeclaration, line: 0,
		},
		{
			name: "empty source", src: "",
			kind: MissingChainDeclaration, sentinel: ErrMissingChainDeclaration, line: 0,
		},
		{
			name: "chain header at end of input", src: "[a]\nx\n[syllable]\n",
			kind: EmptyChainLine, sentinel: ErrEmptyChainLine, line: 3,
		},
		{
			name: "chain header with only a comment", src: "[a]\nx\n[syllable] # none\n\n",
			kind: EmptyChainLine, sentinel: ErrEmptyChainLine, line: 3,
		},
		{
			name: "chain header followed by header", src: "[syllable]\n[a]\nx\n",
			kind: EmptyChainLine, sentinel: ErrEmptyChainLine, line: 1,
		},
		{
			name: "content before any header", src: "x y\n[a]\nx\n[syllable]\na\n",
			kind: ContentOutsideGroup, sentinel: ErrContentOutsideGroup, line: 1,
		},
		{
			name: "content after chain line", src: "[a]\nx\n[syllable]\na\nstray\n",
			kind: ContentOutsideGroup, sentinel: ErrContentOutsideGroup, line: 5,
		},
		{
			name: "zero repeat count", src: "[a]\nx 0 y\n[syllable]\na\n",
			kind: ZeroRepeatCount, sentinel: ErrZeroRepeatCount, line: 2,
		},
		{
			name: "huge repeat count", src: "[a]\n99999999999999999999999 y\n[syllable]\na\n",
			kind: RepeatCountTooLarge, sentinel: ErrRepeatCountTooLarge, line: 2,
		},
		{
			name: "percentage zero", src: "[a]\nx\n[syllable]\n0 a\n",
			kind: InvalidPercentage, sentinel: ErrInvalidPercentage, line: 4,
		},
		{
			name: "percentage over 100", src: "[a]\nx\n[syllable]\n101 a\n",
			kind: InvalidPercentage, sentinel: ErrInvalidPercentage, line: 4,
		},
		{
			name: "percentage without group", src: "[a]\nx\n[syllable]\na 50\n",
			kind: InvalidPercentage, sentinel: ErrInvalidPercentage, line: 4,
		},
		{
			name: "unknown group", src: "[a]\nx\n[syllable]\na b\n",
			kind: UnknownGroupReference, sentinel: ErrUnknownGroupReference, line: 4,
		},
		{
			name: "percentage followed by percentage", src: "[a]\nx\n[syllable]\n50 60 a\n",
			kind: UnknownGroupReference, sentinel: ErrUnknownGroupReference, line: 4,
		},
		{
			name: "declared group without tokens", src: "[a]\n[b]\ny\n[syllable]\na b\n",
			kind: EmptyGroup, sentinel: ErrEmptyGroup, line: 5,
		},
		{
			name: "group holding only a trailing count", src: "[a]\n5\n[syllable]\na\n",
			kind: EmptyGroup, sentinel: ErrEmptyGroup, line: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := ParseText(tt.src)
			require.Error(t, err)
			assert.Nil(t, plan)

			var pe *ParseError
			require.True(t, errors.As(err, &pe), "want *ParseError, got %T", err)
			assert.Equal(t, tt.kind, pe.Kind, "kind %s", pe.Kind)
			assert.Equal(t, tt.line, pe.Line)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := ParseText("[a]\nx\n[syllable]\na nope\n")
	require.Error(t, err)
	assert.Equal(t, "line 4: no syllable group matches: nope", err.Error())

	_, err = ParseText("[a]\nx\n")
	require.Error(t, err)
	assert.Equal(t, "no syllables given", err.Error())
}

func TestStripComment(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a b c", "a b c"},
		{"a b # c", "a b "},
		{"# all comment", ""},
		{`a\#b c`, "a#b c"},
		{`a\#b # c`, "a#b "},
		{`a\b`, `a\b`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripComment(tt.in), "stripComment(%q)", tt.in)
	}
}

func TestParseEscapedHashToken(t *testing.T) {
	plan, err := ParseText("[a]\nx\\#y # tail\n[syllable]\na\n")
	require.NoError(t, err)
	a, _ := plan.Group("a")
	assert.Equal(t, []string{"x#y"}, a.Tokens())
}

func TestParseCRLF(t *testing.T) {
	plan, err := ParseText("[a]\r\nx y\r\n[syllable]\r\na\r\n")
	require.NoError(t, err)
	a, _ := plan.Group("a")
	assert.Equal(t, []string{"x", "y"}, a.Tokens())
}

func TestParseReader(t *testing.T) {
	plan, err := ParseReader(strings.NewReader(sampleRules))
	require.NoError(t, err)
	assert.Equal(t, 2, plan.Len())
}

func TestParseLogsChainEntries(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := ParseText(sampleRules, WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `msg="chain entry" group=cons chance=100 tokens=3`)
	assert.Contains(t, out, `msg="chain entry" group=vowel chance=100 tokens=3`)
	assert.Contains(t, out, "msg=header")
}

func TestDirectives(t *testing.T) {
	assert.Equal(t, ChainDeclaration, headerDirective("syllable").Kind)
	assert.Equal(t, NamedGroup, headerDirective("cons").Kind)
	assert.Equal(t, NamedGroup, headerDirective("_").Kind)
	assert.Equal(t, SpaceRule, chainDirective("_").Kind)
	assert.Equal(t, NamedGroup, chainDirective("syllable").Kind)
}
