// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/pdiddy/lexicon/internal/rules"
)

const propertyRules = `[onset]
b d g 3 k r_
[nucleus]
a e 2 i o u
[coda]
n th s
[syllable]
onset nucleus 70 coda _ 25 onset nucleus
`

func TestGenerateProperties(t *testing.T) {
	plain, err := rules.ParseText(propertyRules)
	if err != nil {
		t.Fatal(err)
	}
	capped, err := rules.ParseText(propertyRules, rules.WithCaps(true))
	if err != nil {
		t.Fatal(err)
	}

	maxLen := 0
	for _, e := range plain.Chain() {
		longest := 0
		for _, tok := range e.Group().Tokens() {
			longest = max(longest, len(tok))
		}
		maxLen += longest
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("same seed gives same word", prop.ForAll(
		func(seed uint64) bool {
			return Generate(plain, NewRand(seed)) == Generate(plain, NewRand(seed))
		},
		gen.UInt64(),
	))

	properties.Property("caps only changes the first character", prop.ForAll(
		func(seed uint64) bool {
			lower := Generate(plain, NewRand(seed))
			upper := Generate(capped, NewRand(seed))
			if lower == "" {
				return upper == ""
			}
			return upper == strings.ToUpper(lower[:1])+lower[1:]
		},
		gen.UInt64(),
	))

	properties.Property("length bounded by longest token per entry", prop.ForAll(
		func(seed uint64) bool {
			return len(Generate(plain, NewRand(seed))) <= maxLen
		},
		gen.UInt64(),
	))

	properties.Property("underscores never survive", prop.ForAll(
		func(seed uint64) bool {
			return !strings.Contains(Generate(plain, NewRand(seed)), "_")
		},
		gen.UInt64(),
	))

	properties.TestingRun(t)
}
