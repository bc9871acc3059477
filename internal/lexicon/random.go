// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"math/rand/v2"
	"sync"
)

// Rand is the random provider consumed by generation. IntN returns a
// uniform integer in [0, n). Implementations shared between goroutines
// must be safe for concurrent use.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a seeded, concurrency-safe Rand. Equal seeds produce
// equal sequences.
func NewRand(seed uint64) Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// globalRand draws from the runtime-seeded top-level source.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// percent draws a uniform integer in [1, 100].
func percent(r Rand) int { return r.IntN(100) + 1 }
