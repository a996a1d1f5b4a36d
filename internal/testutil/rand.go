package testutil

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// NewRand returns a seeded PCG source. The same seed yields the same draws,
// shuffles, and spawn words on every run.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ScriptedRand replays a fixed list of choices.
//
// IntN returns the next scripted value modulo n. Shuffle performs a
// Fisher-Yates pass drawing its swap indices from the same script, so a
// script of all zeros rotates rather than leaves the order untouched.
//
// Panics when the script is exhausted. This is a fail-fast approach to
// catch tests that draw more often than they expect.
type ScriptedRand struct {
	mu     sync.Mutex
	values []int
	idx    int
}

// NewScriptedRand creates a ScriptedRand that yields values in order.
func NewScriptedRand(values ...int) *ScriptedRand {
	return &ScriptedRand{values: values}
}

// IntN returns the next scripted value reduced into [0, n).
func (r *ScriptedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.idx >= len(r.values) {
		panic(fmt.Sprintf("ScriptedRand: script exhausted after %d draws", r.idx))
	}
	v := r.values[r.idx] % n
	r.idx++
	return v
}

// Shuffle permutes n elements using scripted swap indices.
func (r *ScriptedRand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, r.IntN(i+1))
	}
}

// Used reports how many scripted values have been consumed.
func (r *ScriptedRand) Used() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.idx
}

// FixedIDs hands out predetermined session IDs in order, then repeats the
// last one. With no IDs it always returns "test-session-default".
type FixedIDs struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDs creates a generator returning ids in order.
func NewFixedIDs(ids ...string) *FixedIDs {
	if len(ids) == 0 {
		ids = []string{"test-session-default"}
	}
	return &FixedIDs{ids: ids}
}

// Generate returns the next ID.
func (g *FixedIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.ids[g.idx]
	if g.idx < len(g.ids)-1 {
		g.idx++
	}
	return id
}
