package planner

import "math/rand"

// Rand is the randomness source consumed by the planners. All planner
// randomness flows through one injected instance per run so that
// identical inputs and seed reproduce an identical plan, and so tests
// can substitute deterministic sequences.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewSeeded returns a Rand backed by math/rand with the given seed.
func NewSeeded(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// intBetween returns a uniform value in [lo, hi]. lo must be <= hi.
func intBetween(rng Rand, lo, hi int) int {
	if lo >= hi {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// sample returns n distinct elements drawn uniformly without
// replacement, in shuffled order.
func sample[T any](rng Rand, pool []T, n int) []T {
	if n > len(pool) {
		n = len(pool)
	}
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	out := make([]T, 0, n)
	for _, i := range idx[:n] {
		out = append(out, pool[i])
	}
	return out
}
