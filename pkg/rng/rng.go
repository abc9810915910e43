// Package rng provides a seeded random source with a push/pop state stack.
// Stochastic nodes push their seed before sampling and pop it afterwards so
// they never disturb the sequence seen by other nodes.
package rng

import (
	"math/rand/v2"
)

// Rand is a random source whose state can be temporarily replaced. It is
// not safe for concurrent use.
type Rand struct {
	current *rand.Rand
	stack   []*rand.Rand
}

func source(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// New returns a Rand seeded with seed.
func New(seed int64) *Rand {
	return &Rand{current: source(seed)}
}

// Push replaces the current state with a fresh one seeded by seed. The
// returned function restores the previous state, so callers can write
// defer r.Push(seed)().
func (r *Rand) Push(seed int64) func() {
	r.stack = append(r.stack, r.current)
	r.current = source(seed)
	depth := len(r.stack)
	return func() {
		if len(r.stack) == depth {
			r.Pop()
		}
	}
}

// Pop restores the state saved by the matching Push. Popping an empty
// stack is a no-op.
func (r *Rand) Pop() {
	if len(r.stack) == 0 {
		return
	}
	r.current = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

// Depth returns the number of pushed states.
func (r *Rand) Depth() int { return len(r.stack) }

// Float returns a value in [0, 1).
func (r *Rand) Float() float64 { return r.current.Float64() }

// Range returns a value in [lo, hi).
func (r *Rand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.current.Float64()
}

// RangeInt returns a value in [lo, hi). It returns lo when hi <= lo.
func (r *Rand) RangeInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.current.IntN(hi-lo)
}

// FloatSeeded returns the first value of the sequence seeded by seed
// without disturbing the current state.
func (r *Rand) FloatSeeded(seed int64) float64 {
	defer r.Push(seed)()
	return r.Float()
}

// RangeIntSeeded returns the first RangeInt(lo, hi) of the sequence seeded
// by seed without disturbing the current state.
func (r *Rand) RangeIntSeeded(lo, hi int, seed int64) int {
	defer r.Push(seed)()
	return r.RangeInt(lo, hi)
}
