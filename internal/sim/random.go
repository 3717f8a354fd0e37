// Package sim generates randomized crafts and drives the subsystem check sequence.
package sim

import "math/rand/v2"

// Source supplies the random integers used to seed craft attributes.
type Source interface {
	// IntBetween returns a uniform integer in [lo, hi].
	IntBetween(lo, hi int) int
}

type pcgSource struct {
	r *rand.Rand
}

// NewSource returns a deterministic source for the given seed.
func NewSource(seed uint64) Source {
	return &pcgSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *pcgSource) IntBetween(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + s.r.IntN(hi-lo+1)
}
