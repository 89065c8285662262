package sim

import (
	"math"
	"math/rand"
)

// Rng is a seedable pseudo-random source owned by one Engine (spec §9
// Design Note: the Marsaglia cache is process-global in the source this
// was distilled from; here it is instance state so two Engines never
// share — or race on — a single cached variate).
type Rng struct {
	src       *rand.Rand
	haveSpare bool
	spare     float64
}

// NewRng returns a seeded Rng. Equal seeds produce identical sequences.
func NewRng(seed int64) *Rng {
	return &Rng{src: rand.New(rand.NewSource(seed))}
}

// Uniform returns a uniform random value in [0, 1).
func (r *Rng) Uniform() float64 {
	return r.src.Float64()
}

// Normal returns a unit-normal (mean 0, variance 1) random value via the
// Marsaglia polar method, caching the second generated variate for the
// following call (spec §4.4). Statistical quality is not the point here —
// only that the generator has this exact two-variates-per-pass structure.
func (r *Rng) Normal() float64 {
	if r.haveSpare {
		r.haveSpare = false
		return r.spare
	}
	for {
		u := 2*r.src.Float64() - 1
		v := 2*r.src.Float64() - 1
		s := u*u + v*v
		if s >= 1 || s == 0 {
			continue
		}
		mul := math.Sqrt(-2 * math.Log(s) / s)
		r.spare = v * mul
		r.haveSpare = true
		return u * mul
	}
}
