// Package rng is the random-number-generator collaborator named in
// §1 of the design as an external dependency: one generator per
// scenario process, reseeded by the fitting controller between
// iterations (§5).
//
// Following the teacher's own convention (bin/contagion/main.go calls
// rand.Seed once at process start, then lets every downstream helper —
// including github.com/kentwait/randomvariate's package-level
// Poisson/Binomial/Multinomial — draw from the same global source),
// Seed reseeds math/rand's global source and every method here and in
// randomvariate consumes it.
package rng

import (
	"math/rand"

	rv "github.com/kentwait/randomvariate"
)

// Generator draws the stochastic primitives the scenario and
// controller need: uniforms, Poisson event counts, a multinomial draw
// for seeding each candidate's initial infection status, and
// permutations for shuffling farms.
type Generator struct{}

// New returns a Generator bound to the process-global random source.
func New() *Generator { return &Generator{} }

// Seed reseeds the global random source.
func (g *Generator) Seed(seed int64) {
	rand.Seed(seed)
}

// Float64 returns a uniform draw in [0, 1).
func (g *Generator) Float64() float64 {
	return rand.Float64()
}

// Intn returns a uniform integer in [0, n).
func (g *Generator) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.Intn(n)
}

// IntRange returns a uniform integer in [lo, hi].
func (g *Generator) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rand.Intn(hi-lo+1)
}

// Perm returns a random permutation of [0, n).
func (g *Generator) Perm(n int) []int {
	return rand.Perm(n)
}

// Poisson draws a Poisson(lambda) count.
func (g *Generator) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	return rv.Poisson(lambda)
}

// Multinomial draws n trials over the given probability vector,
// returning the count landing in each category.
func (g *Generator) Multinomial(n int, probs []float64) []int {
	return rv.Multinomial(n, probs)
}

// NextInt64Seed draws a fresh 63-bit seed, used by the controller to
// reseed the next scenario batch (§4.7 step 7).
func (g *Generator) NextInt64Seed() int64 {
	return rand.Int63()
}

// herdSizeMean and herdSizeStdDev parameterise the truncated Gaussian
// a farm's initial herd size is drawn from (§3).
const (
	herdSizeMean   = 120.0
	herdSizeStdDev = 40.0
)

// TruncatedGaussianHerdSize draws a farm's initial herd size from a
// Normal(120, 40) distribution truncated to positive integers.
func (g *Generator) TruncatedGaussianHerdSize() int {
	for {
		v := rand.NormFloat64()*herdSizeStdDev + herdSizeMean
		if v >= 1 {
			return int(v + 0.5)
		}
	}
}

// NormFloat64 returns a standard-normal draw, used directly by the
// truncated multivariate normal proposal sampler (§4.7).
func (g *Generator) NormFloat64() float64 {
	return rand.NormFloat64()
}
