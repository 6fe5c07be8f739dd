package stats

// PermSource is the minimal randomness a Hypergeometric draw needs: a
// uniformly random permutation of [0, n). math/rand.Perm (wrapped by
// internal/rng.Generator.Perm) satisfies this directly.
//
// github.com/kentwait/randomvariate, the RNG collaborator this module
// otherwise leans on for Poisson/Multinomial, does not expose
// a hypergeometric sampler, and no other library in the reference
// corpus provides one either — see DESIGN.md. The herd sizes this
// model draws from (tens to a few hundred animals) make the
// permutation-based construction below cheap enough to use directly
// rather than reach for an asymptotic rejection algorithm.
type PermSource interface {
	Perm(n int) []int
}

// Hypergeometric draws the number of "marked" individuals (e.g.
// infected cows) landing in a sample of size sampleSize drawn without
// replacement from a population of populationSize individuals, of
// which markedInPopulation are marked. It is exact: a uniformly random
// permutation of the population is generated and the first sampleSize
// slots are inspected for how many fall among the first
// markedInPopulation (conceptually "marked") positions.
func Hypergeometric(r PermSource, populationSize, sampleSize, markedInPopulation int) int {
	if populationSize <= 0 || sampleSize <= 0 || markedInPopulation <= 0 {
		return 0
	}
	if markedInPopulation > populationSize {
		markedInPopulation = populationSize
	}
	if sampleSize >= populationSize {
		return markedInPopulation
	}
	perm := r.Perm(populationSize)
	hits := 0
	for _, idx := range perm[:sampleSize] {
		if idx < markedInPopulation {
			hits++
		}
	}
	return hits
}
