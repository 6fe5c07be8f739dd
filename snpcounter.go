package nibtb

import (
	"sync"

	"github.com/anthonyohare/nibtb/internal/rng"
)

// SNPCounter hands out fresh, process-wide monotonically increasing
// SNP indices. A single counter is shared by every cow and badger
// lineage in a scenario: indices mean nothing on their own, only
// whether two lineages hold the same one, so a simple incrementing
// counter under a mutex is enough (mirrors the teacher's counter-style
// fields guarded by sync.RWMutex, e.g. GenotypeSet.set).
type SNPCounter struct {
	mu   sync.Mutex
	next int
}

// NewSNPCounter creates a counter starting at 0.
func NewSNPCounter() *SNPCounter {
	return &SNPCounter{}
}

// Take returns n fresh, distinct indices.
func (c *SNPCounter) Take(n int) []int {
	if n <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int, n)
	for i := range out {
		out[i] = c.next
		c.next++
	}
	return out
}

// GenerateSNPs implements the SNP-regeneration rule of §4.3: the
// number of new mutations a lineage picks up depends on how its last
// generation day compares to the current day.
//
//   - day < lastSnpGeneration: the initial-seeding case (seeding
//     passes day -1); the lineage still must acquire at least one new
//     SNP, so the count is max(1, Poisson(1)).
//   - day == lastSnpGeneration: no time has passed since the last
//     generation; zero new SNPs.
//   - day > lastSnpGeneration: Poisson(mutationRate * elapsed days).
//
// It returns the freshly minted SNP indices (already registered
// against the shared counter) and the day the lineage should record as
// its new lastSnpGeneration.
func GenerateSNPs(counter *SNPCounter, r *rng.Generator, day, lastSnpGeneration int, mutationRate float64) ([]int, int) {
	var count int
	switch {
	case day < lastSnpGeneration:
		count = r.Poisson(1)
		if count < 1 {
			count = 1
		}
	case day == lastSnpGeneration:
		count = 0
	default:
		elapsed := float64(day - lastSnpGeneration)
		count = r.Poisson(mutationRate * elapsed)
	}
	return counter.Take(count), day
}
