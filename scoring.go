package nibtb

import (
	"math"

	"github.com/anthonyohare/nibtb/internal/stats"
)

const (
	sampledPoolRetries = 10
	// minProbabilityForLL: bins whose observed probability falls
	// under this threshold are skipped rather than contributing a
	// near -Inf term (§4.6).
	minProbabilityForLL = 1e-15
)

// SampleCows buckets every infection-tree cow with a recorded sample
// date by sample year, draws floor(|bucket| * rate) from each year
// without replacement, and pools the draws (§4.6). Retries up to
// sampledPoolRetries times if the pool comes back empty — the
// sampling draw is itself stochastic and an empty pool is a valid,
// if unlucky, outcome.
func SampleCows(s *Scenario) []*InfectedCow {
	var pool []*InfectedCow
	for attempt := 0; attempt < sampledPoolRetries && len(pool) == 0; attempt++ {
		pool = sampleCowsOnce(s)
	}
	return pool
}

func sampleCowsOnce(s *Scenario) []*InfectedCow {
	byYear := make(map[int][]*InfectedCow)
	for _, cow := range s.Cows {
		if !cow.Sampled() {
			continue
		}
		year := sampleYear(s, cow.DateSampleTaken)
		byYear[year] = append(byYear[year], cow)
	}

	var pool []*InfectedCow
	for year, bucket := range byYear {
		rate := s.Settings.SamplingRatesPerYear[year]
		n := int(float64(len(bucket)) * rate)
		if n <= 0 {
			continue
		}
		if n > len(bucket) {
			n = len(bucket)
		}
		order := s.RNG.Perm(len(bucket))
		for i := 0; i < n; i++ {
			pool = append(pool, bucket[order[i]])
		}
	}
	return pool
}

// sampleYear converts a sample date (a day count) into an
// epoch-relative year bucket, date/365, with negative dates in bucket
// 0. The scenario's configured date format is not consulted.
func sampleYear(s *Scenario, date int) int {
	if date < 0 {
		return 0
	}
	return date / 365
}

// SNPDistanceHistogram tallies the symmetric SNP pairwise distance
// across every unordered pair of the given cows (§4.6).
func SNPDistanceHistogram(cows []*InfectedCow) *stats.IntHistogram {
	h := stats.NewIntHistogram()
	for i := 0; i < len(cows); i++ {
		for j := i + 1; j < len(cows); j++ {
			d := SymmetricDifferenceSize(cows[i].SNPs, cows[j].SNPs)
			h.Tally(d)
		}
	}
	return h
}

// ScoreLogLikelihood computes the multinomial log-likelihood of the
// simulated SNP distance histogram against the observed distribution
// (§4.6). Returns math.Inf(-1) for every abort path named there:
// empty simulated distribution, or more simulated bins than observed.
func ScoreLogLikelihood(observed, simulated *stats.IntHistogram) float64 {
	if simulated.Len() == 0 || simulated.Len() > observed.Len() {
		return math.Inf(-1)
	}

	n := observed.Sum()
	working := cloneHistogram(simulated)
	if err := working.NormaliseBins(n); err != nil {
		return math.Inf(-1)
	}

	logL := stats.LnFactorial(n)
	for _, bin := range observed.Bins() {
		prob := float64(observed.Count(bin)) / float64(n)
		count := working.Count(bin)
		logL -= stats.LnFactorial(count)
		if prob < minProbabilityForLL {
			continue
		}
		logL += float64(count) * math.Log(prob)
	}
	return logL
}

func cloneHistogram(h *stats.IntHistogram) *stats.IntHistogram {
	clone := stats.NewIntHistogram()
	for _, b := range h.Bins() {
		clone.TallyN(b, h.Count(b))
	}
	return clone
}
