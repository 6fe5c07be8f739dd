// Package stats is the statistical container library named as an
// external collaborator in §1 of the design: running samples (mean +
// stddev), integer histograms, hypergeometric sampling, and factorial
// utilities (the multinomial draw lives in internal/rng). The bundle has no single upstream match in
// the reference corpus, so it is implemented here as a small internal
// package — see DESIGN.md for the per-routine grounding.
package stats

import "math"

// Samples accumulates a running mean and variance over a stream of
// float64 observations using Welford's online algorithm, avoiding the
// numerical blow-up of a naive sum-of-squares approach across the
// many accepted/rejected Metropolis steps a fitting run produces.
type Samples struct {
	n      int
	mean   float64
	m2     float64
	values []float64
}

// Add records a new observation.
func (s *Samples) Add(x float64) {
	s.n++
	delta := x - s.mean
	s.mean += delta / float64(s.n)
	delta2 := x - s.mean
	s.m2 += delta * delta2
	s.values = append(s.values, x)
}

// Size returns the number of observations recorded.
func (s *Samples) Size() int { return s.n }

// Mean returns the running mean, or 0 if no observations were added.
func (s *Samples) Mean() float64 {
	if s.n == 0 {
		return 0
	}
	return s.mean
}

// StdDev returns the sample standard deviation (n-1 denominator), or
// 0 if fewer than two observations were added.
func (s *Samples) StdDev() float64 {
	if s.n < 2 {
		return 0
	}
	return math.Sqrt(s.m2 / float64(s.n-1))
}

// Values returns the recorded observations in insertion order.
func (s *Samples) Values() []float64 {
	return s.values
}
