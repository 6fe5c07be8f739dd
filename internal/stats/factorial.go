package stats

import "math"

// LnFactorial returns ln(n!), used by the multinomial log-likelihood
// (§4.6). Backed by math.Lgamma (ln(n!) == lgamma(n+1)) rather than an
// iterative product: the scenario scorer calls this once per bin per
// scored scenario, and Lgamma keeps that cheap and overflow-free for
// the cow counts this model deals with (tens to low thousands).
func LnFactorial(n int) float64 {
	if n < 0 {
		return math.NaN()
	}
	if n < 2 {
		return 0
	}
	v, _ := math.Lgamma(float64(n) + 1)
	return v
}
