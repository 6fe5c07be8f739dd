package controller

import (
	"math"

	"github.com/anthonyohare/nibtb/internal/rng"
)

// covarianceFloor is the diagonal inflation applied after every
// covariance update, preventing the matrix from collapsing to
// singular as the chain's observed variance along a parameter shrinks
// (§4.7 step 5, §8 "Covariance update stability": Sigma_ii >= 0.001
// must hold after every update).
const covarianceFloor = 0.001

// AcceptStep implements the §4.7 step 2 acceptance decision for the
// step that produced results. isFirstStep is t == 1.
func AcceptStep(isFirstStep bool, resultsLogLikelihoodSize int, resultsLogLikelihoodMean, stateLogLikelihood float64, logUniform float64, smoothingRatio float64) bool {
	if isFirstStep {
		return true
	}
	if resultsLogLikelihoodSize == 0 {
		return false
	}
	if math.IsInf(stateLogLikelihood, -1) {
		return true
	}
	return logUniform < (resultsLogLikelihoodMean-stateLogLikelihood)/smoothingRatio
}

// UpdateMeanCovariance performs the §4.7 step 5 online update, given
// the parameter vector theta just evaluated and the 1-indexed step
// count t (every step updates the running statistics, accepted or
// not). scale = 2.85/sqrt(n) is applied to the *update term* of each
// covariance entry, not to the final proposal — §9 calls this out
// explicitly as differing from textbook adaptive Metropolis, and
// that divergence is preserved here rather than corrected.
func UpdateMeanCovariance(means []float64, covariances [][]float64, theta []float64, t int) {
	n := len(theta)
	scale := 2.85 / math.Sqrt(float64(n))
	denom := float64(t + 1)

	deltas := make([]float64, n)
	for i := 0; i < n; i++ {
		deltas[i] = theta[i] - means[i]
	}
	for i := 0; i < n; i++ {
		means[i] += deltas[i] / denom
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			update := (deltas[i]*deltas[j] - covariances[i][j]) / denom
			covariances[i][j] = (covariances[i][j] + update) * scale
		}
		covariances[i][i] += covarianceFloor
	}
}

// ProposeStep draws a fresh parameter vector from a multivariate
// normal(means, covariances) truncated to [lower, upper] per
// component, rejecting and redrawing proposals that land outside the
// box (§4.7 step 6). Covariances is used only through its Cholesky
// factor; a non-positive-definite matrix (which the diagonal
// inflation in UpdateMeanCovariance guards against) would make the
// factorisation fail.
func ProposeStep(r *rng.Generator, means []float64, covariances [][]float64, lower, upper []float64) []float64 {
	n := len(means)
	chol := choleskyLower(covariances)

	for {
		z := make([]float64, n)
		for i := range z {
			z[i] = r.NormFloat64()
		}
		theta := make([]float64, n)
		for i := 0; i < n; i++ {
			v := means[i]
			for j := 0; j <= i; j++ {
				v += chol[i][j] * z[j]
			}
			theta[i] = v
		}
		if withinBounds(theta, lower, upper) {
			return theta
		}
	}
}

func withinBounds(theta, lower, upper []float64) bool {
	for i, v := range theta {
		if v < lower[i] || v > upper[i] {
			return false
		}
	}
	return true
}

// choleskyLower computes the lower Cholesky factor L of a symmetric
// positive-(semi)definite matrix such that L*L^T == m. Negative
// diagonal terms that arise from floating point noise on an
// near-singular matrix are clamped to zero rather than propagating a
// NaN through the proposal.
func choleskyLower(m [][]float64) [][]float64 {
	n := len(m)
	l := make([][]float64, n)
	for i := range l {
		l[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := m[i][j]
			for k := 0; k < j; k++ {
				sum -= l[i][k] * l[j][k]
			}
			if i == j {
				if sum < 0 {
					sum = 0
				}
				l[i][j] = math.Sqrt(sum)
			} else if l[j][j] != 0 {
				l[i][j] = sum / l[j][j]
			}
		}
	}
	return l
}

// InitialState draws the §4.7 "very first invocation" state: each
// theta_i uniform over its configured range, Sigma_ii :=
// percentageDeviation * theta_i / 100, means_i := theta_i.
func InitialState(r *rng.Generator, ranges []Range, percentageDeviation float64) (theta []float64, means []float64, covariances [][]float64) {
	n := len(ranges)
	theta = make([]float64, n)
	means = make([]float64, n)
	covariances = make([][]float64, n)
	for i := range covariances {
		covariances[i] = make([]float64, n)
	}
	for i, rg := range ranges {
		theta[i] = rg.Lo + r.Float64()*(rg.Hi-rg.Lo)
		means[i] = theta[i]
		covariances[i][i] = percentageDeviation * theta[i] / 100
	}
	return theta, means, covariances
}
