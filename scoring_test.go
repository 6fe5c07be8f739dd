package nibtb

import (
	"math"
	"testing"

	"github.com/anthonyohare/nibtb/internal/stats"
)

func TestSNPDistanceHistogramPairwiseExample(t *testing.T) {
	cows := []*InfectedCow{
		sampleInfectedCow(1, 1, 2, 3),
		sampleInfectedCow(2, 1, 2, 3),
		sampleInfectedCow(3, 4, 5),
	}
	h := SNPDistanceHistogram(cows)

	if got := h.Count(0); got != 1 {
		t.Errorf("Count(0) = %d, want 1 (cow1 vs cow2 share every SNP)", got)
	}
	if got := h.Count(5); got != 2 {
		t.Errorf("Count(5) = %d, want 2 (cow1/cow2 vs cow3, |{1,2,3}Δ{4,5}| = 5)", got)
	}
	if h.Sum() != 3 {
		t.Errorf("Sum() = %d, want 3 (three unordered pairs from three cows)", h.Sum())
	}
}

func TestScoreLogLikelihoodEmptySimulatedAborts(t *testing.T) {
	observed := stats.NewIntHistogram()
	observed.TallyN(0, 10)
	simulated := stats.NewIntHistogram()

	got := ScoreLogLikelihood(observed, simulated)
	if !math.IsInf(got, -1) {
		t.Errorf("ScoreLogLikelihood with an empty simulated histogram = %f, want -Inf", got)
	}
}

func TestScoreLogLikelihoodMoreBinsThanObservedAborts(t *testing.T) {
	observed := stats.NewIntHistogram()
	observed.TallyN(0, 10)
	simulated := stats.NewIntHistogram()
	simulated.TallyN(0, 5)
	simulated.TallyN(1, 5)

	got := ScoreLogLikelihood(observed, simulated)
	if !math.IsInf(got, -1) {
		t.Errorf("ScoreLogLikelihood with more simulated bins than observed = %f, want -Inf", got)
	}
}

func TestScoreLogLikelihoodPerfectMatchIsFinite(t *testing.T) {
	observed := stats.NewIntHistogram()
	observed.TallyN(0, 5)
	observed.TallyN(1, 5)
	simulated := stats.NewIntHistogram()
	simulated.TallyN(0, 5)
	simulated.TallyN(1, 5)

	got := ScoreLogLikelihood(observed, simulated)
	if math.IsInf(got, -1) || math.IsInf(got, 1) || math.IsNaN(got) {
		t.Errorf("ScoreLogLikelihood on a perfectly matching histogram = %f, want a finite value", got)
	}
}
