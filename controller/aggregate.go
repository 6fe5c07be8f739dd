package controller

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/anthonyohare/nibtb"
	"github.com/anthonyohare/nibtb/internal/stats"
)

// AggregatedResults accumulates one ensemble's worth of per-scenario
// metrics as streaming mean/stddev Samples, plus two histograms whose
// bins are themselves tracked as Samples across the ensemble (§3
// "AggregatedResults").
type AggregatedResults struct {
	CowCowTransmissions    stats.Samples
	CowBadgerTransmissions stats.Samples
	BadgerCowTransmissions stats.Samples
	Reactors               stats.Samples
	Breakdowns             stats.Samples
	DetectedAtSlaughter    stats.Samples
	UndetectedAtSlaughter  stats.Samples
	InfectedAnimalsMoved   stats.Samples
	LogLikelihood          stats.Samples

	ReactorsAtBreakdown map[int]*stats.Samples
	SNPPairwiseDistance map[int]*stats.Samples
}

// NewAggregatedResults returns an empty accumulator.
func NewAggregatedResults() *AggregatedResults {
	return &AggregatedResults{
		ReactorsAtBreakdown: make(map[int]*stats.Samples),
		SNPPairwiseDistance: make(map[int]*stats.Samples),
	}
}

// AddScenarioResult folds one scenario's result into the accumulator.
// A -Inf log-likelihood is excluded from the LogLikelihood stream
// rather than poisoning its mean — §4.7 step 2 distinguishes
// "results.logLikelihood.size == 0" (no usable scenario) from a
// finite mean, so -Inf values must never be averaged in.
func (a *AggregatedResults) AddScenarioResult(r nibtb.ScenarioResult) error {
	a.CowCowTransmissions.Add(float64(r.NumCowCowTransmissions))
	a.CowBadgerTransmissions.Add(float64(r.NumCowBadgerTransmissions))
	a.BadgerCowTransmissions.Add(float64(r.NumBadgerCowTransmissions))
	a.Reactors.Add(float64(r.NumReactors))
	a.Breakdowns.Add(float64(r.NumBreakdowns))
	a.DetectedAtSlaughter.Add(float64(r.NumDetectedAnimalsAtSlaughter))
	a.UndetectedAtSlaughter.Add(float64(r.NumUndetectedAnimalsAtSlaughter))
	a.InfectedAnimalsMoved.Add(float64(r.NumInfectedAnimalsMoved))

	if !math.IsInf(r.LogLikelihood, -1) {
		a.LogLikelihood.Add(r.LogLikelihood)
	}

	reactorHist, err := stats.ParseIntHistogram(r.ReactorsAtBreakdownDistribution)
	if err != nil {
		return errors.Wrap(err, "parsing reactorsAtBreakdownDistribution")
	}
	for _, bin := range reactorHist.Bins() {
		addToBinSamples(a.ReactorsAtBreakdown, bin, float64(reactorHist.Count(bin)))
	}

	snpHist, err := stats.ParseIntHistogram(r.SNPDistanceDistribution)
	if err != nil {
		return errors.Wrap(err, "parsing snpDistanceDistribution")
	}
	for _, bin := range snpHist.Bins() {
		addToBinSamples(a.SNPPairwiseDistance, bin, float64(snpHist.Count(bin)))
	}

	return nil
}

func addToBinSamples(m map[int]*stats.Samples, bin int, v float64) {
	s, ok := m[bin]
	if !ok {
		s = &stats.Samples{}
		m[bin] = s
	}
	s.Add(v)
}

// ReadEnsemble reads <resultsFile>_<id>.results for id in [0, numScenarios)
// from resultsDir and folds every present file into a fresh
// AggregatedResults. A missing file is skipped, not an error (§7: "The
// controller treats an absent scenario file as 'no contribution'").
func ReadEnsemble(resultsDir, resultsFile string, numScenarios int) (*AggregatedResults, error) {
	agg := NewAggregatedResults()
	for id := 0; id < numScenarios; id++ {
		path := filepath.Join(resultsDir, fmt.Sprintf("%s_%d.results", resultsFile, id))
		result, err := nibtb.ReadScenarioResult(path)
		if errors.Is(err, nibtb.ErrNoScenarioResult) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading scenario result for id %d", id)
		}
		if err := agg.AddScenarioResult(result); err != nil {
			return nil, errors.Wrapf(err, "aggregating scenario result for id %d", id)
		}
	}
	return agg, nil
}
