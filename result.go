package nibtb

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/anthonyohare/nibtb/internal/stats"
)

// ScenarioResult is the JSON document one scenario process writes at
// the end of its run (§6 "Scenario result file").
type ScenarioResult struct {
	RunID                           string  `json:"runId"`
	LogLikelihood                   float64 `json:"loglikelihood"`
	NumCowCowTransmissions          int     `json:"numCowCowTransmissions"`
	NumCowBadgerTransmissions       int     `json:"numCowBadgerTransmissions"`
	NumBadgerCowTransmissions       int     `json:"numBadgerCowTransmissions"`
	NumReactors                     int     `json:"numReactors"`
	NumBreakdowns                   int     `json:"numBreakdowns"`
	NumDetectedAnimalsAtSlaughter   int     `json:"numDetectedAnimalsAtSlaughter"`
	NumUndetectedAnimalsAtSlaughter int     `json:"numUndetectedAnimalsAtSlaughter"`
	NumInfectedAnimalsMoved         int     `json:"numInfectedAnimalsMoved"`
	ReactorsAtBreakdownDistribution string  `json:"reactorsAtBreakdownDistribution"`
	SNPDistanceDistribution         string  `json:"snpDistanceDistribution"`
}

// BuildScenarioResult assembles the end-of-run result document from a
// finished scenario. sampled is the pool returned by SampleCows, and
// logLikelihood the value ScoreLogLikelihood computed against it.
func BuildScenarioResult(s *Scenario, logLikelihood float64, sampled []*InfectedCow) ScenarioResult {
	reactorHist := stats.NewIntHistogram()
	for count, freq := range s.Stats.ReactorsAtBreakdownDistribution {
		reactorHist.TallyN(count, freq)
	}
	snpHist := SNPDistanceHistogram(sampled)

	return ScenarioResult{
		RunID:                           s.RunID.String(),
		LogLikelihood:                   logLikelihood,
		NumCowCowTransmissions:          s.Stats.NumCowCowTransmissions,
		NumCowBadgerTransmissions:       s.Stats.NumCowBadgerTransmissions,
		NumBadgerCowTransmissions:       s.Stats.NumBadgerCowTransmissions,
		NumReactors:                     s.Stats.NumReactors,
		NumBreakdowns:                   s.Stats.NumBreakdowns,
		NumDetectedAnimalsAtSlaughter:   s.Stats.NumDetectedAnimalsAtSlaughter,
		NumUndetectedAnimalsAtSlaughter: s.Stats.NumUndetectedAnimalsAtSlaughter,
		NumInfectedAnimalsMoved:         s.Stats.NumInfectedAnimalsMoved,
		ReactorsAtBreakdownDistribution: reactorHist.String(),
		SNPDistanceDistribution:         snpHist.String(),
	}
}

// WriteScenarioResult marshals and writes a scenario result file to
// path, creating it fresh (the orchestrator names each result file
// after the scenario's id, so collisions indicate a configuration
// error rather than a retry).
func WriteScenarioResult(path string, result ScenarioResult) error {
	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshalling scenario result")
	}
	return NewFile(path, b)
}

// ReadScenarioResult reads and parses a scenario result file, as the
// controller does for every id in [0, numScenarios) (§4.7 step 1).
func ReadScenarioResult(path string) (ScenarioResult, error) {
	var result ScenarioResult
	exists, err := Exists(path)
	if err != nil {
		return result, err
	}
	if !exists {
		return result, ErrNoScenarioResult
	}
	b, err := readFile(path)
	if err != nil {
		return result, errors.Wrapf(err, "reading %s", path)
	}
	if err := json.Unmarshal(b, &result); err != nil {
		return result, errors.Wrapf(err, "parsing %s", path)
	}
	return result, nil
}
