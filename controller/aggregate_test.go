package controller

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/anthonyohare/nibtb"
)

func TestAddScenarioResultExcludesNegativeInfinityLogLikelihood(t *testing.T) {
	agg := NewAggregatedResults()
	if err := agg.AddScenarioResult(nibtb.ScenarioResult{LogLikelihood: -5}); err != nil {
		t.Fatalf("AddScenarioResult: %v", err)
	}
	if err := agg.AddScenarioResult(nibtb.ScenarioResult{LogLikelihood: math.Inf(-1)}); err != nil {
		t.Fatalf("AddScenarioResult: %v", err)
	}

	if agg.LogLikelihood.Size() != 1 {
		t.Errorf("LogLikelihood.Size() = %d, want 1 (the -Inf result must be excluded)", agg.LogLikelihood.Size())
	}
}

func TestAddScenarioResultFoldsHistogramsIntoBinSamples(t *testing.T) {
	agg := NewAggregatedResults()
	err := agg.AddScenarioResult(nibtb.ScenarioResult{
		ReactorsAtBreakdownDistribution: "1:2,2:3",
		SNPDistanceDistribution:         "0:5",
	})
	if err != nil {
		t.Fatalf("AddScenarioResult: %v", err)
	}

	if agg.ReactorsAtBreakdown[1] == nil || agg.ReactorsAtBreakdown[1].Size() != 1 {
		t.Fatalf("ReactorsAtBreakdown[1] not populated: %+v", agg.ReactorsAtBreakdown[1])
	}
	if agg.ReactorsAtBreakdown[1].Mean() != 2 {
		t.Errorf("ReactorsAtBreakdown[1].Mean() = %f, want 2", agg.ReactorsAtBreakdown[1].Mean())
	}
	if agg.SNPPairwiseDistance[0].Mean() != 5 {
		t.Errorf("SNPPairwiseDistance[0].Mean() = %f, want 5", agg.SNPPairwiseDistance[0].Mean())
	}
}

func TestAddScenarioResultRejectsMalformedHistogram(t *testing.T) {
	agg := NewAggregatedResults()
	if err := agg.AddScenarioResult(nibtb.ScenarioResult{ReactorsAtBreakdownDistribution: "garbage"}); err == nil {
		t.Errorf("expected an error for a malformed reactorsAtBreakdownDistribution")
	}
}

func TestReadEnsembleSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	present := nibtb.ScenarioResult{LogLikelihood: -1, NumReactors: 4}
	if err := nibtb.WriteScenarioResult(filepath.Join(dir, "scenario_1.results"), present); err != nil {
		t.Fatalf("WriteScenarioResult: %v", err)
	}

	agg, err := ReadEnsemble(dir, "scenario", 3)
	if err != nil {
		t.Fatalf("ReadEnsemble: %v", err)
	}
	if agg.Reactors.Size() != 1 {
		t.Errorf("Reactors.Size() = %d, want 1 (only scenario_1.results exists)", agg.Reactors.Size())
	}
	if agg.Reactors.Mean() != 4 {
		t.Errorf("Reactors.Mean() = %f, want 4", agg.Reactors.Mean())
	}
}
