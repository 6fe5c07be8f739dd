package nibtb

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseInitialInfectionStatesParsesTriples(t *testing.T) {
	states, err := ParseInitialInfectionStates("1:10:0.7,0.1,0.1,0.1; 2:11:0,1,0,0")
	if err != nil {
		t.Fatalf("ParseInitialInfectionStates: %v", err)
	}
	if len(states) != 2 {
		t.Fatalf("len(states) = %d, want 2", len(states))
	}
	if states[0].CowID != 1 || states[0].FarmID != 10 {
		t.Errorf("states[0] = %+v, want CowID=1 FarmID=10", states[0])
	}
	if states[0].Probs != [4]float64{0.7, 0.1, 0.1, 0.1} {
		t.Errorf("states[0].Probs = %v, want [0.7 0.1 0.1 0.1]", states[0].Probs)
	}
	if states[1].Probs != [4]float64{0, 1, 0, 0} {
		t.Errorf("states[1].Probs = %v, want [0 1 0 0]", states[1].Probs)
	}
}

func TestParseInitialInfectionStatesEmptyIsNil(t *testing.T) {
	states, err := ParseInitialInfectionStates("  ")
	if err != nil {
		t.Fatalf("ParseInitialInfectionStates: %v", err)
	}
	if states != nil {
		t.Errorf("states = %v, want nil for blank input", states)
	}
}

func TestParseInitialInfectionStatesRejectsMalformedTriple(t *testing.T) {
	if _, err := ParseInitialInfectionStates("1:10"); err == nil {
		t.Errorf("expected an error for a triple missing the probability field")
	}
}

func TestParseInitialInfectionStatesRejectsWrongProbabilityCount(t *testing.T) {
	if _, err := ParseInitialInfectionStates("1:10:0.5,0.5"); err == nil {
		t.Errorf("expected an error for a probability vector with fewer than 4 entries")
	}
}

func TestLoadParametersPopulatesRateFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.txt")
	body := "beta=0.02\nsigma=0.06\ngamma=0.03\nalpha=0.12\nalphaPrime=0.04\ntestSensitivity=0.9\nmutationRate=2e-4\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var settings ProjectSettings
	if err := LoadParameters(path, &settings); err != nil {
		t.Fatalf("LoadParameters: %v", err)
	}
	if settings.Beta != 0.02 || settings.Sigma != 0.06 || settings.Gamma != 0.03 {
		t.Errorf("settings = %+v, want Beta=0.02 Sigma=0.06 Gamma=0.03", settings)
	}
	if settings.TestSensitivity != 0.9 {
		t.Errorf("TestSensitivity = %f, want 0.9", settings.TestSensitivity)
	}
}

func TestLoadParametersMissingKeyErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.txt")
	if err := os.WriteFile(path, []byte("beta=0.02\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var settings ProjectSettings
	if err := LoadParameters(path, &settings); err == nil {
		t.Errorf("expected an error when sigma is missing from the parameters file")
	}
}

func TestLoadParametersRejectsUnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.txt")
	body := "beta=0.02\nsigma=0.06\ngamma=0.03\nalpha=0.12\nalphaPrime=0.04\n" +
		"testSensitivity=0.9\nmutationRate=2e-4\nbetaaa=0.5\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var settings ProjectSettings
	if err := LoadParameters(path, &settings); err == nil {
		t.Errorf("expected an error for an unrecognized key (\"betaaa\")")
	}
}
