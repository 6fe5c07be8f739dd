package controller

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "controller.txt")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

const baseConfigBody = `numScenarios=20
smoothingRatio=0.1
percentageDeviation=0.2
parametersFile=params.txt
outputFile=out.txt
stateFile=state.json
resultsDir=results
resultsFile=results.txt
includeBadgers=false
betaRange=0:1
sigmaRange=0:1
gammaRange=0:1
alphaRange=0:1
alphaPrimeRange=0:1
testSensitivityRange=0:1
mutationRateRange=0:0.01
`

func TestLoadConfigParsesFields(t *testing.T) {
	path := writeConfig(t, baseConfigBody)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.NumScenarios != 20 {
		t.Errorf("NumScenarios = %d, want 20", cfg.NumScenarios)
	}
	if cfg.Dimension() != 7 {
		t.Errorf("Dimension() = %d, want 7 when badgers excluded", cfg.Dimension())
	}
	if len(cfg.Ranges) != 7 {
		t.Errorf("len(Ranges) = %d, want 7", len(cfg.Ranges))
	}
	if names := cfg.ParamNames(); len(names) != 7 || names[0] != "beta" {
		t.Errorf("ParamNames() = %v", names)
	}
}

func TestLoadConfigIncludeBadgersExpandsDimension(t *testing.T) {
	body := strings.Replace(baseConfigBody, "includeBadgers=false", "includeBadgers=true", 1) + "infectedBadgerLifetime=1000:2000\n"
	path := writeConfig(t, body)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.IncludeBadgers {
		t.Fatalf("IncludeBadgers = false, want true")
	}
	if cfg.Dimension() != 8 {
		t.Errorf("Dimension() = %d, want 8 with badgers included", cfg.Dimension())
	}
	if len(cfg.Ranges) != 8 {
		t.Fatalf("len(Ranges) = %d, want 8", len(cfg.Ranges))
	}
	if cfg.Ranges[7].Lo != 1000 || cfg.Ranges[7].Hi != 2000 {
		t.Errorf("badger lifetime range = %+v, want {1000 2000}", cfg.Ranges[7])
	}
	names := cfg.ParamNames()
	if names[len(names)-1] != "infectedBadgerLifetime" {
		t.Errorf("last ParamNames() entry = %q, want infectedBadgerLifetime", names[len(names)-1])
	}
}

func TestLoadConfigMissingKeyErrors(t *testing.T) {
	path := writeConfig(t, "numScenarios=20\n")
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("expected an error for a config file missing required keys")
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, baseConfigBody+"numScenariosTypo=5\n")
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("expected an error for an unrecognized key (\"numScenariosTypo\")")
	}
}
