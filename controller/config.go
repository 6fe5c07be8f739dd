// Package controller implements the adaptive-Metropolis fitting loop
// (§4.7): it reads aggregated scenario results, decides whether to
// accept the step that produced them, updates its running mean and
// covariance, and proposes the next parameter vector from a truncated
// multivariate normal.
package controller

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/anthonyohare/nibtb"
)

// paramNames is the fixed parameter ordering the state dimension is
// built from: 7 entries normally, 8 when badgers are included (§4.7).
var paramNames = []string{
	"beta", "sigma", "gamma", "alpha", "alphaPrime", "testSensitivity", "mutationRate",
}

// Range is an inclusive [Lo, Hi] bound on one parameter.
type Range struct {
	Lo, Hi float64
}

// Config is the resolved contents of a controller config file
// (§6 "Controller config file").
type Config struct {
	NumScenarios         int
	SmoothingRatio       float64
	PercentageDeviation  float64
	ParametersFile       string
	OutputFile           string
	StateFile            string
	ResultsDir           string
	ResultsFile          string
	IncludeBadgers       bool

	Ranges []Range // indexed the same as ParamNames(), badger lifetime appended when IncludeBadgers
}

// Dimension returns the state dimension: 7, or 8 when badgers are
// modelled.
func (c *Config) Dimension() int {
	if c.IncludeBadgers {
		return 8
	}
	return 7
}

// ParamNames returns the parameter names in state-vector order for
// this config's dimension.
func (c *Config) ParamNames() []string {
	names := append([]string(nil), paramNames...)
	if c.IncludeBadgers {
		names = append(names, "infectedBadgerLifetime")
	}
	return names
}

// controllerConfigKeys lists every key=value key LoadConfig
// recognizes, for nibtb.ValidateKnownKeys (§9).
var controllerConfigKeys = []string{
	"numScenarios",
	"smoothingRatio",
	"percentageDeviation",
	"parametersFile",
	"outputFile",
	"stateFile",
	"resultsDir",
	"resultsFile",
	"includeBadgers",
	"betaRange",
	"sigmaRange",
	"gammaRange",
	"alphaRange",
	"alphaPrimeRange",
	"testSensitivityRange",
	"mutationRateRange",
	"infectedBadgerLifetime",
}

// LoadConfig reads a controller config file.
//
// Preserves the open question named in §9: the prior range for
// badger lifetime is read from the key "infectedBadgerLifetime", not
// "infectedBadgerLifetimeRange" like every other parameter — this is
// the source's exact key, kept deliberately rather than normalised.
func LoadConfig(path string) (*Config, error) {
	kv, err := nibtb.KeyValueLines(path)
	if err != nil {
		return nil, err
	}
	if err := nibtb.ValidateKnownKeys(kv, controllerConfigKeys); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if cfg.NumScenarios, err = intKey(kv, "numScenarios"); err != nil {
		return nil, err
	}
	if cfg.SmoothingRatio, err = floatKey(kv, "smoothingRatio"); err != nil {
		return nil, err
	}
	if cfg.PercentageDeviation, err = floatKey(kv, "percentageDeviation"); err != nil {
		return nil, err
	}
	if cfg.ParametersFile, err = stringKey(kv, "parametersFile"); err != nil {
		return nil, err
	}
	if cfg.OutputFile, err = stringKey(kv, "outputFile"); err != nil {
		return nil, err
	}
	if cfg.StateFile, err = stringKey(kv, "stateFile"); err != nil {
		return nil, err
	}
	if cfg.ResultsDir, err = stringKey(kv, "resultsDir"); err != nil {
		return nil, err
	}
	if cfg.ResultsFile, err = stringKey(kv, "resultsFile"); err != nil {
		return nil, err
	}
	if cfg.IncludeBadgers, err = boolKey(kv, "includeBadgers"); err != nil {
		return nil, err
	}

	names := []string{"betaRange", "sigmaRange", "gammaRange", "alphaRange", "alphaPrimeRange", "testSensitivityRange", "mutationRateRange"}
	cfg.Ranges = make([]Range, 0, len(names)+1)
	for _, key := range names {
		r, err := rangeKey(kv, key)
		if err != nil {
			return nil, err
		}
		cfg.Ranges = append(cfg.Ranges, r)
	}
	if cfg.IncludeBadgers {
		r, err := rangeKey(kv, "infectedBadgerLifetime")
		if err != nil {
			return nil, err
		}
		cfg.Ranges = append(cfg.Ranges, r)
	}

	return cfg, nil
}

func intKey(kv map[string]string, key string) (int, error) {
	raw, ok := kv[key]
	if !ok {
		return 0, errors.Errorf("missing required config key %q", key)
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s", key)
	}
	return v, nil
}

func floatKey(kv map[string]string, key string) (float64, error) {
	raw, ok := kv[key]
	if !ok {
		return 0, errors.Errorf("missing required config key %q", key)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s", key)
	}
	return v, nil
}

func stringKey(kv map[string]string, key string) (string, error) {
	raw, ok := kv[key]
	if !ok {
		return "", errors.Errorf("missing required config key %q", key)
	}
	return raw, nil
}

func boolKey(kv map[string]string, key string) (bool, error) {
	raw, ok := kv[key]
	if !ok {
		return false, errors.Errorf("missing required config key %q", key)
	}
	return strings.EqualFold(raw, "true"), nil
}

func rangeKey(kv map[string]string, key string) (Range, error) {
	raw, ok := kv[key]
	if !ok {
		return Range{}, errors.Errorf("missing required config key %q", key)
	}
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return Range{}, errors.Errorf("expected lo:hi range for %s, got %q", key, raw)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Range{}, errors.Wrapf(err, "parsing %s lower bound", key)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Range{}, errors.Wrapf(err, "parsing %s upper bound", key)
	}
	return Range{Lo: lo, Hi: hi}, nil
}
