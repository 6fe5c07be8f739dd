package nibtb

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// InitialInfectionState is one parsed triple from the
// initialInfectionStates config key: a candidate cow on a candidate
// farm, and the probability vector over the four InfectionStatus
// values used to pick its seeded status (§4.5).
type InitialInfectionState struct {
	CowID  int
	FarmID int
	Probs  [4]float64 // indexed by InfectionStatus
}

// ParseInitialInfectionStates parses the ";"-separated
// "cowId:farmId:p0,p1,p2,p3" triples named in §4.5.
func ParseInitialInfectionStates(raw string) ([]InitialInfectionState, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var out []InitialInfectionState
	for _, triple := range strings.Split(raw, ";") {
		triple = strings.TrimSpace(triple)
		if triple == "" {
			continue
		}
		parts := strings.SplitN(triple, ":", 3)
		if len(parts) != 3 {
			return nil, errors.Errorf("expected cowId:farmId:p0,p1,p2,p3, got %q", triple)
		}
		cowID, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, errors.Wrapf(err, "parsing cow id in %q", triple)
		}
		farmID, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, errors.Wrapf(err, "parsing farm id in %q", triple)
		}
		probFields := strings.Split(parts[2], ",")
		if len(probFields) != 4 {
			return nil, errors.Errorf("expected 4 probabilities, got %q", triple)
		}
		var probs [4]float64
		for i, f := range probFields {
			p, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "parsing probability %d in %q", i, triple)
			}
			probs[i] = p
		}
		out = append(out, InitialInfectionState{CowID: cowID, FarmID: farmID, Probs: probs})
	}
	return out, nil
}

// ScenarioConfig is the fully resolved contents of a scenario config
// file (§6): the immutable ProjectSettings plus the farm/sett
// universe and seeding instructions that set up a fresh Scenario.
type ScenarioConfig struct {
	Settings ProjectSettings

	FarmIDs []int
	Setts   []SettDefinition

	InitialInfectionStates    []InitialInfectionState
	NumInitialRestrictedHerds int

	SlaughterhouseMoves []SlaughterhouseMove
}

// scenarioConfigKeys lists every key=value key LoadScenarioConfig
// recognizes, for ValidateKnownKeys (§9).
var scenarioConfigKeys = []string{
	"manifest",
	"farmIds",
	"settIds",
	"initialInfectionStates",
	"diversityModel",
	"slaughterhouseMovesFile",
	"observedSnpPairwiseDistanceFile",
	"movementFrequenciesFile",
	"samplingRateFile",
	"testIntervalInYears",
	"numInitialRestrictedHerds",
	"maxOutbreakSize",
	"stepSize",
	"numMovements",
	"numSlaughters",
	"startDate",
	"endDate",
	"reservoirsIncluded",
	"dateFormat",
	"badgerLifetime",
}

// LoadScenarioConfig reads and validates a scenario config file and
// every file it references (§6 "Scenario config file").
func LoadScenarioConfig(path string) (*ScenarioConfig, error) {
	kv, err := KeyValueLines(path)
	if err != nil {
		return nil, err
	}

	if manifestPath, ok := kv["manifest"]; ok {
		manifest, err := LoadManifest(manifestPath)
		if err != nil {
			return nil, errors.Wrap(err, "loading manifest")
		}
		ApplyManifest(kv, manifest)
	}

	if err := ValidateKnownKeys(kv, scenarioConfigKeys); err != nil {
		return nil, err
	}

	cfg := &ScenarioConfig{}

	farmIDsFile, err := requireKey(kv, "farmIds")
	if err != nil {
		return nil, err
	}
	cfg.FarmIDs, err = ReadFarmIDs(farmIDsFile)
	if err != nil {
		return nil, errors.Wrap(err, "reading farm ids")
	}

	settIDsFile, err := requireKey(kv, "settIds")
	if err != nil {
		return nil, err
	}
	cfg.Setts, err = ReadSettDefinitions(settIDsFile)
	if err != nil {
		return nil, errors.Wrap(err, "reading sett ids")
	}

	rawStates, err := requireKey(kv, "initialInfectionStates")
	if err != nil {
		return nil, err
	}
	cfg.InitialInfectionStates, err = ParseInitialInfectionStates(rawStates)
	if err != nil {
		return nil, errors.Wrap(err, "parsing initialInfectionStates")
	}

	diversityRaw, err := requireKey(kv, "diversityModel")
	if err != nil {
		return nil, err
	}
	cfg.Settings.DiversityModel, err = ParseDiversityModel(diversityRaw)
	if err != nil {
		return nil, err
	}

	slaughterFile, err := requireKey(kv, "slaughterhouseMovesFile")
	if err != nil {
		return nil, err
	}
	cfg.SlaughterhouseMoves, err = ReadSlaughterhouseMoves(slaughterFile)
	if err != nil {
		return nil, errors.Wrap(err, "reading slaughterhouse moves")
	}

	snpFile, err := requireKey(kv, "observedSnpPairwiseDistanceFile")
	if err != nil {
		return nil, err
	}
	cfg.Settings.ObservedSNPDistribution, err = ReadObservedSNPDistribution(snpFile)
	if err != nil {
		return nil, errors.Wrap(err, "reading observed SNP pairwise distance file")
	}

	moveFreqFile, err := requireKey(kv, "movementFrequenciesFile")
	if err != nil {
		return nil, err
	}
	cfg.Settings.MovementFrequencies, err = ReadMovementFrequencies(moveFreqFile)
	if err != nil {
		return nil, errors.Wrap(err, "reading movement frequencies")
	}

	samplingFile, err := requireKey(kv, "samplingRateFile")
	if err != nil {
		return nil, err
	}
	cfg.Settings.SamplingRatesPerYear, err = ReadSamplingRates(samplingFile)
	if err != nil {
		return nil, errors.Wrap(err, "reading sampling rates")
	}

	if cfg.Settings.TestIntervalInYears, err = parseIntKey(kv, "testIntervalInYears"); err != nil {
		return nil, err
	}
	if cfg.NumInitialRestrictedHerds, err = parseIntKey(kv, "numInitialRestrictedHerds"); err != nil {
		return nil, err
	}
	if cfg.Settings.MaxOutbreakSize, err = parseIntKey(kv, "maxOutbreakSize"); err != nil {
		return nil, err
	}
	if cfg.Settings.StepSize, err = parseIntKey(kv, "stepSize"); err != nil {
		return nil, err
	}
	if cfg.Settings.NumMovements, err = parseIntKey(kv, "numMovements"); err != nil {
		return nil, err
	}
	if cfg.Settings.NumSlaughters, err = parseIntKey(kv, "numSlaughters"); err != nil {
		return nil, err
	}
	if cfg.Settings.StartDate, err = parseIntKey(kv, "startDate"); err != nil {
		return nil, err
	}
	if cfg.Settings.EndDate, err = parseIntKey(kv, "endDate"); err != nil {
		return nil, err
	}
	if cfg.Settings.ReservoirsIncluded, err = parseBoolKey(kv, "reservoirsIncluded"); err != nil {
		return nil, err
	}
	cfg.Settings.DateFormat = kv["dateFormat"]

	if lifetime, ok, err := optionalFloatKey(kv, "badgerLifetime"); err != nil {
		return nil, err
	} else if ok {
		cfg.Settings.BadgerLifetime = lifetime
	}

	return cfg, nil
}

// parametersFileKeys lists every key=value key LoadParameters
// recognizes, for ValidateKnownKeys (§9).
var parametersFileKeys = []string{
	"beta",
	"sigma",
	"gamma",
	"alpha",
	"alphaPrime",
	"testSensitivity",
	"mutationRate",
	"infectedBadgerLifetime",
}

// LoadParameters reads a parameters file (§6 "Parameters file") into
// the rate fields of a ProjectSettings, leaving every other field
// untouched. Scenario drivers call this after LoadScenarioConfig to
// layer the controller-proposed parameter vector on top of the static
// scenario configuration.
func LoadParameters(path string, settings *ProjectSettings) error {
	kv, err := KeyValueLines(path)
	if err != nil {
		return err
	}
	if err := ValidateKnownKeys(kv, parametersFileKeys); err != nil {
		return err
	}
	var perr error
	if settings.Beta, perr = parseFloatKey(kv, "beta"); perr != nil {
		return perr
	}
	if settings.Sigma, perr = parseFloatKey(kv, "sigma"); perr != nil {
		return perr
	}
	if settings.Gamma, perr = parseFloatKey(kv, "gamma"); perr != nil {
		return perr
	}
	if settings.Alpha, perr = parseFloatKey(kv, "alpha"); perr != nil {
		return perr
	}
	if settings.AlphaPrime, perr = parseFloatKey(kv, "alphaPrime"); perr != nil {
		return perr
	}
	if settings.TestSensitivity, perr = parseFloatKey(kv, "testSensitivity"); perr != nil {
		return perr
	}
	if settings.MutationRate, perr = parseFloatKey(kv, "mutationRate"); perr != nil {
		return perr
	}
	if lifetime, ok, err := optionalFloatKey(kv, "infectedBadgerLifetime"); err != nil {
		return err
	} else if ok {
		settings.BadgerLifetime = lifetime
	}
	return nil
}
