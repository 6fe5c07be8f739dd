package nibtb

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Manifest bundles the file paths a scenario config's k=v file would
// otherwise repeat across every scenario in a cluster study: farm and
// sett lists, the slaughterhouse moves file, and the observed-data
// files, all sharing one directory tree. It is an optional
// convenience layer on top of LoadScenarioConfig, not a replacement
// for the k=v scenario config format named in §6.
type Manifest struct {
	FarmIDsFile                    string `toml:"farm_ids_file"`
	SettIDsFile                    string `toml:"sett_ids_file"`
	SlaughterhouseMovesFile        string `toml:"slaughterhouse_moves_file"`
	ObservedSNPPairwiseDistanceFile string `toml:"observed_snp_pairwise_distance_file"`
	MovementFrequenciesFile        string `toml:"movement_frequencies_file"`
	SamplingRateFile                string `toml:"sampling_rate_file"`
}

// LoadManifest reads a TOML manifest file.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, errors.Wrapf(err, "decoding manifest %s", path)
	}
	return &m, nil
}

// ApplyManifest overlays a manifest's file paths onto a key=value
// config map for any key the manifest sets but the config file left
// unspecified, letting a scenario config file omit paths that are
// already fixed by its cluster's manifest.
func ApplyManifest(kv map[string]string, m *Manifest) {
	setIfAbsent(kv, "farmIds", m.FarmIDsFile)
	setIfAbsent(kv, "settIds", m.SettIDsFile)
	setIfAbsent(kv, "slaughterhouseMovesFile", m.SlaughterhouseMovesFile)
	setIfAbsent(kv, "observedSnpPairwiseDistanceFile", m.ObservedSNPPairwiseDistanceFile)
	setIfAbsent(kv, "movementFrequenciesFile", m.MovementFrequenciesFile)
	setIfAbsent(kv, "samplingRateFile", m.SamplingRateFile)
}

func setIfAbsent(kv map[string]string, key, value string) {
	if value == "" {
		return
	}
	if _, ok := kv[key]; !ok {
		kv[key] = value
	}
}
