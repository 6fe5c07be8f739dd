package nibtb

import "github.com/anthonyohare/nibtb/internal/stats"

// sampleSettings returns a ProjectSettings with plausible rates for
// exercising the kernel and amount manager in tests, without any of
// the file-backed fields LoadScenarioConfig would normally populate.
func sampleSettings() ProjectSettings {
	return ProjectSettings{
		Beta:                0.01,
		Sigma:                0.05,
		Gamma:                0.02,
		Alpha:                0.1,
		AlphaPrime:           0.05,
		TestSensitivity:      0.8,
		MutationRate:         1e-4,
		BadgerLifetime:       4 * 365,
		ReservoirsIncluded:   true,
		StartDate:            0,
		EndDate:              365 * 5,
		StepSize:             30,
		NumMovements:         100,
		NumSlaughters:        50,
		TestIntervalInYears:  1,
		MaxOutbreakSize:      1000,
		DiversityModel:       IntermediateDiversity,
		SamplingRatesPerYear: map[int]float64{0: 1.0, 1: 1.0, 2: 1.0},
	}
}

// sampleFarm builds a farm with the given id and herd size and a
// single connected sett, wiring both sides of the link the way
// NewScenario does.
func sampleFarm(id, herdSize int, settID string) (*Farm, *Sett) {
	farm := NewFarm(id, herdSize)
	farm.Setts = append(farm.Setts, settID)
	sett := NewSett(settID)
	sett.Farms = append(sett.Farms, id)
	return farm, sett
}

// sampleScenario builds a two-farm, two-sett scenario wired up the
// way NewScenario would, for tests that exercise the kernel, amount
// manager, and observer phases without going through config files.
func sampleScenario(seed int64) *Scenario {
	cfg := &ScenarioConfig{
		Settings: sampleSettings(),
		FarmIDs:  []int{1, 2},
		Setts: []SettDefinition{
			{SettID: "S1", FarmIDs: []int{1}},
			{SettID: "S2", FarmIDs: []int{2}},
		},
	}
	cfg.Settings.ObservedSNPDistribution = stats.NewIntHistogram()
	cfg.Settings.MovementFrequencies = []MovementFrequency{
		{Departure: 1, Destination: 2, Counts: []int{1, 2, 3}},
	}
	return NewScenario(cfg, seed)
}

// sampleInfectedCow creates an infected cow with a small seeded SNP
// set, for tests that exercise SNP distance and scoring without
// running a full scenario.
func sampleInfectedCow(id int, snps ...int) *InfectedCow {
	return NewInfectedCow(id, Infectious, NewSNPSet(snps...), 0)
}

// sampleInfectedBadger creates an infected badger with a small seeded
// SNP set.
func sampleInfectedBadger(id int, infectedDate int, snps ...int) *InfectedBadger {
	return NewInfectedBadger(id, NewSNPSet(snps...), 0, infectedDate)
}
