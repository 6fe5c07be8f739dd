package nibtb

import "math"

// BuildKernel rebuilds the transition kernel for the current scenario
// state (§4.1 step 2, §4.2): one KernelEvent per applicable
// (infected cow|badger, transition) pair, each carrying the rate the
// tau-leap loop will draw Poisson(rate*stepSize) occurrences from.
func BuildKernel(s *Scenario) []KernelEvent {
	var kernel []KernelEvent

	for farmID, farm := range s.Farms {
		infected := farm.NumInfected()
		for cowID := range farm.InfectedCows {
			cow, ok := s.Cows[cowID]
			if !ok {
				continue
			}
			switch cow.InfectionStatus {
			case Exposed:
				kernel = append(kernel, KernelEvent{
					Kind: CowSelfTransition, Rate: s.Settings.Sigma,
					FarmID: farmID, SourceCowID: cowID, FinalStatus: TestSensitive,
				})
			case TestSensitive:
				kernel = append(kernel, KernelEvent{
					Kind: CowSelfTransition, Rate: s.Settings.Gamma,
					FarmID: farmID, SourceCowID: cowID, FinalStatus: Infectious,
				})
			case Infectious:
				kernel = append(kernel, KernelEvent{
					Kind: CowInfectsCow,
					Rate: s.Settings.Beta * float64(farm.HerdSize-infected),
					FarmID: farmID, SourceCowID: cowID,
				})
				if s.Settings.IncludesBadgers() {
					for _, sett := range s.SettsForFarm(farm) {
						kernel = append(kernel, KernelEvent{
							Kind: CowInfectsBadger, Rate: s.Settings.AlphaPrime,
							FarmID: farmID, SourceCowID: cowID, SettID: settHandleFor(sett),
						})
					}
				}
			}
		}

		if s.Settings.IncludesBadgers() {
			for _, sett := range s.SettsForFarm(farm) {
				for badgerID := range sett.InfectedBadgers {
					badger, ok := s.Badgers[badgerID]
					if !ok {
						continue
					}
					kernel = append(kernel, KernelEvent{
						Kind: BadgerInfectsCow,
						Rate: s.Settings.Alpha * float64(farm.HerdSize-infected),
						FarmID: farmID, SourceBadgerID: badgerID, SettID: settHandleFor(sett),
					})

					if s.Settings.BadgerLifetime > 0 {
						// Legacy semantics (§4.2, §9): the kernel
						// weight for badger self-decay is the
						// exponential CDF evaluated at the badger's
						// current age, not a true rate. Preserved
						// deliberately; see DESIGN.md.
						lambda := 1.0 / s.Settings.BadgerLifetime
						age := float64(badger.DaysInfected(s.CurrentDate))
						weight := 1 - math.Exp(-lambda*age)
						kernel = append(kernel, KernelEvent{
							Kind: BadgerDecay, Rate: weight,
							FarmID: farmID, SourceBadgerID: badgerID, SettID: settHandleFor(sett),
						})
					}
				}
			}
		}
	}

	return kernel
}

// settHandleFor resolves a *Sett back to the string id the amount
// manager needs to find it again in Scenario.Setts. Kept as a
// function rather than inlined string access so a future move to an
// integer handle arena only touches call sites here.
func settHandleFor(sett *Sett) string {
	return sett.ID
}
