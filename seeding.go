package nibtb

// SeedScenario performs the §4.5 initialisation: repeatedly samples
// initial infection states until at least one infection is seeded.
// Each farm's starting test state is seeded separately, by
// SeedInitialTestState.
//
// The boundary scenario named in §8 — every configured probability
// vector assigning 1.0 to SUSCEPTIBLE — makes this loop never
// terminate. That is the documented upstream behaviour, not a defect
// introduced here; the loop has no iteration cap, and cmd/scenario
// calls it without a bound.
func SeedScenario(s *Scenario, states []InitialInfectionState) {
	for {
		if seedInfectionsOnce(s, states) {
			return
		}
	}
}

// seedInfectionsOnce runs one pass over the configured candidate
// (cow, farm) pairs, seeding each with the status its probability
// vector draws. Returns true iff at least one non-susceptible
// infection was added.
func seedInfectionsOnce(s *Scenario, states []InitialInfectionState) bool {
	seededAny := false
	for _, candidate := range states {
		farm, ok := s.Farms[candidate.FarmID]
		if !ok {
			continue
		}
		status := drawInfectionStatus(s, candidate.Probs)
		if status == Susceptible {
			continue
		}

		snps, _ := GenerateSNPs(s.SNPs, s.RNG, -1, s.Settings.StartDate, s.Settings.MutationRate)
		cow := NewInfectedCow(candidate.CowID, status, NewSNPSet(snps...), s.Settings.StartDate)
		cow.DateSampleTaken = s.Settings.StartDate
		s.Cows[cow.ID] = cow
		farm.AddInfectedCow(cow.ID)
		s.Tree.Insert(Root, CowRef(cow.ID))
		s.Stats.NumReactors++
		seededAny = true

		if s.Settings.ReservoirsIncluded {
			setts := s.SettsForFarm(farm)
			if len(setts) > 0 {
				sett := setts[s.RNG.Intn(len(setts))]
				badgerID := s.NextBadgerID()
				lifetime := int(s.Settings.BadgerLifetime)
				dateInfected := s.Settings.StartDate - s.RNG.IntRange(0, lifetime)
				badger := NewInfectedBadger(badgerID, NewSNPSet(), s.Settings.StartDate, dateInfected)
				s.Badgers[badgerID] = badger
				sett.AddInfectedBadger(badgerID)
				s.Tree.Insert(Root, BadgerRef(badgerID))
			}
		}
	}
	return seededAny
}

// drawInfectionStatus picks a status from a 4-way probability vector
// indexed by InfectionStatus (§4.5's "p0,p1,p2,p3"), via a single
// Multinomial(1, probs) trial: the category landing the one count is
// the status drawn.
func drawInfectionStatus(s *Scenario, probs [4]float64) InfectionStatus {
	counts := s.RNG.Multinomial(1, probs[:])
	for i, c := range counts {
		if c > 0 {
			return InfectionStatus(i)
		}
	}
	return Susceptible
}

// SeedInitialTestState sets each farm's starting restriction and test
// schedule per §4.5: numInitialRestrictedHerds farms are chosen to
// start restricted, the rest start on a routine testing schedule.
func SeedInitialTestState(s *Scenario, numInitialRestrictedHerds int) {
	farmIDs := make([]int, 0, len(s.Farms))
	for id := range s.Farms {
		farmIDs = append(farmIDs, id)
	}
	order := s.RNG.Perm(len(farmIDs))

	restricted := make(map[int]bool, numInitialRestrictedHerds)
	for i := 0; i < numInitialRestrictedHerds && i < len(order); i++ {
		restricted[farmIDs[order[i]]] = true
	}

	for _, id := range farmIDs {
		farm := s.Farms[id]
		if restricted[id] {
			previousTest := s.Settings.StartDate - s.RNG.IntRange(0, 60)
			farm.LastPositiveTestDate = previousTest
			farm.Restricted = true
			if s.RNG.Float64() < 0.5 {
				farm.NumClearTests = 0
				farm.NextWHTDate = previousTest + 60
			} else {
				farm.NumClearTests = 1
				farm.NextWHTDate = previousTest + 60
			}
			continue
		}
		farm.LastClearTestDate = s.Settings.StartDate - s.RNG.IntRange(0, s.Settings.TestIntervalDays())
		farm.NextWHTDate = farm.LastClearTestDate + s.Settings.TestIntervalDays()
	}
}
