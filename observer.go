package nibtb

import (
	"math"

	"github.com/anthonyohare/nibtb/internal/stats"
)

// testCow applies the shared skin-test rule used by both the WHT and
// the pre-movement/pre-slaughter tests (§4.4): a cow reacts iff it is
// TESTSENSITIVE or INFECTIOUS and a uniform draw falls under
// testSensitivity. A reactor's SNPs are regenerated to date and its
// sample date is stamped, regardless of what the caller then does
// with it.
func testCow(s *Scenario, cow *InfectedCow, date int) bool {
	u := s.RNG.Float64()
	reactor := (cow.InfectionStatus == TestSensitive || cow.InfectionStatus == Infectious) && u < s.Settings.TestSensitivity
	if reactor {
		snps, gen := GenerateSNPs(s.SNPs, s.RNG, date, cow.LastSnpGeneration, s.Settings.MutationRate)
		cow.SNPs.Add(snps...)
		cow.LastSnpGeneration = gen
		cow.DateSampleTaken = date
	}
	return reactor
}

// addClearTest applies §4.4's clear-test bookkeeping after a WHT with
// zero reactors.
func addClearTest(s *Scenario, farm *Farm, date int) {
	if farm.NumClearTests == -1 || farm.NumClearTests >= 2 {
		farm.NextWHTDate = date + 365*s.Settings.TestIntervalInYears
		farm.Restricted = false
		farm.NumClearTests = -1
		return
	}
	farm.NumClearTests++
	farm.NextWHTDate = date + 60
	farm.Restricted = true
}

// PerformWHT runs a whole-herd test on farm at the given date (§4.4).
func PerformWHT(s *Scenario, farm *Farm, date int) {
	cowIDs := make([]int, 0, len(farm.InfectedCows))
	for cowID := range farm.InfectedCows {
		cowIDs = append(cowIDs, cowID)
	}

	reactors := 0
	for _, cowID := range cowIDs {
		cow, ok := s.Cows[cowID]
		if !ok {
			continue
		}
		if testCow(s, cow, date) {
			reactors++
			farm.RemoveInfectedCow(cowID)
			s.Stats.NumReactors++
			s.emitReactor(farm.ID, cowID)
		}
	}

	if reactors > 0 {
		farm.LastPositiveTestDate = date
		farm.NumClearTests = 0
		farm.NextWHTDate = date + 60
		farm.Restricted = true
		s.Stats.NumBreakdowns++
		s.Stats.ReactorsAtBreakdownDistribution[reactors]++
		return
	}
	addClearTest(s, farm, date)
}

// RegisterThetaEvents fires a WHT for every farm whose nextWHTDate
// falls inside [currentTime, currentTime+stepSize) (§4.4 "Theta
// registration").
func RegisterThetaEvents(s *Scenario, currentTime, stepSize int) {
	for _, farm := range s.Farms {
		if farm.NextWHTDate >= currentTime && farm.NextWHTDate < currentTime+stepSize {
			PerformWHT(s, farm, farm.NextWHTDate)
		}
	}
}

// RunMovementPhase relocates animals between farms for the step
// (§4.4 "Movement phase").
func RunMovementPhase(s *Scenario, currentTime, stepSize int) {
	freqs := s.Settings.MovementFrequencies
	if len(freqs) == 0 {
		return
	}
	movesPerStep := float64(s.Settings.NumMovements) * float64(stepSize) /
		float64(s.Settings.EndDate-s.Settings.StartDate)

	moved := 0.0
	for moved < movesPerStep {
		pair := freqs[s.RNG.Intn(len(freqs))]
		departure, ok := s.Farms[pair.Departure]
		if !ok {
			moved++
			continue
		}
		destination, ok := s.Farms[pair.Destination]
		if !ok {
			moved++
			continue
		}
		if departure.Restricted || destination.Restricted {
			moved++
			continue
		}

		numAnimalsToBeMoved := departure.OffMovementHistogram.Sample(s.RNG.Float64())
		if numAnimalsToBeMoved <= 0 {
			moved++
			continue
		}

		infectedOnFarm := departure.NumInfected()
		if departure.HerdSize < numAnimalsToBeMoved {
			departure.HerdSize = numAnimalsToBeMoved
		}
		if departure.HerdSize < infectedOnFarm {
			departure.HerdSize = infectedOnFarm
		}

		numInfectedToMove := stats.Hypergeometric(s.RNG, departure.HerdSize, numAnimalsToBeMoved, infectedOnFarm)

		infectedCowIDs := make([]int, 0, len(departure.InfectedCows))
		for cowID := range departure.InfectedCows {
			infectedCowIDs = append(infectedCowIDs, cowID)
		}
		if numInfectedToMove > len(infectedCowIDs) {
			numInfectedToMove = len(infectedCowIDs)
		}
		candidates := infectedCowIDs[:numInfectedToMove]

		anyDetected := false
		for _, cowID := range candidates {
			cow, ok := s.Cows[cowID]
			if !ok {
				continue
			}
			if testCow(s, cow, currentTime) {
				anyDetected = true
			}
		}

		if anyDetected {
			for _, cowID := range candidates {
				departure.RemoveInfectedCow(cowID)
			}
			departure.LastPositiveTestDate = currentTime
			departure.NumClearTests = 0
			departure.NextWHTDate = currentTime + 60
			departure.Restricted = true
			s.Stats.NumBreakdowns++
		} else {
			for _, cowID := range candidates {
				departure.RemoveInfectedCow(cowID)
				destination.AddInfectedCow(cowID)
			}
			if destination.HerdSize < destination.NumInfected() {
				destination.HerdSize = destination.NumInfected()
			}
			s.Stats.NumInfectedAnimalsMoved += len(candidates)
		}

		s.emitMovement(departure.ID, destination.ID, numAnimalsToBeMoved, len(candidates))
		departure.OffMovementHistogram.Tally(numAnimalsToBeMoved)
		moved++
	}
}

// RunSlaughterPhase removes animals dispatched to slaughter in the
// step, testing each infected one removed (§4.4 "Slaughter phase").
func RunSlaughterPhase(s *Scenario, currentTime, stepSize int) {
	windowStart := currentTime - stepSize
	var farmsMovingAnimals []*Farm
	for _, farm := range s.Farms {
		for _, d := range farm.SlaughterDates {
			if d >= windowStart && d < currentTime {
				farmsMovingAnimals = append(farmsMovingAnimals, farm)
				break
			}
		}
	}
	if len(farmsMovingAnimals) == 0 {
		return
	}
	order := s.RNG.Perm(len(farmsMovingAnimals)) // shuffle order, per §4.4
	shuffled := make([]*Farm, len(farmsMovingAnimals))
	for i, idx := range order {
		shuffled[i] = farmsMovingAnimals[idx]
	}

	movesForPeriod := float64(s.Settings.NumSlaughters) * float64(stepSize) /
		float64(s.Settings.EndDate-s.Settings.StartDate)
	maxPerFarm := int(math.Ceil(movesForPeriod / float64(len(shuffled))))
	if maxPerFarm < 1 {
		maxPerFarm = 1
	}

	totalMoved := 0.0
	for _, farm := range shuffled {
		if totalMoved > movesForPeriod {
			break
		}
		numAnimalsToMove := 1 + s.RNG.Intn(maxPerFarm)
		infectedOnFarm := farm.NumInfected()
		if farm.HerdSize < numAnimalsToMove {
			farm.HerdSize = numAnimalsToMove
		}
		numInfectedForRemoval := stats.Hypergeometric(s.RNG, farm.HerdSize, numAnimalsToMove, infectedOnFarm)

		infectedCowIDs := make([]int, 0, len(farm.InfectedCows))
		for cowID := range farm.InfectedCows {
			infectedCowIDs = append(infectedCowIDs, cowID)
		}
		if numInfectedForRemoval > len(infectedCowIDs) {
			numInfectedForRemoval = len(infectedCowIDs)
		}
		candidates := infectedCowIDs[:numInfectedForRemoval]

		for _, cowID := range candidates {
			cow, ok := s.Cows[cowID]
			if !ok {
				continue
			}
			detected := testCow(s, cow, currentTime)
			farm.RemoveInfectedCow(cowID)
			if detected {
				farm.LastPositiveTestDate = currentTime
				farm.NumClearTests = 0
				farm.NextWHTDate = currentTime + 60
				farm.Restricted = true
				s.Stats.NumDetectedAnimalsAtSlaughter++
				s.emitReactor(farm.ID, cowID)
			} else {
				s.Stats.NumUndetectedAnimalsAtSlaughter++
			}
		}

		farm.HerdSize -= numAnimalsToMove
		if farm.HerdSize < 0 {
			farm.HerdSize = 0
		}
		totalMoved += float64(numAnimalsToMove)
	}
}
