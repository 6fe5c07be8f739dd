package nibtb

// Run drives the scenario from its configured start date to its end
// date in stepSize increments (§4.1), mutating s in place. It returns
// once the continue criterion fails.
func Run(s *Scenario) {
	for {
		if s.CurrentDate > s.Settings.EndDate {
			return
		}
		if s.TotalInfectedCows() > s.Settings.MaxOutbreakSize {
			return
		}

		RegisterThetaEvents(s, s.CurrentDate, s.Settings.StepSize)
		RunMovementPhase(s, s.CurrentDate, s.Settings.StepSize)
		RunSlaughterPhase(s, s.CurrentDate, s.Settings.StepSize)

		kernel := BuildKernel(s)
		if len(kernel) == 0 {
			return
		}

		for _, candidate := range kernel {
			occurrences := s.RNG.Poisson(candidate.Rate * float64(s.Settings.StepSize))
			for i := 0; i < occurrences; i++ {
				ApplyEvent(s, candidate)
			}
		}

		s.CurrentDate += s.Settings.StepSize
	}
}
