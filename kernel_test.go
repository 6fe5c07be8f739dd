package nibtb

import "testing"

func TestBuildKernelProducesSelfTransitionForExposedCow(t *testing.T) {
	s := sampleScenario(1)
	farm := s.Farms[1]
	cow := NewInfectedCow(s.NextCowID(), Exposed, NewSNPSet(), s.CurrentDate)
	s.Cows[cow.ID] = cow
	farm.AddInfectedCow(cow.ID)

	kernel := BuildKernel(s)
	found := false
	for _, ev := range kernel {
		if ev.Kind == CowSelfTransition && ev.SourceCowID == cow.ID && ev.FinalStatus == TestSensitive {
			found = true
			if ev.Rate != s.Settings.Sigma {
				t.Errorf("self-transition rate = %f, want sigma = %f", ev.Rate, s.Settings.Sigma)
			}
		}
	}
	if !found {
		t.Errorf("no Exposed -> TestSensitive self-transition event found in kernel")
	}
}

func TestBuildKernelInfectiousCowGeneratesCowInfectsCowAndBadger(t *testing.T) {
	s := sampleScenario(2)
	farm := s.Farms[1]
	cow := NewInfectedCow(s.NextCowID(), Infectious, NewSNPSet(), s.CurrentDate)
	s.Cows[cow.ID] = cow
	farm.AddInfectedCow(cow.ID)

	kernel := BuildKernel(s)
	var sawCowInfectsCow, sawCowInfectsBadger bool
	for _, ev := range kernel {
		switch {
		case ev.Kind == CowInfectsCow && ev.SourceCowID == cow.ID:
			sawCowInfectsCow = true
			wantRate := s.Settings.Beta * float64(farm.HerdSize-farm.NumInfected())
			if ev.Rate != wantRate {
				t.Errorf("cow-infects-cow rate = %f, want %f", ev.Rate, wantRate)
			}
		case ev.Kind == CowInfectsBadger && ev.SourceCowID == cow.ID:
			sawCowInfectsBadger = true
		}
	}
	if !sawCowInfectsCow {
		t.Errorf("no CowInfectsCow event found for an Infectious cow")
	}
	if !sawCowInfectsBadger {
		t.Errorf("no CowInfectsBadger event found when reservoirs are included")
	}
}

func TestBuildKernelExcludesBadgerEventsWhenReservoirsExcluded(t *testing.T) {
	s := sampleScenario(3)
	s.Settings.ReservoirsIncluded = false
	farm := s.Farms[1]
	cow := NewInfectedCow(s.NextCowID(), Infectious, NewSNPSet(), s.CurrentDate)
	s.Cows[cow.ID] = cow
	farm.AddInfectedCow(cow.ID)

	kernel := BuildKernel(s)
	for _, ev := range kernel {
		if ev.Kind == CowInfectsBadger || ev.Kind == BadgerInfectsCow || ev.Kind == BadgerDecay {
			t.Errorf("badger event %v present despite ReservoirsIncluded == false", ev.Kind)
		}
	}
}
