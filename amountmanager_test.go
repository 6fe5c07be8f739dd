package nibtb

import "testing"

func TestApplyCowSelfTransitionAdvancesStatus(t *testing.T) {
	s := sampleScenario(1)
	cow := NewInfectedCow(s.NextCowID(), Exposed, NewSNPSet(), s.CurrentDate)
	s.Cows[cow.ID] = cow

	ApplyEvent(s, KernelEvent{Kind: CowSelfTransition, SourceCowID: cow.ID, FinalStatus: TestSensitive})

	if cow.InfectionStatus != TestSensitive {
		t.Errorf("InfectionStatus = %v, want TestSensitive", cow.InfectionStatus)
	}
}

func TestApplyCowSelfTransitionIgnoresMissingCow(t *testing.T) {
	s := sampleScenario(2)
	// Should not panic even though cow 999 was never added.
	ApplyEvent(s, KernelEvent{Kind: CowSelfTransition, SourceCowID: 999, FinalStatus: Infectious})
}

func TestApplyCowInfectsCowCreatesChildAndEdge(t *testing.T) {
	s := sampleScenario(3)
	farm := s.Farms[1]
	source := NewInfectedCow(s.NextCowID(), Infectious, NewSNPSet(1, 2), s.CurrentDate)
	s.Cows[source.ID] = source
	farm.AddInfectedCow(source.ID)
	s.Tree.Insert(Root, CowRef(source.ID))

	beforeCows := len(s.Cows)
	ApplyEvent(s, KernelEvent{Kind: CowInfectsCow, FarmID: 1, SourceCowID: source.ID})

	if len(s.Cows) != beforeCows+1 {
		t.Fatalf("len(s.Cows) = %d, want %d", len(s.Cows), beforeCows+1)
	}
	if s.Stats.NumCowCowTransmissions != 1 {
		t.Errorf("NumCowCowTransmissions = %d, want 1", s.Stats.NumCowCowTransmissions)
	}

	var childID int
	for id, cow := range s.Cows {
		if id != source.ID {
			childID = cow.ID
		}
	}
	child := s.Cows[childID]
	if child.InfectionStatus != Exposed {
		t.Errorf("new cow status = %v, want Exposed", child.InfectionStatus)
	}
	parent, ok := s.Tree.Parent(CowRef(childID))
	if !ok || parent != CowRef(source.ID) {
		t.Errorf("new cow's tree parent = (%v, %v), want (%v, true)", parent, ok, CowRef(source.ID))
	}
}

func TestApplyBadgerInfectsCowMinimumDiversityCopiesSourceSNPs(t *testing.T) {
	s := sampleScenario(4)
	s.Settings.DiversityModel = MinimumDiversity
	farm := s.Farms[1]
	badger := NewInfectedBadger(s.NextBadgerID(), NewSNPSet(10, 11), 0, s.CurrentDate)
	s.Badgers[badger.ID] = badger

	ApplyEvent(s, KernelEvent{Kind: BadgerInfectsCow, FarmID: 1, SourceBadgerID: badger.ID})

	if s.Stats.NumBadgerCowTransmissions != 1 {
		t.Fatalf("NumBadgerCowTransmissions = %d, want 1", s.Stats.NumBadgerCowTransmissions)
	}
	var child *InfectedCow
	for _, cow := range s.Cows {
		child = cow
	}
	if child == nil {
		t.Fatal("no cow created by BadgerInfectsCow")
	}
	if SymmetricDifferenceSize(child.SNPs, badger.SNPs) != 0 {
		t.Errorf("MinimumDiversity child SNPs differ from source badger's: got %v, want %v", child.SNPs, badger.SNPs)
	}
	_ = farm
}

func TestApplyBadgerDecayRemovesBadgerFromSett(t *testing.T) {
	s := sampleScenario(5)
	sett := s.Setts["S1"]
	badgerID := s.NextBadgerID()
	s.Badgers[badgerID] = NewInfectedBadger(badgerID, NewSNPSet(), 0, s.CurrentDate)
	sett.AddInfectedBadger(badgerID)

	ApplyEvent(s, KernelEvent{Kind: BadgerDecay, SourceBadgerID: badgerID, SettID: "S1"})

	if sett.InfectedBadgers[badgerID] {
		t.Errorf("badger %d still resident in sett after decay", badgerID)
	}
}
