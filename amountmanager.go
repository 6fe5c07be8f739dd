package nibtb

// ApplyEvent dispatches one KernelEvent occurrence against the
// scenario state, per the exhaustive case analysis in §4.3. If the
// source cow or badger is no longer present (removed earlier in the
// same step by a test), the event is silently discarded.
func ApplyEvent(s *Scenario, ev KernelEvent) {
	switch ev.Kind {
	case CowSelfTransition:
		applyCowSelfTransition(s, ev)
	case CowInfectsCow:
		applyCowInfectsCow(s, ev)
	case CowInfectsBadger:
		applyCowInfectsBadger(s, ev)
	case BadgerInfectsCow:
		applyBadgerInfectsCow(s, ev)
	case BadgerDecay:
		applyBadgerDecay(s, ev)
	}
}

func applyCowSelfTransition(s *Scenario, ev KernelEvent) {
	cow, ok := s.Cows[ev.SourceCowID]
	if !ok || cow.InfectionStatus == Susceptible {
		return
	}
	snps, gen := GenerateSNPs(s.SNPs, s.RNG, s.CurrentDate, cow.LastSnpGeneration, s.Settings.MutationRate)
	cow.SNPs.Add(snps...)
	cow.LastSnpGeneration = gen
	cow.InfectionStatus = ev.FinalStatus
}

func applyCowInfectsCow(s *Scenario, ev KernelEvent) {
	source, ok := s.Cows[ev.SourceCowID]
	if !ok {
		return
	}
	farm, ok := s.Farms[ev.FarmID]
	if !ok {
		return
	}
	snps, gen := GenerateSNPs(s.SNPs, s.RNG, s.CurrentDate, source.LastSnpGeneration, s.Settings.MutationRate)
	source.LastSnpGeneration = gen

	newID := s.NextCowID()
	child := NewInfectedCow(newID, Exposed, source.SNPs.Union(NewSNPSet(snps...)), s.CurrentDate)
	s.Cows[newID] = child
	farm.AddInfectedCow(newID)
	s.Tree.Insert(CowRef(ev.SourceCowID), CowRef(newID))
	s.Stats.NumCowCowTransmissions++
	s.emitTransmission(CowInfectsCow, ev.SourceCowID, newID)
}

func applyCowInfectsBadger(s *Scenario, ev KernelEvent) {
	source, ok := s.Cows[ev.SourceCowID]
	if !ok {
		return
	}
	sett, ok := s.Setts[ev.SettID]
	if !ok {
		return
	}
	newID := s.NextBadgerID()
	badger := NewInfectedBadger(newID, source.SNPs.Clone(), source.LastSnpGeneration, s.CurrentDate)
	s.Badgers[newID] = badger
	sett.AddInfectedBadger(newID)
	s.Tree.Insert(CowRef(ev.SourceCowID), BadgerRef(newID))
	s.Stats.NumCowBadgerTransmissions++
	s.emitTransmission(CowInfectsBadger, ev.SourceCowID, newID)
}

func applyBadgerInfectsCow(s *Scenario, ev KernelEvent) {
	source, ok := s.Badgers[ev.SourceBadgerID]
	if !ok {
		return
	}
	farm, ok := s.Farms[ev.FarmID]
	if !ok {
		return
	}

	var contributed SNPSet
	switch s.Settings.DiversityModel {
	case MaximumDiversity:
		contributed = NewSNPSet()
		for _, sett := range s.SettsForFarm(farm) {
			for badgerID := range sett.InfectedBadgers {
				b, ok := s.Badgers[badgerID]
				if !ok {
					continue
				}
				snps, gen := GenerateSNPs(s.SNPs, s.RNG, s.CurrentDate, b.LastSnpGeneration, s.Settings.MutationRate)
				b.SNPs.Add(snps...)
				b.LastSnpGeneration = gen
				contributed = contributed.Union(b.SNPs)
			}
		}
	case MinimumDiversity:
		contributed = source.SNPs.Clone()
	case IntermediateDiversity:
		snps, gen := GenerateSNPs(s.SNPs, s.RNG, s.CurrentDate, source.LastSnpGeneration, s.Settings.MutationRate)
		source.SNPs.Add(snps...)
		source.LastSnpGeneration = gen
		contributed = source.SNPs.Clone()
	default:
		contributed = source.SNPs.Clone()
	}

	newID := s.NextCowID()
	child := NewInfectedCow(newID, Exposed, contributed, s.CurrentDate)
	s.Cows[newID] = child
	farm.AddInfectedCow(newID)
	s.Tree.Insert(BadgerRef(ev.SourceBadgerID), CowRef(newID))
	s.Stats.NumBadgerCowTransmissions++
	s.emitTransmission(BadgerInfectsCow, ev.SourceBadgerID, newID)
}

func applyBadgerDecay(s *Scenario, ev KernelEvent) {
	sett, ok := s.Setts[ev.SettID]
	if !ok {
		return
	}
	sett.RemoveInfectedBadger(ev.SourceBadgerID)
}
