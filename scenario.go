package nibtb

import (
	"github.com/anthonyohare/nibtb/internal/rng"
)

// Scenario owns every flat arena for one simulation run: farms,
// setts, infected cows, infected badgers, the infection tree, and the
// process-wide id counters that mint fresh handles into those arenas.
// Cyclic farm<->sett<->badger references never appear as struct
// pointers; everything is addressed by integer (or string, for setts)
// handle and resolved back through these maps (§9).
type Scenario struct {
	Settings ProjectSettings

	Farms map[int]*Farm
	Setts map[string]*Sett

	Cows    map[int]*InfectedCow
	Badgers map[int]*InfectedBadger

	Tree *InfectionTree
	SNPs *SNPCounter

	// RunID uniquely and sortably identifies this scenario run, so its
	// result file can be traced back to the run that produced it.
	RunID RunID

	nextCowID    int
	nextBadgerID int
	nextSettSeq  int

	RNG *rng.Generator

	CurrentDate int

	Stats ScenarioStats

	// InstanceID tags every emitted event, so a DataLogger draining
	// several scenarios' channels into a shared destination can tell
	// them apart.
	InstanceID int

	// Events, when non-nil, receives every transmission/reactor/
	// movement event as it happens so a DataLogger can drain it
	// concurrently. A scenario with no sink attached runs identically,
	// it just produces no diagnostic trail beyond ScenarioStats.
	Events *EventSink
}

// EventSink is the set of channels a Scenario feeds as it runs; the
// caller is responsible for starting a DataLogger's WriteTransmission/
// WriteReactor/WriteMovement goroutines against these channels before
// the scenario runs, and closing them once it finishes.
type EventSink struct {
	Transmissions chan<- TransmissionEvent
	Reactors      chan<- ReactorEvent
	Movements     chan<- MovementEvent
}

func (s *Scenario) emitTransmission(kind EventKind, sourceID, targetID int) {
	if s.Events == nil || s.Events.Transmissions == nil {
		return
	}
	s.Events.Transmissions <- TransmissionEvent{InstanceID: s.InstanceID, Date: s.CurrentDate, Kind: kind, SourceID: sourceID, TargetID: targetID}
}

func (s *Scenario) emitReactor(farmID, cowID int) {
	if s.Events == nil || s.Events.Reactors == nil {
		return
	}
	s.Events.Reactors <- ReactorEvent{InstanceID: s.InstanceID, Date: s.CurrentDate, FarmID: farmID, CowID: cowID}
}

func (s *Scenario) emitMovement(departureFarmID, destinationFarmID, numAnimals, numInfected int) {
	if s.Events == nil || s.Events.Movements == nil {
		return
	}
	s.Events.Movements <- MovementEvent{
		InstanceID:         s.InstanceID,
		Date:               s.CurrentDate,
		DepartureFarmID:    departureFarmID,
		DestinationFarmID:  destinationFarmID,
		NumAnimals:         numAnimals,
		NumInfectedAnimals: numInfected,
	}
}

// ScenarioStats accumulates the counters a scenario result file
// reports at the end of a run (§6 "Scenario result file").
type ScenarioStats struct {
	NumCowCowTransmissions          int
	NumCowBadgerTransmissions       int
	NumBadgerCowTransmissions       int
	NumReactors                     int
	NumBreakdowns                   int
	NumDetectedAnimalsAtSlaughter   int
	NumUndetectedAnimalsAtSlaughter int
	NumInfectedAnimalsMoved         int
	ReactorsAtBreakdownDistribution map[int]int
}

// NewScenario builds an empty scenario context from a resolved
// configuration, with farms and setts already linked. Infection
// seeding (§4.5) is a separate step performed by SeedScenario.
func NewScenario(cfg *ScenarioConfig, seed int64) *Scenario {
	s := &Scenario{
		Settings:    cfg.Settings,
		Farms:       make(map[int]*Farm, len(cfg.FarmIDs)),
		Setts:       make(map[string]*Sett),
		Cows:        make(map[int]*InfectedCow),
		Badgers:     make(map[int]*InfectedBadger),
		Tree:        NewInfectionTree(),
		SNPs:        NewSNPCounter(),
		RunID:       NewRunID(),
		RNG:         rng.New(),
		CurrentDate: cfg.Settings.StartDate,
		Stats: ScenarioStats{
			ReactorsAtBreakdownDistribution: make(map[int]int),
		},
	}
	s.RNG.Seed(seed)

	for _, id := range cfg.FarmIDs {
		s.Farms[id] = NewFarm(id, s.RNG.TruncatedGaussianHerdSize())
	}

	for _, def := range cfg.Setts {
		sett := NewSett(def.SettID)
		sett.Farms = append(sett.Farms, def.FarmIDs...)
		s.Setts[def.SettID] = sett
		for _, fid := range def.FarmIDs {
			if farm, ok := s.Farms[fid]; ok {
				farm.Setts = append(farm.Setts, def.SettID)
			}
		}
	}

	// Synthesise a reservoir sett for any farm left unconnected (§3
	// invariant: every farm has >= 1 connected sett).
	for id, farm := range s.Farms {
		if len(farm.Setts) > 0 {
			continue
		}
		reservoirID := SynthesizeReservoirID(s.nextSettSeq)
		s.nextSettSeq++
		reservoir := NewSett(reservoirID)
		reservoir.Farms = []int{id}
		s.Setts[reservoirID] = reservoir
		farm.Setts = append(farm.Setts, reservoirID)
	}

	for _, move := range cfg.SlaughterhouseMoves {
		for _, fid := range move.FarmIDs {
			if farm, ok := s.Farms[fid]; ok {
				farm.SlaughterDates = append(farm.SlaughterDates, move.Date)
			}
		}
	}

	// Seed each departure farm's off-movement histogram from its
	// configured movement-frequency counts (§6 "movement frequencies"),
	// so RunMovementPhase's Sample draw has something other than the
	// empty histogram's unconditional 0 to work with.
	for _, freq := range cfg.Settings.MovementFrequencies {
		farm, ok := s.Farms[freq.Departure]
		if !ok {
			continue
		}
		for _, count := range freq.Counts {
			farm.OffMovementHistogram.Tally(count)
		}
	}

	return s
}

// NextCowID mints a fresh cow handle (Cow_<seq> in §4.3's naming).
func (s *Scenario) NextCowID() int {
	id := s.nextCowID
	s.nextCowID++
	return id
}

// NextBadgerID mints a fresh badger handle (Badger_<seq>).
func (s *Scenario) NextBadgerID() int {
	id := s.nextBadgerID
	s.nextBadgerID++
	return id
}

// TotalInfectedCows returns the number of cows currently tracked as
// infected across every farm, used by the continue criterion (§4.1)
// against maxOutbreakSize.
func (s *Scenario) TotalInfectedCows() int {
	n := 0
	for _, farm := range s.Farms {
		n += farm.NumInfected()
	}
	return n
}

// SettsForFarm resolves a farm's connected Sett objects.
func (s *Scenario) SettsForFarm(farm *Farm) []*Sett {
	out := make([]*Sett, 0, len(farm.Setts))
	for _, id := range farm.Setts {
		if sett, ok := s.Setts[id]; ok {
			out = append(out, sett)
		}
	}
	return out
}
