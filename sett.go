package nibtb

import "fmt"

// reservoirIDPrefix names the synthetic one-per-farm setts synthesised
// for farms not attached to any sett read from input (§3 invariant:
// every farm has ≥ 1 connected sett).
const reservoirIDPrefix = "RESERVOIR_X"

// Sett is a badger social group — the wildlife reservoir attached to
// one or more farms.
type Sett struct {
	ID    string
	Farms []int // farm IDs connected to this sett, in declaration order

	InfectedBadgers map[int]bool // badger IDs currently resident in this sett
}

// NewSett creates an empty sett.
func NewSett(id string) *Sett {
	return &Sett{ID: id, InfectedBadgers: make(map[int]bool)}
}

// SynthesizeReservoirID builds the id for a one-per-farm synthetic
// sett, following the RESERVOIR_X<seq> naming in §3.
func SynthesizeReservoirID(seq int) string {
	return fmt.Sprintf("%s%d", reservoirIDPrefix, seq)
}

// AddInfectedBadger registers a badger as resident in this sett.
func (s *Sett) AddInfectedBadger(badgerID int) {
	s.InfectedBadgers[badgerID] = true
}

// RemoveInfectedBadger removes a badger from the sett (decay event).
func (s *Sett) RemoveInfectedBadger(badgerID int) {
	delete(s.InfectedBadgers, badgerID)
}

// NumInfected returns the number of infected badgers currently
// resident in the sett.
func (s *Sett) NumInfected() int {
	return len(s.InfectedBadgers)
}
