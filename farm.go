package nibtb

import "github.com/anthonyohare/nibtb/internal/stats"

// InfectionStatus enumerates the epidemiological compartments a cow
// can occupy, following the status-code convention the teacher uses
// for its own host compartments (SusceptibleStatusCode, ... in
// simulation.go) but scoped to the bTB progression named in §3.
type InfectionStatus int

const (
	// Susceptible cows are never tracked in a farm's infected set —
	// see the package invariant documented on Farm.InfectedCows.
	Susceptible InfectionStatus = iota
	Exposed
	TestSensitive
	Infectious
)

// String renders the status for logs and CSV output.
func (s InfectionStatus) String() string {
	switch s {
	case Susceptible:
		return "SUSCEPTIBLE"
	case Exposed:
		return "EXPOSED"
	case TestSensitive:
		return "TESTSENSITIVE"
	case Infectious:
		return "INFECTIOUS"
	default:
		return "UNKNOWN"
	}
}

// Farm is a cattle holding in the cluster. Fields mirror §3 exactly;
// setts/infected cows/badgers are referenced by stable integer handle
// rather than embedded pointers, so a Farm and a Sett can each point
// at the other without a reference cycle in the struct graph itself
// (the handles are resolved through the owning Scenario's arenas).
type Farm struct {
	ID       int
	HerdSize int

	HasLocation bool
	X, Y        float64

	Setts []string // sett IDs connected to this farm, in declaration order

	InfectedCows map[int]bool // cow IDs currently infected on this farm; never holds a Susceptible cow

	SlaughterDates []int // dates this farm dispatched animals to slaughter

	Restricted           bool
	LastClearTestDate    int
	LastPositiveTestDate int
	NumClearTests        int
	NextWHTDate          int

	OffMovementHistogram *stats.IntHistogram
}

// sentinelUndefined is the -1 marker spec §3 uses for unset dates.
const sentinelUndefined = -1

// NewFarm creates a farm with all date fields at their undefined
// sentinel and an empty infected set.
func NewFarm(id, herdSize int) *Farm {
	return &Farm{
		ID:                   id,
		HerdSize:             herdSize,
		InfectedCows:         make(map[int]bool),
		LastClearTestDate:    sentinelUndefined,
		LastPositiveTestDate: sentinelUndefined,
		NumClearTests:        sentinelUndefined,
		NextWHTDate:          sentinelUndefined,
		OffMovementHistogram: stats.NewIntHistogram(),
	}
}

// CheckRestrictionInvariant reports whether the farm currently
// satisfies the invariant named in §3 and §8:
// restricted ⇔ (lastPositiveTestDate ≥ 0 ∧ numClearTests < 2).
func (f *Farm) CheckRestrictionInvariant() bool {
	expected := f.LastPositiveTestDate >= 0 && f.NumClearTests < 2
	return f.Restricted == expected
}

// NumInfected returns the number of infected cows currently on the
// farm.
func (f *Farm) NumInfected() int {
	return len(f.InfectedCows)
}

// AddInfectedCow registers a cow as infected on this farm.
func (f *Farm) AddInfectedCow(cowID int) {
	f.InfectedCows[cowID] = true
}

// RemoveInfectedCow removes a cow from the farm's infected set (it may
// have been culled, sampled off a WHT, or moved away).
func (f *Farm) RemoveInfectedCow(cowID int) {
	delete(f.InfectedCows, cowID)
}
