package nibtb

// EventKind tags which case of the amount-manager dispatch (§4.3,
// §9's "polymorphic event source/final state") a KernelEvent belongs
// to. Kept as a sum type over a small closed set of shapes rather than
// an interface with one implementation per case, following the same
// tagged-variant idiom used for NodeRef: the amount manager's dispatch
// is then a single exhaustive switch instead of a type-switch over
// dynamic types.
type EventKind uint8

const (
	// CowSelfTransition advances a cow along EXPOSED -> TESTSENSITIVE
	// -> INFECTIOUS on the same cow.
	CowSelfTransition EventKind = iota
	// CowInfectsCow creates a new EXPOSED cow on the same farm.
	CowInfectsCow
	// CowInfectsBadger seeds a new badger in a connected sett.
	CowInfectsBadger
	// BadgerInfectsCow creates a new EXPOSED cow sourced from a badger.
	BadgerInfectsCow
	// BadgerDecay removes a badger from its sett.
	BadgerDecay
)

// KernelEvent is one candidate transition contributed by the kernel
// builder (§4.2), paired with its rate. Multiplicity (how many times
// it actually fires in the step) is resolved later via
// Poisson(rate*stepSize), so KernelEvent itself only names what would
// happen once.
type KernelEvent struct {
	Kind EventKind
	Rate float64

	FarmID int // farm the event is scoped to

	SourceCowID    int    // valid for CowSelfTransition, CowInfectsCow, CowInfectsBadger
	SourceBadgerID int    // valid for BadgerInfectsCow, BadgerDecay
	SettID         string // valid for CowInfectsBadger (destination sett), BadgerInfectsCow/BadgerDecay (containing sett)

	FinalStatus InfectionStatus // valid for CowSelfTransition
}
