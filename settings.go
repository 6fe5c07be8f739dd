package nibtb

import (
	"fmt"

	"github.com/anthonyohare/nibtb/internal/stats"
)

// DiversityModel selects how a newly infected cow's SNP set is
// derived from the badger(s) that infected it (§4.3, §6).
type DiversityModel int

const (
	// MaximumDiversity unions the SNP sets of every badger in every
	// sett connected to the farm.
	MaximumDiversity DiversityModel = iota
	// MinimumDiversity uses the source badger's SNPs verbatim, with
	// no regeneration.
	MinimumDiversity
	// IntermediateDiversity regenerates only the source badger's SNPs
	// to the current date and uses those.
	IntermediateDiversity
)

// ParseDiversityModel maps the scenario config string onto a
// DiversityModel, rejecting anything not in the closed set named in
// §6.
func ParseDiversityModel(s string) (DiversityModel, error) {
	switch s {
	case "MAXIMUM":
		return MaximumDiversity, nil
	case "MINIMUM":
		return MinimumDiversity, nil
	case "INTERMEDIATE":
		return IntermediateDiversity, nil
	default:
		return 0, &unrecognizedKeywordErr{value: s, field: "diversityModel"}
	}
}

func (d DiversityModel) String() string {
	switch d {
	case MaximumDiversity:
		return "MAXIMUM"
	case MinimumDiversity:
		return "MINIMUM"
	case IntermediateDiversity:
		return "INTERMEDIATE"
	default:
		return "UNKNOWN"
	}
}

type unrecognizedKeywordErr struct {
	value string
	field string
}

func (e *unrecognizedKeywordErr) Error() string {
	return fmt.Sprintf(UnrecognizedKeywordError, e.value, e.field)
}

// ProjectSettings holds the immutable parameters a scenario process
// reads once at start (§3).
type ProjectSettings struct {
	Beta             float64
	Sigma            float64
	Gamma            float64
	Alpha            float64
	AlphaPrime       float64
	TestSensitivity  float64
	MutationRate     float64
	BadgerLifetime   float64
	ReservoirsIncluded bool

	StartDate int
	EndDate   int
	StepSize  int

	NumMovements              int
	NumSlaughters             int
	NumInitialRestrictedHerds int
	TestIntervalInYears       int
	MaxOutbreakSize           int

	DiversityModel DiversityModel

	ObservedSNPDistribution *stats.IntHistogram
	SamplingRatesPerYear    map[int]float64
	MovementFrequencies     []MovementFrequency

	DateFormat string
}

// MovementFrequency is one (departure, destination) pair eligible for
// the movement phase, weighted by its configured frequency counts
// (§4.4, §6 "movement frequencies").
type MovementFrequency struct {
	Departure   int
	Destination int
	Counts      []int
}

// TestIntervalDays converts the configured yearly test interval into
// days, as used by the unrestricted-farm seeding rule in §4.5.
func (p *ProjectSettings) TestIntervalDays() int {
	return p.TestIntervalInYears * 365
}

// IncludesBadgers reports whether the badger reservoir module is
// active for this scenario.
func (p *ProjectSettings) IncludesBadgers() bool {
	return p.ReservoirsIncluded
}
