package nibtb

import "github.com/pkg/errors"

// ErrNoScenarioResult marks a scenario result file that does not
// exist yet. The controller treats this as "no contribution" rather
// than a fatal error (§7): an ensemble missing one scenario can still
// progress.
var ErrNoScenarioResult = errors.New("scenario result file does not exist")

// Sentinel format strings for the error kinds named in the design:
// configuration, data, invariant, io, and domain errors. Callers wrap
// these with github.com/pkg/errors so the originating operation stays
// attached to the message.
const (
	// IntKeyNotFoundError reports a missing farm, sett, cow, or badger handle.
	IntKeyNotFoundError = "key %d not found"

	// IntKeyExistsError reports a handle collision.
	IntKeyExistsError = "key %d already exists"

	// UnrecognizedKeywordError reports an enum-like config value
	// (e.g. diversityModel) that does not match any known variant.
	UnrecognizedKeywordError = "%s is not a recognized value for %s"

	// MissingConfigKeyError reports a required key=value entry absent
	// from a configuration file.
	MissingConfigKeyError = "missing required config key %q"

	// UnknownConfigKeyError reports a key=value entry the parser does
	// not recognize.
	UnknownConfigKeyError = "unknown config key %q"

	// InvalidFloatParameterError reports an out-of-range or malformed
	// floating point parameter.
	InvalidFloatParameterError = "invalid %s %f, %s"
	// InvalidIntParameterError reports an out-of-range or malformed
	// integer parameter.
	InvalidIntParameterError = "invalid %s %d, %s"
	// InvalidStringParameterError reports an invalid string parameter.
	InvalidStringParameterError = "invalid %s %s, %s"

	// DanglingReferenceError reports a movement or sett record that
	// names a farm ID never declared in the farm list.
	DanglingReferenceError = "%s %d referenced by %s does not exist"

	// BinSumMismatchError is raised when a multinomial bin count does
	// not sum to the expected total N (the "Sum_x != N" invariant
	// error named in the design notes).
	BinSumMismatchError = "Sum_x != N: bins summed to %d, expected %d"
)
