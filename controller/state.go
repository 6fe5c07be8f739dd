package controller

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/anthonyohare/nibtb"
)

// State is the controller's persisted state (§3 "ControllerState",
// §6 "State file"). ProposedStep and CurrentStep are parameter file
// contents as FormatParameterLine renders them (§6 "Parameters file"); Means and
// Covariances are kept as plain vectors/matrices in memory and
// serialised to comma-separated strings only at the JSON boundary
// (§9: "keep means and Sigma as plain vectors/matrices").
type State struct {
	ProposedStep     string  `json:"proposedStep"`
	CurrentStep      string  `json:"currentStep"`
	LogLikelihood    float64 `json:"logLikelihood"`
	NumSteps         int     `json:"numSteps"`
	NumAcceptedSteps int     `json:"numAcceptedSteps"`
	LastStepAccepted bool    `json:"lastStepAccepted"`
	RngSeed          int64   `json:"rngSeed"`
	Means            []float64
	Covariances      [][]float64
}

// wireState is State's on-disk JSON shape: means/covariances flattened
// to comma-separated decimal strings (§6).
type wireState struct {
	ProposedStep     string  `json:"proposedStep"`
	CurrentStep      string  `json:"currentStep"`
	LogLikelihood    float64 `json:"logLikelihood"`
	NumSteps         int     `json:"numSteps"`
	NumAcceptedSteps int     `json:"numAcceptedSteps"`
	LastStepAccepted bool    `json:"lastStepAccepted"`
	RngSeed          int64   `json:"rngSeed"`
	Means            string  `json:"means"`
	Covariances      string  `json:"covariances"`
}

// MarshalJSON flattens Means/Covariances to the wire representation.
func (s *State) MarshalJSON() ([]byte, error) {
	w := wireState{
		ProposedStep:     s.ProposedStep,
		CurrentStep:      s.CurrentStep,
		LogLikelihood:    s.LogLikelihood,
		NumSteps:         s.NumSteps,
		NumAcceptedSteps: s.NumAcceptedSteps,
		LastStepAccepted: s.LastStepAccepted,
		RngSeed:          s.RngSeed,
		Means:            joinFloats(s.Means),
		Covariances:      joinMatrix(s.Covariances),
	}
	return json.Marshal(w)
}

// UnmarshalJSON expands the wire representation back into plain
// vectors/matrices.
func (s *State) UnmarshalJSON(b []byte) error {
	var w wireState
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	means, err := splitFloats(w.Means)
	if err != nil {
		return errors.Wrap(err, "parsing state means")
	}
	covariances, err := splitMatrix(w.Covariances, len(means))
	if err != nil {
		return errors.Wrap(err, "parsing state covariances")
	}
	s.ProposedStep = w.ProposedStep
	s.CurrentStep = w.CurrentStep
	s.LogLikelihood = w.LogLikelihood
	s.NumSteps = w.NumSteps
	s.NumAcceptedSteps = w.NumAcceptedSteps
	s.LastStepAccepted = w.LastStepAccepted
	s.RngSeed = w.RngSeed
	s.Means = means
	s.Covariances = covariances
	return nil
}

func joinFloats(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func splitFloats(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// joinMatrix flattens a square matrix row-major into the same
// comma-separated format as joinFloats (§6: "matrix stored
// row-major").
func joinMatrix(m [][]float64) string {
	var flat []float64
	for _, row := range m {
		flat = append(flat, row...)
	}
	return joinFloats(flat)
}

func splitMatrix(s string, n int) ([][]float64, error) {
	flat, err := splitFloats(s)
	if err != nil {
		return nil, err
	}
	if n == 0 || len(flat) == 0 {
		return nil, nil
	}
	if len(flat) != n*n {
		return nil, fmt.Errorf("expected %d*%d=%d covariance entries, got %d", n, n, n*n, len(flat))
	}
	m := make([][]float64, n)
	for i := range m {
		m[i] = flat[i*n : (i+1)*n]
	}
	return m, nil
}

// LoadState reads a controller state file. A missing file is not an
// error: it signals the very first invocation (§4.7 "On the very
// first invocation").
func LoadState(path string) (*State, bool, error) {
	exists, err := nibtb.Exists(path)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, nil
	}
	b, err := readFile(path)
	if err != nil {
		return nil, false, errors.Wrapf(err, "reading %s", path)
	}
	var s State
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, false, errors.Wrapf(err, "parsing %s", path)
	}
	return &s, true, nil
}

// SaveState overwrites the controller state file with s.
func SaveState(path string, s *State) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshalling state")
	}
	return writeFileTruncate(path, b)
}

// NoLogLikelihood is the sentinel "no accepted likelihood yet" value
// used throughout §4.7 (state.logLikelihood == -Inf).
var NoLogLikelihood = math.Inf(-1)
