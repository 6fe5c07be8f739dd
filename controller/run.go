package controller

import (
	"bytes"
	"fmt"
	"math"

	"github.com/anthonyohare/nibtb"
	"github.com/anthonyohare/nibtb/internal/rng"
)

// RunIteration performs one full §4.7 controller iteration: read the
// ensemble this step produced, decide acceptance, update the running
// statistics, propose the next step, and persist everything. It
// returns the new state for the caller to log or inspect further.
func RunIteration(cfg *Config, state *State, isFirstStep bool) (*State, *AggregatedResults, error) {
	r := rng.New()
	r.Seed(state.RngSeed)

	agg, err := ReadEnsemble(cfg.ResultsDir, cfg.ResultsFile, cfg.NumScenarios)
	if err != nil {
		return nil, nil, err
	}

	logUniform := math.Log(r.Float64())
	resultsMean := agg.LogLikelihood.Mean()
	accepted := AcceptStep(isFirstStep, agg.LogLikelihood.Size(), resultsMean, state.LogLikelihood, logUniform, cfg.SmoothingRatio)

	next := *state
	next.LastStepAccepted = accepted
	if accepted {
		next.CurrentStep = state.ProposedStep
		if agg.LogLikelihood.Size() == 0 {
			next.LogLikelihood = NoLogLikelihood
		} else {
			next.LogLikelihood = resultsMean
		}
		next.NumAcceptedSteps++

		if err := writeScenarioSummaries(cfg, agg); err != nil {
			return nil, nil, err
		}
	}

	theta, err := parseParameterLine(next.CurrentStep, cfg.ParamNames())
	if err != nil {
		return nil, nil, err
	}
	evaluated, err := parseParameterLine(state.ProposedStep, cfg.ParamNames())
	if err != nil {
		return nil, nil, err
	}
	if err := appendOutputRow(cfg.OutputFile, cfg.ParamNames(), evaluated, accepted, agg); err != nil {
		return nil, nil, err
	}

	UpdateMeanCovariance(next.Means, next.Covariances, theta, next.NumSteps+1)

	lower := make([]float64, len(cfg.Ranges))
	upper := make([]float64, len(cfg.Ranges))
	for i, rg := range cfg.Ranges {
		lower[i] = rg.Lo
		upper[i] = rg.Hi
	}
	proposal := ProposeStep(r, next.Means, next.Covariances, lower, upper)
	next.ProposedStep = FormatParameterLine(cfg.ParamNames(), proposal)

	next.NumSteps++
	next.RngSeed = r.NextInt64Seed()

	if err := nibtb.AppendToFile(cfg.ParametersFile, []byte(next.ProposedStep)); err != nil {
		return nil, nil, err
	}
	if err := SaveState(cfg.StateFile, &next); err != nil {
		return nil, nil, err
	}

	return &next, agg, nil
}

// parseParameterLine inverts FormatParameterLine for the k=v body a
// parameters file holds, in the order names specifies.
func parseParameterLine(body string, names []string) ([]float64, error) {
	kv, err := nibtb.ParseKeyValueBody(body)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(names))
	for i, name := range names {
		raw, ok := kv[name]
		if !ok {
			return nil, fmt.Errorf("missing parameter %q", name)
		}
		v, err := parseFloatLiteral(raw)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseFloatLiteral(raw string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(raw, "%g", &v)
	return v, err
}

// appendOutputRow appends one CSV row to the controller's output file
// (§4.7 step 4): the parameters just evaluated, the accept flag, and
// per-metric mean/stddev pairs.
func appendOutputRow(path string, names []string, theta []float64, accepted bool, agg *AggregatedResults) error {
	var b bytes.Buffer
	for i, name := range names {
		fmt.Fprintf(&b, "%s=%g,", name, theta[i])
	}
	fmt.Fprintf(&b, "accepted=%d,", boolToInt(accepted))
	writeMeanStdDev(&b, "cowCowTransmissions", &agg.CowCowTransmissions)
	writeMeanStdDev(&b, "cowBadgerTransmissions", &agg.CowBadgerTransmissions)
	writeMeanStdDev(&b, "badgerCowTransmissions", &agg.BadgerCowTransmissions)
	writeMeanStdDev(&b, "reactors", &agg.Reactors)
	writeMeanStdDev(&b, "breakdowns", &agg.Breakdowns)
	writeMeanStdDev(&b, "detectedAtSlaughter", &agg.DetectedAtSlaughter)
	writeMeanStdDev(&b, "undetectedAtSlaughter", &agg.UndetectedAtSlaughter)
	writeMeanStdDev(&b, "infectedAnimalsMoved", &agg.InfectedAnimalsMoved)
	writeMeanStdDev(&b, "logLikelihood", &agg.LogLikelihood)
	b.WriteString("\n")
	return nibtb.AppendToFile(path, b.Bytes())
}

// meanStdDev is the subset of stats.Samples the output row needs.
type meanStdDev interface {
	Mean() float64
	StdDev() float64
}

func writeMeanStdDev(b *bytes.Buffer, name string, s meanStdDev) {
	fmt.Fprintf(b, "%sMean=%g,%sStdDev=%g,", name, s.Mean(), name, s.StdDev())
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// writeScenarioSummaries persists per-bin distribution summaries for
// an accepted step (§4.7 step 3 "write scenario summary files").
func writeScenarioSummaries(cfg *Config, agg *AggregatedResults) error {
	var reactorBuf, snpBuf bytes.Buffer
	for bin, s := range agg.ReactorsAtBreakdown {
		fmt.Fprintf(&reactorBuf, "%d:%g:%g\n", bin, s.Mean(), s.StdDev())
	}
	for bin, s := range agg.SNPPairwiseDistance {
		fmt.Fprintf(&snpBuf, "%d:%g:%g\n", bin, s.Mean(), s.StdDev())
	}
	if err := nibtb.AppendToFile(cfg.OutputFile+".reactors_at_breakdown.summary", reactorBuf.Bytes()); err != nil {
		return err
	}
	return nibtb.AppendToFile(cfg.OutputFile+".snp_distance.summary", snpBuf.Bytes())
}
