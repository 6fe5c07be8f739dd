// Command controller runs one adaptive-Metropolis fitting iteration
// (§4.7): it reads the scenario ensemble an external orchestrator
// produced from the previous iteration's parameters file, decides
// accept/reject, updates the running covariance, and writes the next
// proposed parameter vector plus the updated state file.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/anthonyohare/nibtb/controller"
	"github.com/anthonyohare/nibtb/internal/rng"
)

func main() {
	var configPath string
	var level string

	root := &cobra.Command{
		Use:   "controller",
		Short: "advance one adaptive Metropolis fitting step",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(level)
			return runController(logger, configPath)
		},
	}
	root.Flags().StringVarP(&configPath, "config", "c", "", "controller config file (required)")
	root.Flags().StringVarP(&level, "level", "l", "info", "log level (debug|info|warn|error)")
	root.MarkFlagRequired("config")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).With().Timestamp().Logger()
}

func runController(logger zerolog.Logger, configPath string) error {
	cfg, err := controller.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading controller config: %w", err)
	}

	state, existed, err := controller.LoadState(cfg.StateFile)
	if err != nil {
		return fmt.Errorf("loading controller state: %w", err)
	}

	isFirstStep := !existed || state.NumSteps == 0
	if isFirstStep {
		r := rng.New()
		r.Seed(time.Now().UnixNano())
		theta, means, covariances := controller.InitialState(r, cfg.Ranges, cfg.PercentageDeviation)
		state = &controller.State{
			ProposedStep: controller.FormatParameterLine(cfg.ParamNames(), theta),
			CurrentStep:  controller.FormatParameterLine(cfg.ParamNames(), theta),
			LogLikelihood: controller.NoLogLikelihood,
			Means:         means,
			Covariances:   covariances,
			RngSeed:       r.NextInt64Seed(),
		}
		logger.Info().Msg("initialised controller state for first invocation")
	}

	next, agg, err := controller.RunIteration(cfg, state, isFirstStep)
	if err != nil {
		return fmt.Errorf("running controller iteration: %w", err)
	}

	logger.Info().
		Bool("accepted", next.LastStepAccepted).
		Int("numSteps", next.NumSteps).
		Int("numAcceptedSteps", next.NumAcceptedSteps).
		Float64("logLikelihood", next.LogLikelihood).
		Int("scenariosSeen", agg.LogLikelihood.Size()).
		Msg("controller iteration complete")
	return nil
}
