// Command scenario runs one stochastic bTB outbreak simulation from
// start date to end date and writes a scenario result file (§4.1,
// §6). The controller (or its external orchestrator) launches one of
// these per ensemble member per fitting iteration.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/anthonyohare/nibtb"
)

func main() {
	var configPath, paramsPath string
	var id int
	var level string
	var seed int64
	var eventLogPath, eventLogFormat string

	root := &cobra.Command{
		Use:   "scenario",
		Short: "run one bTB outbreak scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(level)
			return runScenario(logger, configPath, paramsPath, id, seed, eventLogPath, eventLogFormat)
		},
	}
	root.Flags().StringVarP(&configPath, "config", "c", "", "scenario config file (required)")
	root.Flags().StringVarP(&paramsPath, "params", "p", "", "parameters file (required)")
	root.Flags().IntVarP(&id, "id", "i", 0, "scenario id, used to name the result file")
	root.Flags().StringVarP(&level, "level", "l", "info", "log level (debug|info|warn|error)")
	root.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "rng seed (defaults to a time-derived value)")
	root.Flags().StringVar(&eventLogPath, "event-log", "", "base path for a per-scenario transmission/reactor/movement trail (disabled if empty)")
	root.Flags().StringVar(&eventLogFormat, "event-log-format", "sqlite", "event log backend: sqlite|csv")
	root.MarkFlagRequired("config")
	root.MarkFlagRequired("params")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// attachEventLogger wires a DataLogger's drain goroutines into the
// scenario's event channels and returns a stop function that closes
// the channels and waits for the drains to finish; the logger has no
// close step of its own. The returned error is non-nil only if the logger itself
// could not be initialised.
func attachEventLogger(scenario *nibtb.Scenario, basepath, format string, id int) (func(), error) {
	var logger nibtb.DataLogger
	switch format {
	case "csv":
		logger = nibtb.NewCSVLogger(basepath, id)
	default:
		logger = nibtb.NewSQLiteLogger(basepath, id)
	}
	if err := logger.Init(); err != nil {
		return nil, err
	}

	transmissions := make(chan nibtb.TransmissionEvent, 64)
	reactors := make(chan nibtb.ReactorEvent, 64)
	movements := make(chan nibtb.MovementEvent, 64)
	scenario.Events = &nibtb.EventSink{Transmissions: transmissions, Reactors: reactors, Movements: movements}

	done := make(chan struct{}, 3)
	go func() { logger.WriteTransmission(transmissions); done <- struct{}{} }()
	go func() { logger.WriteReactor(reactors); done <- struct{}{} }()
	go func() { logger.WriteMovement(movements); done <- struct{}{} }()

	return func() {
		close(transmissions)
		close(reactors)
		close(movements)
		<-done
		<-done
		<-done
	}, nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).With().Timestamp().Logger()
}

func runScenario(logger zerolog.Logger, configPath, paramsPath string, id int, seed int64, eventLogPath, eventLogFormat string) error {
	cfg, err := nibtb.LoadScenarioConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading scenario config: %w", err)
	}
	if err := nibtb.LoadParameters(paramsPath, &cfg.Settings); err != nil {
		return fmt.Errorf("loading parameters: %w", err)
	}

	logger.Info().Int("id", id).Int("farms", len(cfg.FarmIDs)).Msg("starting scenario")

	scenario := nibtb.NewScenario(cfg, seed+int64(id))
	scenario.InstanceID = id
	nibtb.SeedScenario(scenario, cfg.InitialInfectionStates)
	nibtb.SeedInitialTestState(scenario, cfg.NumInitialRestrictedHerds)

	if eventLogPath != "" {
		stop, err := attachEventLogger(scenario, eventLogPath, eventLogFormat, id)
		if err != nil {
			return fmt.Errorf("attaching event logger: %w", err)
		}
		defer stop()
	}

	nibtb.Run(scenario)

	sampled := nibtb.SampleCows(scenario)
	simulated := nibtb.SNPDistanceHistogram(sampled)
	logLikelihood := nibtb.ScoreLogLikelihood(cfg.Settings.ObservedSNPDistribution, simulated)

	result := nibtb.BuildScenarioResult(scenario, logLikelihood, sampled)

	resultPath := filepath.Join(filepath.Dir(paramsPath), fmt.Sprintf("scenario_%d.results", id))
	if err := nibtb.WriteScenarioResult(resultPath, result); err != nil {
		return fmt.Errorf("writing scenario result: %w", err)
	}

	logger.Info().
		Str("runId", result.RunID).
		Float64("logLikelihood", logLikelihood).
		Int("reactors", result.NumReactors).
		Int("breakdowns", result.NumBreakdowns).
		Msg("scenario finished")
	return nil
}
