// Command ensure-sched builds a fault-tolerant, energy-aware primary/backup
// schedule for a task set and replays it against randomly injected faults,
// Usage:
//
//	ensure-sched run <k> <frame_ms> <file> [flags]
package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/khryptorgraphics/ensure-sched/internal/config"
	"github.com/khryptorgraphics/ensure-sched/internal/report"
	"github.com/khryptorgraphics/ensure-sched/internal/taskset"
	"github.com/khryptorgraphics/ensure-sched/pkg/sched"
	"github.com/khryptorgraphics/ensure-sched/pkg/sched/metrics"
)

var (
	cfgFile string
	version = "dev"
	rootCmd *cobra.Command
)

func main() {
	rootCmd = &cobra.Command{
		Use:     "ensure-sched",
		Short:   "Fault-tolerant, energy-aware scheduling engine for heterogeneous embedded systems",
		Long:    "ensure-sched builds an offline primary/backup schedule across LP cores plus a reserved HP backup core, then simulates it against injected faults to report per-core energy consumption.",
		Version: version,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml or $HOME/.ensure-sched)")
	rootCmd.AddCommand(runCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <k> <frame_ms> <file>",
		Short: "Build and simulate a schedule for the given task set",
		Args:  cobra.ExactArgs(3),
		RunE:  runSchedule,
	}

	cmd.Flags().Float64("time-step", 0, "time-step fidelity Δ, ms (default: from config)")
	cmd.Flags().Int("m-pri", 0, "number of LP cores (default: from config)")
	cmd.Flags().Float64("lp-hp-ratio", 0, "LP:HP speed ratio r (default: from config)")
	cmd.Flags().Bool("log-debug", false, "enable debug logging")
	cmd.Flags().Int64("seed", time.Now().UnixNano(), "random seed for fault injection")
	cmd.Flags().Bool("print-schedule", false, "print the built schedule before simulating")
	cmd.Flags().String("metrics-listen", "", "if set, serve Prometheus metrics for this run on this address (e.g. :9090) until Ctrl-C")

	return cmd
}

func runSchedule(cmd *cobra.Command, args []string) error {
	k, frame, file, err := parsePositional(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.K = k
	cfg.Frame = frame

	if cmd.Flags().Changed("time-step") {
		cfg.TimeStep, _ = cmd.Flags().GetFloat64("time-step")
	}
	if cmd.Flags().Changed("m-pri") {
		cfg.MPri, _ = cmd.Flags().GetInt("m-pri")
	}
	if cmd.Flags().Changed("lp-hp-ratio") {
		cfg.LPHPRatio, _ = cmd.Flags().GetFloat64("lp-hp-ratio")
	}
	if cmd.Flags().Changed("log-debug") {
		cfg.LogDebug, _ = cmd.Flags().GetBool("log-debug")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level := zerolog.InfoLevel
	if cfg.LogDebug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)

	tasks, err := taskset.Load(file)
	if err != nil {
		return fmt.Errorf("failed to load task set: %w", err)
	}

	seed, _ := cmd.Flags().GetInt64("seed")
	rng := rand.New(rand.NewSource(seed))

	system := sched.NewSystem(sched.Params{
		K:         cfg.K,
		Frame:     cfg.Frame,
		TimeStep:  cfg.TimeStep,
		MPri:      cfg.MPri,
		LPHPRatio: cfg.LPHPRatio,
	}, logger)

	schedule, result, err := system.Run(tasks, rng)
	if err != nil {
		return err
	}

	printSchedule, _ := cmd.Flags().GetBool("print-schedule")
	if printSchedule {
		report.PrintSchedule(os.Stdout, schedule)
	}

	for _, w := range result.InconsistentWindows {
		logger.Warn().Int("window", w).Msg("window ended with a non-empty backup list")
	}

	report.Print(os.Stdout, system.LPCores(), system.HPCore())

	listen, _ := cmd.Flags().GetString("metrics-listen")
	if listen != "" {
		rec := metrics.NewRecorder()
		rec.Record(system.LPCores(), system.HPCore())

		mux := http.NewServeMux()
		mux.Handle("/metrics", rec.Handler())
		logger.Info().Str("addr", listen).Msg("serving metrics, press Ctrl-C to exit")
		if err := http.ListenAndServe(listen, mux); err != nil {
			return fmt.Errorf("metrics server: %w", err)
		}
	}

	return nil
}

func parsePositional(args []string) (k int, frame float64, file string, err error) {
	if _, err = fmt.Sscanf(args[0], "%d", &k); err != nil {
		return 0, 0, "", fmt.Errorf("invalid k %q: %w", args[0], err)
	}
	if _, err = fmt.Sscanf(args[1], "%f", &frame); err != nil {
		return 0, 0, "", fmt.Errorf("invalid frame %q: %w", args[1], err)
	}
	return k, frame, args[2], nil
}
