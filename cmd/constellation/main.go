package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/san-kum/constellation/internal/config"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	seed       int64
	logFile    string
	logLevel   string
	// Viewport for headless commands
	width  float64
	height float64
	// Headless run length
	frames int
	runs   int
	// Renderer overrides
	theme         string
	reducedMotion bool
	// Snapshot output
	outPath string
	// Sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	// Stress
	trials    int
	clickRate float64
	showPlot  bool
	// Run archive
	saveRuns bool
	runsDir  string
)

// main registers the commands and runs the interactive terminal view when
// no subcommand is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "constellation",
		Short:         "ambient particle network animation",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	heroCmd := &cobra.Command{
		Use:   "hero",
		Short: "passive background animation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runHero,
	}
	heroCmd.Flags().BoolVar(&reducedMotion, "reduced-motion", false, "draw a single frame and stop")
	heroCmd.Flags().StringVar(&theme, "theme", "", "color theme")

	interactiveCmd := &cobra.Command{
		Use:   "interactive",
		Short: "interactive animation in the terminal (mouse and keys)",
		Args:  cobra.NoArgs,
		RunE:  runInteractive,
	}
	interactiveCmd.Flags().StringVar(&theme, "theme", "", "color theme")
	rootCmd.Flags().StringVar(&theme, "theme", "", "color theme")

	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "pick and tune a preset before running it",
		Args:  cobra.NoArgs,
		RunE:  runMenu,
	}

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run in a desktop window",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}
	windowCmd.Flags().BoolVar(&reducedMotion, "reduced-motion", false, "draw a single frame and stop")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run headless and report frame throughput and graph metrics",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	addViewportFlags(benchCmd)
	benchCmd.Flags().IntVar(&frames, "frames", 600, "frames per run")
	benchCmd.Flags().IntVar(&runs, "runs", 4, "parallel runs with consecutive seeds")
	benchCmd.Flags().BoolVar(&showPlot, "plot", false, "plot edge count of the first run")
	benchCmd.Flags().BoolVar(&saveRuns, "save", false, "archive each run with per-frame stats")
	benchCmd.Flags().StringVar(&runsDir, "runs-dir", "runs", "archive directory")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "run headless and write the last frame as SVG",
		Args:  cobra.NoArgs,
		RunE:  runSnapshot,
	}
	addViewportFlags(snapshotCmd)
	snapshotCmd.Flags().IntVar(&frames, "frames", 120, "frames to run before the snapshot")
	snapshotCmd.Flags().StringVarP(&outPath, "out", "o", "constellation.svg", "output path")

	scriptCmd := &cobra.Command{
		Use:   "script [scenario.yaml]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary one parameter and report graph metrics",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addViewportFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "connect_distance", "parameter to vary")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 60, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 220, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&frames, "frames", 300, "frames per run")
	sweepCmd.Flags().IntVar(&runs, "runs", 3, "runs per value")

	stressCmd := &cobra.Command{
		Use:   "stress",
		Short: "random clicking and dragging; checks the population settles",
		Args:  cobra.NoArgs,
		RunE:  runStress,
	}
	addViewportFlags(stressCmd)
	stressCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	stressCmd.Flags().IntVar(&frames, "frames", 600, "frames per trial")
	stressCmd.Flags().Float64Var(&clickRate, "click-rate", 0.05, "chance of a click per frame")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "inspect archived bench runs",
	}
	runsCmd.PersistentFlags().StringVar(&runsDir, "runs-dir", "runs", "archive directory")
	runsListCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}
	runsShowCmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "show one archived run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	runsCmd.AddCommand(runsListCmd, runsShowCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "show or write configuration",
	}
	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "print the resolved configuration as yaml",
		Args:  cobra.NoArgs,
		RunE:  showConfig,
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration to a file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configShowCmd, configInitCmd)

	rootCmd.AddCommand(heroCmd, interactiveCmd, menuCmd, windowCmd, benchCmd, snapshotCmd,
		scriptCmd, sweepCmd, stressCmd, runsCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addViewportFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&width, "width", 1920, "viewport width in pixels")
	cmd.Flags().Float64Var(&height, "height", 1080, "viewport height in pixels")
}

// resolveConfig loads --config if given, else --preset, else fallback. A
// non-zero --seed overrides the configured seed.
func resolveConfig(fallback string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case configFile != "":
		cfg, err = config.Load(configFile)
	case preset != "":
		cfg, err = config.GetPreset(preset)
	default:
		cfg, err = config.GetPreset(fallback)
	}
	if err != nil {
		return nil, err
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if theme != "" {
		cfg.Render.Theme = theme
	}
	if reducedMotion {
		cfg.Render.ReducedMotion = true
	}
	return cfg, nil
}

// seedFrom fills a zero seed from the clock and writes it back so it can be
// logged and replayed.
func seedFrom(cfg *config.Config) int64 {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg.Seed
}

func newRand(cfg *config.Config) *rand.Rand {
	return rand.New(rand.NewSource(seedFrom(cfg)))
}

// setupLogger installs the default slog logger. Full-screen commands must
// not write to the terminal, so without --log-file their logs are dropped.
func setupLogger(fullscreen bool) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", logLevel, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case fullscreen:
		w = io.Discard
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, closeFn, nil
}
