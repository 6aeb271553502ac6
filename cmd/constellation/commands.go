package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/constellation/internal/automation"
	"github.com/san-kum/constellation/internal/config"
	"github.com/san-kum/constellation/internal/constellation"
	"github.com/san-kum/constellation/internal/export"
	"github.com/san-kum/constellation/internal/gui"
	"github.com/san-kum/constellation/internal/metrics"
	"github.com/san-kum/constellation/internal/palette"
	"github.com/san-kum/constellation/internal/sim"
	"github.com/san-kum/constellation/internal/storage"
	"github.com/san-kum/constellation/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func runTerminal(fallback string) error {
	cfg, err := resolveConfig(fallback)
	if err != nil {
		return err
	}
	log, closeLog, err := setupLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	rng := newRand(cfg)
	log.Info("starting", "variant", cfg.Variant, "seed", cfg.Seed, "theme", cfg.Render.Theme)
	return viz.Run(cfg, rng, log)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	return runTerminal(config.VariantInteractive)
}

func runHero(cmd *cobra.Command, args []string) error {
	return runTerminal(config.VariantHero)
}

func runMenu(cmd *cobra.Command, args []string) error {
	_, closeLog, err := setupLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()
	return viz.RunLauncher(seed)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.VariantInteractive)
	if err != nil {
		return err
	}
	log, closeLog, err := setupLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()
	return gui.Run(cfg, newRand(cfg), log)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func viewport() constellation.Bounds {
	return constellation.Bounds{W: width, H: height}
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.VariantInteractive)
	if err != nil {
		return err
	}
	log, closeLog, err := setupLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()
	if runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", runs)
	}

	ctx, cancel := signalContext()
	defer cancel()

	seedFrom(cfg)
	log.Info("bench", "runs", runs, "frames", frames, "width", width, "height", height, "seed", cfg.Seed)

	start := time.Now()
	ens := sim.NewEnsemble(cfg.Params(), viewport(), runs, cfg.Seed).WithMetrics(metrics.Standard)
	results, err := ens.Run(ctx, sim.Config{Frames: frames, KeepStats: showPlot || saveRuns}, sim.Idle)
	if err != nil {
		return err
	}
	wall := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tENGINE\tFRAMES\tFRAMES/S\tPOP\tEDGES\tMEAN DEG\tSATURATED\tPEAK SPEED")
	total := 0
	for i, r := range results {
		fps := 0.0
		if r.Elapsed > 0 {
			fps = float64(r.FramesRun) / r.Elapsed.Seconds()
		}
		total += r.FramesRun
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d/%d\t%.1f\t%.2f\t%.1f%%\t%.2f\n",
			i, r.EngineID[:8], humanize.Comma(int64(r.FramesRun)), humanize.Comma(int64(fps)),
			r.Last.Population, r.Last.Target, r.Metrics["mean_edges"], r.Metrics["mean_degree"],
			100*r.Metrics["saturation"], r.Metrics["peak_speed"])
	}
	w.Flush()
	fmt.Printf("\n%s frames in %s\n", humanize.Comma(int64(total)), wall.Round(time.Millisecond))

	if showPlot && len(results) > 0 && len(results[0].Stats) > 1 {
		series := make([]float64, len(results[0].Stats))
		for i, s := range results[0].Stats {
			series[i] = float64(s.Edges)
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(series, asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption("edges per frame (run 0)")))
	}

	if saveRuns {
		name := preset
		if name == "" {
			name = cfg.Variant
		}
		st := storage.New(runsDir)
		if err := st.Init(); err != nil {
			return err
		}
		for i, r := range results {
			id, err := st.Save(name, cfg.Seed+int64(i), width, height, r)
			if err != nil {
				return err
			}
			log.Info("run archived", "id", id, "dir", runsDir)
			fmt.Println("saved", id)
		}
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(runsDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Printf("no runs in %s\n", runsDir)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tSEED\tVIEWPORT\tFRAMES\tMEAN EDGES\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.0fx%.0f\t%s\t%.1f\t%s\n", r.ID, r.Preset, r.Seed, r.Width, r.Height,
			humanize.Comma(int64(r.Frames)), r.Metrics["mean_edges"], humanize.Time(r.Timestamp))
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(runsDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s\n  engine   %s\n  preset   %s\n  seed     %d\n  viewport %.0fx%.0f\n  frames   %s in %s\n\n",
		meta.ID, meta.Engine, meta.Preset, meta.Seed, meta.Width, meta.Height,
		humanize.Comma(int64(meta.Frames)), meta.Elapsed.Round(time.Microsecond))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	names := make([]string, 0, len(meta.Metrics))
	for name := range meta.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", name, meta.Metrics[name])
	}
	w.Flush()

	stats, err := st.LoadStats(args[0])
	if errors.Is(err, storage.ErrNoStats) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(stats) > 1 {
		series := make([]float64, len(stats))
		for i, s := range stats {
			series[i] = float64(s.Edges)
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(series, asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption("edges per frame")))
	}
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.VariantHero)
	if err != nil {
		return err
	}
	log, closeLog, err := setupLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signalContext()
	defer cancel()

	engine := constellation.NewEngine(cfg.Params(), newRand(cfg), viewport())
	res, err := sim.New(engine).Run(ctx, sim.Config{Frames: frames}, sim.Idle)
	if err != nil {
		return err
	}
	if err := export.WriteFrameSVG(outPath, engine.Snapshot(), engine.Bounds(), palette.For(cfg.Variant)); err != nil {
		return err
	}

	log.Info("snapshot written", "path", outPath, "frame", res.Last.Index, "seed", cfg.Seed)
	fmt.Printf("wrote %s: %d particles, %d edges after %s frames\n",
		outPath, res.Last.Population, res.Last.Edges, humanize.Comma(int64(res.FramesRun)))
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	log, closeLog, err := setupLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if seed != 0 {
		sc.Seed = seed
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunScenario(ctx, sc, log)
	if err != nil {
		return err
	}

	fmt.Printf("scenario %s\n\n", sc.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tFRAMES\tPOP\tTARGET\tEDGES\tBURST\tSNAPSHOT")
	for _, r := range results {
		ran, pop, target, edges := 0, 0, 0, 0
		if r.Result != nil {
			ran = r.Result.FramesRun
			pop, target, edges = r.Result.Last.Population, r.Result.Last.Target, r.Result.Last.Edges
		}
		burst := "-"
		if r.BurstShown {
			burst = "shown"
		}
		snap := r.Snapshot
		if snap == "" {
			snap = "-"
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%s\t%s\n", r.Step, ran, pop, target, edges, burst, snap)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	log, closeLog, err := setupLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	name := preset
	if name == "" {
		name = config.VariantInteractive
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Preset:    name,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Frames:    frames,
		Runs:      runs,
		Width:     width,
		Height:    height,
		Seed:      seed,
	}, log)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMEAN EDGES\tMEAN DEG\tSATURATED\tPOP ERROR\n", sweepParam)
	edges := make([]float64, len(results))
	for i, r := range results {
		edges[i] = r.MeanEdges
		fmt.Fprintf(w, "%.4g\t%.1f\t%.2f\t%.1f%%\t%.2f\n",
			r.ParamValue, r.MeanEdges, r.MeanDegree, 100*r.Saturation, r.PopulationError)
	}
	w.Flush()

	if len(edges) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(edges, asciigraph.Height(8), asciigraph.Caption("mean edges vs "+sweepParam)))
	}
	return nil
}

func runStress(cmd *cobra.Command, args []string) error {
	log, closeLog, err := setupLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	name := preset
	if name == "" {
		name = config.VariantInteractive
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Preset:    name,
		NumTrials: trials,
		Frames:    frames,
		Settle:    frames / 4,
		ClickRate: clickRate,
		Width:     width,
		Height:    height,
		Seed:      seed,
	}, log)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tCLICKS\tPEAK POP\tFINAL\tTARGET\tMAX DEG\tPEAK SPEED\tSTABLE")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\t%.2f\t%t\n",
			r.TrialID, r.Clicks, r.PeakPopulation, r.FinalPopulation, r.Target, r.MaxDegree, r.PeakSpeed, r.Stable)
	}
	w.Flush()

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("\n%d stable, %d unstable\n", stable, unstable)
	if unstable > 0 {
		return fmt.Errorf("%d of %d trials did not settle", unstable, len(results))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVARIANT\tCOUNT\tLINK DIST\tMAX LINKS\tTHEME\tMOTION")
	for _, name := range config.ListPresets() {
		cfg, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		motion := "animated"
		if cfg.Render.ReducedMotion {
			motion = "still"
		}
		fmt.Fprintf(w, "%s\t%s\t%d-%d\t%.0f\t%d\t%s\t%s\n", name, cfg.Variant,
			cfg.MinCount, cfg.MaxCount, cfg.ConnectDistance, cfg.MaxConnections, cfg.Render.Theme, motion)
	}
	return w.Flush()
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.VariantInteractive)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.VariantInteractive)
	if err != nil {
		return err
	}
	if _, err := os.Stat(args[0]); err == nil {
		return fmt.Errorf("%s already exists", args[0])
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s)\n", args[0], humanize.Bytes(fileSize(args[0])))
	return nil
}

func fileSize(path string) uint64 {
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return uint64(fi.Size())
}
