package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/san-kum/constellation/internal/config"
	"github.com/san-kum/constellation/internal/constellation"
	"github.com/san-kum/constellation/internal/export"
	"github.com/san-kum/constellation/internal/geom"
	"github.com/san-kum/constellation/internal/metrics"
	"github.com/san-kum/constellation/internal/palette"
	"github.com/san-kum/constellation/internal/sim"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidScenario = errors.New("automation: invalid scenario")
	ErrUnknownParam    = errors.New("automation: unknown parameter")
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Preset      string             `yaml:"preset"`
	Seed        int64              `yaml:"seed"`
	Width       float64            `yaml:"width"`
	Height      float64            `yaml:"height"`
	Params      map[string]float64 `yaml:"params"`
	Steps       []ScenarioStep     `yaml:"steps"`
}

// ScenarioStep is a single step in a scenario. Events apply in field order
// before the step's frames run; the snapshot is taken after them.
type ScenarioStep struct {
	Resize   *Size    `yaml:"resize"`
	Reset    bool     `yaml:"reset"`
	Burst    *Burst   `yaml:"burst"`
	Pointer  *Pointer `yaml:"pointer"`
	Frames   int      `yaml:"frames"`
	Snapshot string   `yaml:"snapshot"`
}

type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Burst spawns Count particles at (X, Y). A zero Count uses the configured
// click size.
type Burst struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Count int     `yaml:"count"`
}

// Pointer holds the pointer for every frame of its step.
type Pointer struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Engaged bool    `yaml:"engaged"`
}

// StepResult is the outcome of one scenario step.
type StepResult struct {
	Step       int
	BurstShown bool
	Snapshot   string
	Result     *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: viewport %gx%g", ErrInvalidScenario, s.Width, s.Height)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidScenario)
	}
	for i, step := range s.Steps {
		if step.Frames < 0 {
			return fmt.Errorf("%w: step %d has %d frames", ErrInvalidScenario, i+1, step.Frames)
		}
		if step.Resize != nil && (step.Resize.Width < 0 || step.Resize.Height < 0) {
			return fmt.Errorf("%w: step %d resize is negative", ErrInvalidScenario, i+1)
		}
	}
	return nil
}

// Config resolves the scenario's preset and parameter overrides.
func (s *Scenario) Config() (*config.Config, error) {
	name := s.Preset
	if name == "" {
		name = config.VariantInteractive
	}
	cfg, err := config.GetPreset(name)
	if err != nil {
		return nil, err
	}
	for k, v := range s.Params {
		if err := cfg.SetParam(k, v); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownParam, k)
		}
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario executes all steps in a scenario against one engine.
func RunScenario(ctx context.Context, scenario *Scenario, log *slog.Logger) ([]StepResult, error) {
	cfg, err := scenario.Config()
	if err != nil {
		return nil, err
	}

	engine := constellation.NewEngine(cfg.Params(), newRand(cfg.Seed),
		constellation.Bounds{W: scenario.Width, H: scenario.Height})
	runner := sim.New(engine)
	for _, m := range metrics.Standard() {
		runner.AddMetric(m)
	}
	pal := palette.For(cfg.Variant)

	results := make([]StepResult, 0, len(scenario.Steps))
	for i, step := range scenario.Steps {
		log.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "frames", step.Frames)
		out := StepResult{Step: i + 1}

		if step.Resize != nil {
			engine.OnResize(constellation.Bounds{W: step.Resize.Width, H: step.Resize.Height})
		}
		if step.Reset {
			engine.Reset()
		}
		if step.Burst != nil {
			count := step.Burst.Count
			if count == 0 {
				count = cfg.Interaction.ClickSpawnCount
			}
			out.BurstShown = engine.SpawnBurst(geom.V(step.Burst.X, step.Burst.Y), count)
		}

		if step.Frames > 0 {
			input := sim.Idle
			if p := step.Pointer; p != nil {
				in := constellation.Input{Pointer: geom.V(p.X, p.Y), Engaged: p.Engaged}
				input = func(uint64) constellation.Input { return in }
			}
			res, err := runner.Run(ctx, sim.Config{Frames: step.Frames}, input)
			out.Result = res
			if err != nil {
				results = append(results, out)
				return results, fmt.Errorf("step %d run: %w", i+1, err)
			}
		}

		if step.Snapshot != "" {
			if err := export.WriteFrameSVG(step.Snapshot, engine.Snapshot(), engine.Bounds(), pal); err != nil {
				return results, fmt.Errorf("step %d snapshot: %w", i+1, err)
			}
			out.Snapshot = step.Snapshot
		}

		results = append(results, out)
	}

	return results, nil
}

// ParameterSweep runs simulations across a range of parameter values
type ParameterSweep struct {
	Preset    string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Frames    int
	Runs      int
	Width     float64
	Height    float64
	Seed      int64
}

// SweepResult holds results from a parameter sweep, averaged over runs.
type SweepResult struct {
	ParamValue      float64
	MeanEdges       float64
	MeanDegree      float64
	Saturation      float64
	PopulationError float64
}

// SweepParams are the parameters a sweep may vary.
var SweepParams = []string{"base_speed", "connect_distance", "density", "max_connections"}

func sweepable(name string) bool {
	for _, p := range SweepParams {
		if p == name {
			return true
		}
	}
	return false
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, log *slog.Logger) ([]SweepResult, error) {
	if !sweepable(sweep.ParamName) {
		return nil, fmt.Errorf("%w: %q (sweepable: %v)", ErrUnknownParam, sweep.ParamName, SweepParams)
	}
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	runs := sweep.Runs
	if runs < 1 {
		runs = 1
	}

	base, err := config.GetPreset(sweep.Preset)
	if err != nil {
		return nil, err
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}
	bounds := constellation.Bounds{W: sweep.Width, H: sweep.Height}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := base.Clone()
		if err := cfg.SetParam(sweep.ParamName, paramVal); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		ens := sim.NewEnsemble(cfg.Params(), bounds, runs, sweep.Seed).WithMetrics(metrics.Standard)
		runResults, err := ens.Run(ctx, sim.Config{Frames: sweep.Frames}, sim.Idle)
		if err != nil {
			return nil, err
		}

		r := SweepResult{ParamValue: paramVal}
		for _, rr := range runResults {
			r.MeanEdges += rr.Metrics["mean_edges"] / float64(runs)
			r.MeanDegree += rr.Metrics["mean_degree"] / float64(runs)
			r.Saturation += rr.Metrics["saturation"] / float64(runs)
			r.PopulationError += rr.Metrics["population_error"] / float64(runs)
		}
		results = append(results, r)

		log.Info("sweep", "step", i+1, "of", sweep.NumSteps, sweep.ParamName, paramVal, "mean_edges", r.MeanEdges)
	}

	return results, nil
}

// MonteCarloConfig drives random clicking and dragging against one preset to
// check the population always settles back on its target.
type MonteCarloConfig struct {
	Preset    string
	NumTrials int
	Frames    int
	Settle    int
	ClickRate float64
	Width     float64
	Height    float64
	Seed      int64
}

// MonteCarloResult holds statistics from Monte Carlo runs
type MonteCarloResult struct {
	TrialID         int
	Clicks          int
	PeakPopulation  int
	FinalPopulation int
	Target          int
	MaxDegree       int
	PeakSpeed       float64
	Stable          bool // population back on target with the degree cap held
}

type degreeWatch struct {
	max, peakPop int
	peakSpeed    float64
}

func (d *degreeWatch) OnFrame(f constellation.Frame, s sim.FrameStats) {
	for _, p := range f.Particles {
		if p.Connections > d.max {
			d.max = p.Connections
		}
	}
	if s.Population > d.peakPop {
		d.peakPop = s.Population
	}
	if s.MaxSpeed > d.peakSpeed {
		d.peakSpeed = s.MaxSpeed
	}
}

// RunMonteCarlo executes multiple trials with random pointer activity
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, log *slog.Logger) ([]MonteCarloResult, error) {
	base, err := config.GetPreset(cfg.Preset)
	if err != nil {
		return nil, err
	}
	if cfg.Frames <= 0 {
		return nil, fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	bounds := constellation.Bounds{W: cfg.Width, H: cfg.Height}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	for trial := 0; trial < cfg.NumTrials; trial++ {
		rng := rand.New(rand.NewSource(seed + int64(trial)))
		engine := constellation.NewEngine(base.Params(), rng, bounds)
		runner := sim.New(engine)
		watch := &degreeWatch{}
		runner.AddObserver(watch)

		// pointer activity uses its own stream so the engine's draws are
		// unaffected by the click pattern
		input := rand.New(rand.NewSource(^(seed + int64(trial))))
		clicks := 0
		var held constellation.Input
		activity := func(uint64) constellation.Input {
			if input.Float64() < cfg.ClickRate {
				p := geom.V(input.Float64()*bounds.W, input.Float64()*bounds.H)
				if engine.Click(p) {
					clicks++
				}
				held = constellation.Input{Pointer: p, Engaged: true}
			} else if input.Float64() < 0.05 {
				held.Engaged = false
			}
			return held
		}

		if _, err := runner.Run(ctx, sim.Config{Frames: cfg.Frames}, activity); err != nil {
			return nil, err
		}
		settle := cfg.Settle
		if settle < 1 {
			settle = 1
		}
		res, err := runner.Run(ctx, sim.Config{Frames: settle}, sim.Idle)
		if err != nil {
			return nil, err
		}

		target := engine.Target()
		results = append(results, MonteCarloResult{
			TrialID:         trial,
			Clicks:          clicks,
			PeakPopulation:  watch.peakPop,
			FinalPopulation: res.Last.Population,
			Target:          target,
			MaxDegree:       watch.max,
			PeakSpeed:       watch.peakSpeed,
			Stable:          res.Last.Population == target && watch.max <= base.MaxConnections,
		})

		if (trial+1)%10 == 0 {
			log.Info("monte carlo", "done", trial+1, "of", cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
