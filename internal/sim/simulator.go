package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/constellation/internal/constellation"
)

// Runner drives an engine without a display.
type Runner struct {
	engine    *constellation.Engine
	metrics   []Metric
	observers []Observer
}

func New(engine *constellation.Engine) *Runner {
	return &Runner{
		engine:    engine,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)            { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)        { r.observers = append(r.observers, o) }
func (r *Runner) Engine() *constellation.Engine { return r.engine }

// Run advances the engine cfg.Frames times. Metrics are reset first. On
// cancellation the partial result is returned with ctx.Err().
func (r *Runner) Run(ctx context.Context, cfg Config, input InputFunc) (*Result, error) {
	if cfg.Frames <= 0 {
		return nil, fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}
	if input == nil {
		input = Idle
	}

	result := &Result{
		EngineID: r.engine.ID(),
		Metrics:  make(map[string]float64),
	}
	if cfg.KeepStats {
		result.Stats = make([]FrameStats, 0, cfg.Frames)
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	maxConn := r.engine.Params().MaxConnections
	start := time.Now()
	defer func() {
		result.Elapsed = time.Since(start)
		for _, m := range r.metrics {
			result.Metrics[m.Name()] = m.Value()
		}
	}()

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		f := r.engine.Frame(input(r.engine.FrameIndex() + 1))
		stats := Collect(f, maxConn)

		for _, m := range r.metrics {
			m.Observe(stats)
		}
		for _, obs := range r.observers {
			obs.OnFrame(f, stats)
		}

		if cfg.KeepStats {
			result.Stats = append(result.Stats, stats)
		}
		result.Last = stats
		result.FramesRun++
	}

	return result, nil
}
