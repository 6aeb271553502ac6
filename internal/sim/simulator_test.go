package sim

import (
	"context"
	"math/rand"
	"testing"

	"github.com/san-kum/constellation/internal/constellation"
	"github.com/san-kum/constellation/internal/geom"
)

func testParams() constellation.Params {
	return constellation.Params{
		MinRadius:          1.2,
		MaxRadius:          2.9,
		BaseSpeed:          0.85,
		HueMin:             200,
		HueMax:             225,
		ConnectDistance:    135,
		MaxConnections:     12,
		MaxAlpha:           0.6,
		Density:            1.0 / 18000,
		MinCount:           60,
		MaxCount:           220,
		SpawnBatch:         4,
		AttractionRadius:   220,
		AttractionStrength: 0.06,
		ClickSpawnCount:    10,
		BurstJitterMin:     6,
		BurstJitterMax:     26,
		BurstSpeedMin:      0.6,
		BurstSpeedMax:      1.8,
	}
}

func newTestRunner(seed int64, b constellation.Bounds) *Runner {
	return New(constellation.NewEngine(testParams(), rand.New(rand.NewSource(seed)), b))
}

func TestRunnerRun(t *testing.T) {
	r := newTestRunner(1, constellation.Bounds{W: 1280, H: 720})

	result, err := r.Run(context.Background(), Config{Frames: 120, KeepStats: true}, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.FramesRun != 120 {
		t.Errorf("FramesRun = %d, want 120", result.FramesRun)
	}
	if len(result.Stats) != 120 {
		t.Errorf("expected 120 stats, got %d", len(result.Stats))
	}
	if result.EngineID != r.Engine().ID() {
		t.Errorf("EngineID = %q, want %q", result.EngineID, r.Engine().ID())
	}
	for i, s := range result.Stats {
		if s.Index != uint64(i+1) {
			t.Fatalf("stats[%d].Index = %d", i, s.Index)
		}
		if s.Population != s.Target {
			t.Errorf("frame %d population %d, target %d", s.Index, s.Population, s.Target)
		}
	}
	if result.Last != result.Stats[119] {
		t.Error("Last does not match final stats")
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	r := newTestRunner(2, constellation.Bounds{W: 800, H: 600})

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero frames", Config{Frames: 0}},
		{"negative frames", Config{Frames: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Run(context.Background(), tt.cfg, nil); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunnerCancelled(t *testing.T) {
	r := newTestRunner(3, constellation.Bounds{W: 800, H: 600})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := r.Run(ctx, Config{Frames: 10}, nil)
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if result.FramesRun != 0 {
		t.Errorf("FramesRun = %d after cancel, want 0", result.FramesRun)
	}
}

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(s FrameStats) {
	t.count++
	t.sum += float64(s.Edges)
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

type countingObserver struct{ frames int }

func (c *countingObserver) OnFrame(constellation.Frame, FrameStats) { c.frames++ }

func TestRunnerMetricsAndObservers(t *testing.T) {
	r := newTestRunner(4, constellation.Bounds{W: 800, H: 600})

	metric := &testMetric{count: 99}
	obs := &countingObserver{}
	r.AddMetric(metric)
	r.AddObserver(obs)

	result, err := r.Run(context.Background(), Config{Frames: 10}, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}
	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}
	if obs.frames != 10 {
		t.Errorf("observer saw %d frames, want 10", obs.frames)
	}
}

func TestRunnerInputFunc(t *testing.T) {
	r := newTestRunner(5, constellation.Bounds{W: 800, H: 600})
	var seen []uint64
	input := func(frame uint64) constellation.Input {
		seen = append(seen, frame)
		return constellation.Input{Pointer: geom.V(400, 300), Engaged: true}
	}

	if _, err := r.Run(context.Background(), Config{Frames: 3}, input); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(seen) != 3 || seen[0] != 1 || seen[2] != 3 {
		t.Errorf("input called with %v, want [1 2 3]", seen)
	}
}

func TestCollect(t *testing.T) {
	f := constellation.Frame{
		Index: 7,
		Particles: []constellation.Particle{
			{Vel: geom.V(3, 4), Connections: 2},
			{Vel: geom.V(1, 0), Connections: 1},
			{Vel: geom.V(0, 0), Connections: 2},
		},
		Edges:  []constellation.Edge{{A: 0, B: 1, Alpha: 0.2}, {A: 0, B: 2, Alpha: 0.4}},
		Target: 3,
	}

	s := Collect(f, 2)
	if s.Index != 7 || s.Population != 3 || s.Edges != 2 || s.Target != 3 {
		t.Errorf("Collect = %+v", s)
	}
	if s.Saturated != 2 {
		t.Errorf("Saturated = %d, want 2", s.Saturated)
	}
	if s.MaxSpeed != 5 {
		t.Errorf("MaxSpeed = %v, want 5", s.MaxSpeed)
	}
	if s.MeanAlpha < 0.3-1e-12 || s.MeanAlpha > 0.3+1e-12 {
		t.Errorf("MeanAlpha = %v, want 0.3", s.MeanAlpha)
	}
}

func TestEnsembleRun(t *testing.T) {
	e := NewEnsemble(testParams(), constellation.Bounds{W: 800, H: 600}, 4, 10).
		WithMetrics(func() []Metric { return []Metric{&testMetric{}} })

	results, err := e.Run(context.Background(), Config{Frames: 20}, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	ids := make(map[string]bool)
	for i, res := range results {
		if res.FramesRun != 20 {
			t.Errorf("run %d FramesRun = %d", i, res.FramesRun)
		}
		if _, ok := res.Metrics["test"]; !ok {
			t.Errorf("run %d missing metric", i)
		}
		ids[res.EngineID] = true
	}
	if len(ids) != 4 {
		t.Errorf("expected 4 distinct engines, got %d", len(ids))
	}
}
