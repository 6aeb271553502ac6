package sim

import (
	"time"

	"github.com/san-kum/constellation/internal/constellation"
)

// FrameStats summarizes one frame for metrics and observers.
type FrameStats struct {
	Index      uint64
	Population int
	Target     int
	Edges      int
	Saturated  int
	MeanAlpha  float64
	MaxSpeed   float64
}

// Collect derives stats from a frame. maxConnections is the degree cap used
// to count saturated particles.
func Collect(f constellation.Frame, maxConnections int) FrameStats {
	s := FrameStats{
		Index:      f.Index,
		Population: len(f.Particles),
		Target:     f.Target,
		Edges:      len(f.Edges),
	}
	for _, p := range f.Particles {
		if p.Connections >= maxConnections {
			s.Saturated++
		}
		if v := p.Vel.Len(); v > s.MaxSpeed {
			s.MaxSpeed = v
		}
	}
	if len(f.Edges) > 0 {
		sum := 0.0
		for _, e := range f.Edges {
			sum += e.Alpha
		}
		s.MeanAlpha = sum / float64(len(f.Edges))
	}
	return s
}

type Metric interface {
	Name() string
	Observe(s FrameStats)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f constellation.Frame, s FrameStats)
}

// InputFunc supplies the pointer state for a given frame index (1-based).
type InputFunc func(frame uint64) constellation.Input

// Idle never engages the pointer.
func Idle(uint64) constellation.Input { return constellation.Input{} }

type Config struct {
	Frames int
	// KeepStats stores every FrameStats in the result.
	KeepStats bool
}

type Result struct {
	EngineID  string
	Stats     []FrameStats
	Last      FrameStats
	Metrics   map[string]float64
	FramesRun int
	Elapsed   time.Duration
}
