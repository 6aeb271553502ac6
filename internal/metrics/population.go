package metrics

import (
	"math"

	"github.com/san-kum/constellation/internal/sim"
)

// PopulationError is the mean absolute distance between population and
// target. It is non-zero while the population ramps up after a resize.
type PopulationError struct {
	name    string
	sum     float64
	samples int
}

func NewPopulationError() *PopulationError {
	return &PopulationError{
		name: "population_error",
	}
}

func (p *PopulationError) Name() string {
	return p.name
}

func (p *PopulationError) Observe(s sim.FrameStats) {
	p.sum += math.Abs(float64(s.Population - s.Target))
	p.samples++
}

func (p *PopulationError) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.sum / float64(p.samples)
}

func (p *PopulationError) Reset() {
	p.sum = 0
	p.samples = 0
}

// PeakSpeed is the highest particle speed seen. Pointer attraction has no
// velocity clamp, so this grows without bound while the pointer is held.
type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(s sim.FrameStats) {
	p.peak = math.Max(p.peak, s.MaxSpeed)
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() { p.peak = 0 }

// Standard returns one instance of every metric in this package.
func Standard() []sim.Metric {
	return []sim.Metric{
		NewMeanEdges(),
		NewMeanDegree(),
		NewSaturationRatio(),
		NewPopulationError(),
		NewPeakSpeed(),
	}
}
