package metrics

import "github.com/san-kum/constellation/internal/sim"

// SaturationRatio is the fraction of particle-frames spent at the degree cap.
type SaturationRatio struct {
	name      string
	saturated int
	samples   int
}

func NewSaturationRatio() *SaturationRatio {
	return &SaturationRatio{name: "saturation"}
}

func (s *SaturationRatio) Name() string {
	return s.name
}

func (s *SaturationRatio) Observe(st sim.FrameStats) {
	s.saturated += st.Saturated
	s.samples += st.Population
}

func (s *SaturationRatio) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.saturated) / float64(s.samples)
}

func (s *SaturationRatio) Reset() {
	s.saturated = 0
	s.samples = 0
}
