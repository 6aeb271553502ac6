package metrics

import "github.com/san-kum/constellation/internal/sim"

// MeanEdges is the average edge count per frame.
type MeanEdges struct {
	name    string
	sum     float64
	samples int
}

func NewMeanEdges() *MeanEdges {
	return &MeanEdges{name: "mean_edges"}
}

func (m *MeanEdges) Name() string { return m.name }

func (m *MeanEdges) Observe(s sim.FrameStats) {
	m.sum += float64(s.Edges)
	m.samples++
}

func (m *MeanEdges) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanEdges) Reset() {
	m.sum = 0
	m.samples = 0
}

// MeanDegree is the average connections per particle, 2*edges/population,
// averaged over frames with a non-empty population.
type MeanDegree struct {
	name    string
	sum     float64
	samples int
}

func NewMeanDegree() *MeanDegree {
	return &MeanDegree{name: "mean_degree"}
}

func (m *MeanDegree) Name() string { return m.name }

func (m *MeanDegree) Observe(s sim.FrameStats) {
	if s.Population == 0 {
		return
	}
	m.sum += 2 * float64(s.Edges) / float64(s.Population)
	m.samples++
}

func (m *MeanDegree) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanDegree) Reset() {
	m.sum = 0
	m.samples = 0
}
