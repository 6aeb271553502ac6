package constellation

import "math"

// Edge connects particles A < B (indices into the frame's particle slice).
type Edge struct {
	A, B  int
	Alpha float64
}

// Graph builds the per-frame connection set.
type Graph struct {
	connectDistance   float64
	connectDistanceSq float64
	maxConnections    int
	maxAlpha          float64
	edges             []Edge
}

func NewGraph(connectDistance float64, maxConnections int, maxAlpha float64) *Graph {
	g := &Graph{maxConnections: maxConnections, maxAlpha: maxAlpha}
	g.SetConnectDistance(connectDistance)
	return g
}

// SetConnectDistance updates the connection radius and its cached square.
func (g *Graph) SetConnectDistance(d float64) {
	g.connectDistance = d
	g.connectDistanceSq = d * d
}

func (g *Graph) ConnectDistance() float64 { return g.connectDistance }
func (g *Graph) MaxConnections() int      { return g.maxConnections }

// Alpha maps distance d linearly from [0, ConnectDistance] onto [maxAlpha, 0],
// clamped to that range.
func (g *Graph) Alpha(d float64) float64 {
	if g.connectDistance <= 0 {
		return 0
	}
	a := g.maxAlpha * (1 - d/g.connectDistance)
	return math.Max(0, math.Min(g.maxAlpha, a))
}

// Build scans every unordered pair once in increasing index order and returns
// the edges of pairs within the connection radius, never giving a particle
// more than MaxConnections edges. Lower indices claim their neighbors first.
// Connections on each particle is incremented per edge.
//
// The returned slice is reused by the next call.
func (g *Graph) Build(ps []Particle) []Edge {
	g.edges = g.edges[:0]
	limit := g.maxConnections

	for i := 0; i < len(ps); i++ {
		a := &ps[i]
		if a.Connections >= limit {
			continue
		}

		for j := i + 1; j < len(ps); j++ {
			b := &ps[j]
			if a.Connections >= limit {
				break
			}
			// a later j may still have room, so skip rather than stop
			if b.Connections >= limit {
				continue
			}

			dx := a.Pos.X - b.Pos.X
			dy := a.Pos.Y - b.Pos.Y
			d2 := dx*dx + dy*dy
			if d2 > g.connectDistanceSq {
				continue
			}

			g.edges = append(g.edges, Edge{A: i, B: j, Alpha: g.Alpha(math.Sqrt(d2))})
			a.Connections++
			b.Connections++
		}
	}

	return g.edges
}
