package constellation

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/constellation/internal/geom"
)

func at(x, y float64) Particle { return Particle{Pos: geom.V(x, y), Radius: 1} }

func TestGraph_TieBreakPrefersLowerIndex(t *testing.T) {
	// all three pairs are in range; 2 is much closer to 0 than 1 is
	ps := []Particle{at(0, 0), at(50, 0), at(5, 0)}
	g := NewGraph(140, 1, 0.6)

	edges := g.Build(ps)

	if len(edges) != 1 {
		t.Fatalf("got %d edges, want 1: %+v", len(edges), edges)
	}
	if edges[0].A != 0 || edges[0].B != 1 {
		t.Errorf("edge = (%d,%d), want (0,1)", edges[0].A, edges[0].B)
	}
	if ps[2].Connections != 0 {
		t.Errorf("particle 2 Connections = %d, want 0", ps[2].Connections)
	}
}

func TestGraph_ScanOrder(t *testing.T) {
	// 0 and 1 are saturated by each other at cap 1, leaving 2-3 to pair up
	ps := []Particle{at(0, 0), at(10, 0), at(20, 0), at(30, 0)}
	g := NewGraph(100, 1, 0.5)

	edges := g.Build(ps)

	want := [][2]int{{0, 1}, {2, 3}}
	if len(edges) != len(want) {
		t.Fatalf("got %d edges, want %d: %+v", len(edges), len(want), edges)
	}
	for i, e := range edges {
		if e.A != want[i][0] || e.B != want[i][1] {
			t.Errorf("edge %d = (%d,%d), want (%d,%d)", i, e.A, e.B, want[i][0], want[i][1])
		}
	}
}

func TestGraph_SaturatedNeighborIsSkippedNotStopped(t *testing.T) {
	// particle 1 arrives already at the cap; 0 must still reach 2
	ps := []Particle{at(0, 0), at(1, 0), at(2, 0)}
	ps[1].Connections = 2
	g := NewGraph(10, 2, 1)

	edges := g.Build(ps)

	if len(edges) != 1 || edges[0].A != 0 || edges[0].B != 2 {
		t.Fatalf("edges = %+v, want [(0,2)]", edges)
	}
	if ps[1].Connections != 2 {
		t.Errorf("saturated particle Connections = %d, want 2", ps[1].Connections)
	}
}

func TestGraph_OutOfRange(t *testing.T) {
	ps := []Particle{at(0, 0), at(140, 0), at(0, 140.0001)}
	g := NewGraph(140, 10, 0.55)

	edges := g.Build(ps)

	if len(edges) != 1 {
		t.Fatalf("got %d edges, want 1 (exactly at radius connects)", len(edges))
	}
	if edges[0].Alpha != 0 {
		t.Errorf("alpha at connect distance = %v, want 0", edges[0].Alpha)
	}
	if ps[2].Connections != 0 {
		t.Errorf("out of range particle got %d connections", ps[2].Connections)
	}
}

func TestGraph_Alpha(t *testing.T) {
	g := NewGraph(100, 1, 0.6)

	tests := []struct {
		d, want float64
	}{
		{0, 0.6},
		{25, 0.45},
		{50, 0.3},
		{100, 0},
		{150, 0},
		{-10, 0.6},
	}

	for _, tt := range tests {
		if got := g.Alpha(tt.d); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Alpha(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}

	prev := math.Inf(1)
	for d := 0.0; d <= 120; d += 0.5 {
		a := g.Alpha(d)
		if a > prev {
			t.Fatalf("Alpha not monotone at d=%v: %v > %v", d, a, prev)
		}
		prev = a
	}
}

func TestGraph_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	const (
		connectDistance = 60.0
		maxConnections  = 3
	)
	g := NewGraph(connectDistance, maxConnections, 0.55)

	for trial := 0; trial < 20; trial++ {
		ps := make([]Particle, 150)
		for i := range ps {
			ps[i] = at(rng.Float64()*300, rng.Float64()*200)
		}

		edges := g.Build(ps)

		degree := make([]int, len(ps))
		for _, e := range edges {
			if e.A >= e.B {
				t.Fatalf("edge (%d,%d) not ordered", e.A, e.B)
			}
			d := ps[e.A].Pos.Sub(ps[e.B].Pos).Len()
			if d > connectDistance {
				t.Fatalf("edge (%d,%d) length %v exceeds %v", e.A, e.B, d, connectDistance)
			}
			if e.Alpha < 0 || e.Alpha > 0.55 {
				t.Fatalf("edge alpha %v out of range", e.Alpha)
			}
			degree[e.A]++
			degree[e.B]++
		}
		for i, p := range ps {
			if p.Connections > maxConnections {
				t.Fatalf("particle %d has %d connections", i, p.Connections)
			}
			if p.Connections != degree[i] {
				t.Fatalf("particle %d Connections = %d, edges give %d", i, p.Connections, degree[i])
			}
		}
	}
}

func TestGraph_SetConnectDistance(t *testing.T) {
	ps := []Particle{at(0, 0), at(30, 0)}
	g := NewGraph(20, 5, 1)
	if n := len(g.Build(ps)); n != 0 {
		t.Fatalf("got %d edges before resize, want 0", n)
	}

	for i := range ps {
		ps[i].Connections = 0
	}
	g.SetConnectDistance(40)
	if n := len(g.Build(ps)); n != 1 {
		t.Errorf("got %d edges after resize, want 1", n)
	}
}

func BenchmarkGraphBuild(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	ps := make([]Particle, 220)
	for i := range ps {
		ps[i] = at(rng.Float64()*1920, rng.Float64()*1080)
	}
	g := NewGraph(140, 14, 0.55)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := range ps {
			ps[j].Connections = 0
		}
		g.Build(ps)
	}
}
