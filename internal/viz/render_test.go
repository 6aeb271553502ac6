package viz

import (
	"testing"

	"github.com/san-kum/constellation/internal/constellation"
	"github.com/san-kum/constellation/internal/geom"
)

func TestBoundsFor(t *testing.T) {
	b := BoundsFor(80, 22)
	if b.W != 640 || b.H != 352 {
		t.Errorf("BoundsFor(80, 22) = %v, want 640x352", b)
	}
}

func TestCellToPixelRoundTrip(t *testing.T) {
	for _, cell := range [][2]int{{0, 0}, {3, 7}, {79, 21}} {
		x, y := toDot(CellToPixel(cell[0], cell[1]))
		if x/2 != cell[0] || y/4 != cell[1] {
			t.Errorf("cell %v maps back to dot (%d, %d)", cell, x, y)
		}
	}
}

func TestEdgeLevel(t *testing.T) {
	tests := []struct {
		alpha, max, want float64
	}{
		{0, 0.6, 0.2},
		{0.6, 0.6, 0.8},
		{0.3, 0.6, 0.5},
		{0.3, 0, 0},
	}
	for _, tt := range tests {
		got := EdgeLevel(tt.alpha, tt.max)
		if got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("EdgeLevel(%v, %v) = %v, want %v", tt.alpha, tt.max, got, tt.want)
		}
		if got >= particleLevel {
			t.Errorf("EdgeLevel(%v, %v) = %v reaches particle level", tt.alpha, tt.max, got)
		}
	}
}

func TestDrawFrame(t *testing.T) {
	c := NewCanvas(20, 10)
	f := constellation.Frame{
		Particles: []constellation.Particle{
			{Pos: geom.V(10, 10), Radius: 1.5},
			{Pos: geom.V(100, 10), Radius: 2.5},
			{Pos: geom.V(10, 100), Radius: 1.5},
		},
		Edges: []constellation.Edge{
			{A: 0, B: 1, Alpha: 0.5},
			{A: 0, B: 2, Alpha: 0.01},
		},
	}

	DrawFrame(c, f, 0.6)

	if !c.IsSet(2, 2) {
		t.Error("small particle not drawn")
	}
	for _, d := range [][2]int{{25, 2}, {26, 2}, {25, 3}, {26, 3}} {
		if !c.IsSet(d[0], d[1]) {
			t.Errorf("blob dot %v not drawn", d)
		}
	}
	if !c.IsSet(12, 2) {
		t.Error("strong edge not drawn")
	}
	if c.IsSet(2, 12) {
		t.Error("faint edge drawn")
	}
	if c.Level[0][1] != 1 {
		t.Errorf("particle cell level = %v, want 1", c.Level[0][1])
	}
	if lvl := c.Level[0][6]; lvl >= particleLevel || lvl < edgeLevel {
		t.Errorf("edge cell level = %v", lvl)
	}
}

func TestDrawFrameSkipsOffscreen(t *testing.T) {
	c := NewCanvas(2, 2)
	f := constellation.Frame{Particles: []constellation.Particle{{Pos: geom.V(-2, 5)}, {Pos: geom.V(5, -2)}}}
	DrawFrame(c, f, 0.6)
	for _, row := range c.Grid {
		for _, r := range row {
			if r != blank {
				t.Fatal("offscreen particle drawn")
			}
		}
	}
}

func TestCanvasFade(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Plot(0, 0, 1)
	c.Plot(2, 0, 0.16)

	c.Fade(0.5)
	if c.Level[0][0] != 0.5 || !c.IsSet(0, 0) {
		t.Errorf("bright cell after fade = %v", c.Level[0][0])
	}
	if c.Level[0][1] != 0 || c.IsSet(2, 0) {
		t.Error("dim cell survived fade")
	}

	for _, amount := range []float64{0, 1, 2} {
		c.Plot(0, 0, 1)
		c.Fade(amount)
		if c.IsSet(0, 0) {
			t.Errorf("Fade(%v) did not clear", amount)
		}
	}
}
