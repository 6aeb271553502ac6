package viz

import (
	"math"

	"github.com/san-kum/constellation/internal/constellation"
	"github.com/san-kum/constellation/internal/geom"
)

const (
	// PixelsPerDot is the simulation-space size of one braille dot.
	PixelsPerDot = 4

	// MinEdgeAlpha hides edges too faint to read as a braille dot.
	MinEdgeAlpha = 0.08

	// BlobRadius is the particle radius at which a particle is drawn as a
	// 2x2 block of dots.
	BlobRadius = 2.2

	// Cell levels at or above these thresholds use the particle and strong
	// edge colors.
	particleLevel = 0.9
	edgeLevel     = 0.45

	// fadeFloor clears a cell once its faded level drops below it.
	fadeFloor = 0.15
)

// BoundsFor returns the simulation viewport covered by a canvas of
// cols x rows cells.
func BoundsFor(cols, rows int) constellation.Bounds {
	return constellation.Bounds{
		W: float64(cols * 2 * PixelsPerDot),
		H: float64(rows * 4 * PixelsPerDot),
	}
}

// CellToPixel returns the simulation point at the center of a cell.
func CellToPixel(col, row int) geom.Vec2 {
	return geom.V(
		(float64(col)+0.5)*2*PixelsPerDot,
		(float64(row)+0.5)*4*PixelsPerDot,
	)
}

func toDot(p geom.Vec2) (int, int) {
	return int(math.Floor(p.X / PixelsPerDot)), int(math.Floor(p.Y / PixelsPerDot))
}

// EdgeLevel maps an edge alpha to a cell level below particleLevel.
func EdgeLevel(alpha, maxAlpha float64) float64 {
	if maxAlpha <= 0 {
		return 0
	}
	return 0.2 + 0.6*math.Min(alpha/maxAlpha, 1)
}

// DrawFrame plots edges then particles onto c without clearing it.
func DrawFrame(c *Canvas, f constellation.Frame, maxAlpha float64) {
	for _, e := range f.Edges {
		if e.Alpha < MinEdgeAlpha {
			continue
		}
		x0, y0 := toDot(f.Particles[e.A].Pos)
		x1, y1 := toDot(f.Particles[e.B].Pos)
		c.DrawLineLevel(x0, y0, x1, y1, EdgeLevel(e.Alpha, maxAlpha))
	}
	for _, p := range f.Particles {
		x, y := toDot(p.Pos)
		c.Plot(x, y, 1)
		if p.Radius >= BlobRadius {
			c.Plot(x+1, y, 1)
			c.Plot(x, y+1, 1)
			c.Plot(x+1, y+1, 1)
		}
	}
}

// Fade scales every cell level by 1-amount and blanks cells that fall
// below the floor. Amounts outside (0, 1) clear the canvas.
func (c *Canvas) Fade(amount float64) {
	if amount <= 0 || amount >= 1 {
		c.Clear()
		return
	}
	keep := 1 - amount
	for i := range c.Level {
		for j := range c.Level[i] {
			c.Level[i][j] *= keep
			if c.Level[i][j] < fadeFloor {
				c.Level[i][j] = 0
				c.Grid[i][j] = blank
			}
		}
	}
}
