package constellation

import "github.com/san-kum/constellation/internal/geom"

// Particle is one dot of the network. Connections is transient: Step clears it
// and Graph.Build counts it back up.
type Particle struct {
	Pos         geom.Vec2
	Vel         geom.Vec2
	Radius      float64
	Connections int
	Hue         float64
}

// Bounds is the viewport size in pixels.
type Bounds struct {
	W, H float64
}

func (b Bounds) Area() float64 { return b.W * b.H }

// Contains reports whether p lies inside the closed rectangle [0,W]x[0,H].
func (b Bounds) Contains(p geom.Vec2) bool {
	return p.X >= 0 && p.X <= b.W && p.Y >= 0 && p.Y <= b.H
}

// Field is the simulation state of one running animation: the particles in
// insertion order and the current viewport.
type Field struct {
	Particles []Particle
	Bounds    Bounds
}

func (f *Field) Len() int { return len(f.Particles) }

// trimFront drops the n oldest particles.
func (f *Field) trimFront(n int) {
	if n <= 0 {
		return
	}
	if n >= len(f.Particles) {
		f.Particles = f.Particles[:0]
		return
	}
	kept := copy(f.Particles, f.Particles[n:])
	f.Particles = f.Particles[:kept]
}
