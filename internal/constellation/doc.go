// Package constellation implements the particle-network simulation behind the
// constellation animation.
//
// The package is split along the per-frame pipeline:
//
//   - [Population]: keeps the particle count near a target derived from viewport area
//   - [ApplyPointer] / [Engine.SpawnBurst]: interactive forces and click bursts
//   - [Step]: motion integration with toroidal wraparound
//   - [Graph]: degree-capped pairwise connection building
//   - [Engine]: owns one [Field] and runs the pipeline in order
//
// # Example
//
//	rng := rand.New(rand.NewSource(42))
//	eng := constellation.NewEngine(params, rng, constellation.Bounds{W: 800, H: 600})
//	frame := eng.Frame(constellation.Input{})
//	for _, e := range frame.Edges {
//		a, b := frame.Particles[e.A], frame.Particles[e.B]
//		// draw a line from a.Pos to b.Pos with opacity e.Alpha
//	}
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. Resize, click and key handlers must
// run on the same goroutine as [Engine.Frame], between frames.
package constellation
