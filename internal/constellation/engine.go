package constellation

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/san-kum/constellation/internal/geom"
)

// Input is the pointer state sampled by the host before a frame.
type Input struct {
	Pointer geom.Vec2
	Engaged bool
}

// Frame is the renderable result of one Engine.Frame call. Particles and
// Edges alias engine buffers and are only valid until the next frame.
type Frame struct {
	Index     uint64
	Particles []Particle
	Edges     []Edge
	Target    int
}

// Engine owns the state of one running animation and runs the per-frame
// pipeline against it.
type Engine struct {
	id         string
	params     Params
	field      Field
	spawner    *Spawner
	graph      *Graph
	population *Population
	frame      uint64
	edges      []Edge
	log        *slog.Logger
}

// NewEngine creates an engine for the given viewport and seeds it with the
// target number of particles.
func NewEngine(params Params, rng Rand, bounds Bounds) *Engine {
	spawner := NewSpawner(params, rng)
	e := &Engine{
		id:         uuid.NewString(),
		params:     params,
		field:      Field{Bounds: bounds},
		spawner:    spawner,
		graph:      NewGraph(params.ConnectDistance, params.MaxConnections, params.MaxAlpha),
		population: NewPopulation(params, spawner),
	}
	e.log = slog.Default().With("engine", e.id)
	e.population.Fill(&e.field)
	e.log.Debug("engine created", "w", bounds.W, "h", bounds.H, "particles", e.field.Len())
	return e
}

func (e *Engine) ID() string              { return e.id }
func (e *Engine) Params() Params          { return e.params }
func (e *Engine) Bounds() Bounds          { return e.field.Bounds }
func (e *Engine) Particles() []Particle   { return e.field.Particles }
func (e *Engine) Population() *Population { return e.population }
func (e *Engine) Graph() *Graph           { return e.graph }
func (e *Engine) FrameIndex() uint64      { return e.frame }
func (e *Engine) Target() int             { return e.population.Target(e.field.Bounds) }
func (e *Engine) Field() *Field           { return &e.field }

// ReconcilePopulation sets the viewport to b and moves the particle count one
// step toward its target.
func (e *Engine) ReconcilePopulation(b Bounds) {
	e.field.Bounds = b
	e.population.Reconcile(&e.field)
}

// StepAll advances every particle against b.
func (e *Engine) StepAll(b Bounds) {
	e.field.Bounds = b
	StepAll(e.field.Particles, b)
}

// BuildConnections computes this frame's edges. The result is reused by the
// next call.
func (e *Engine) BuildConnections() []Edge {
	e.edges = e.graph.Build(e.field.Particles)
	return e.edges
}

// ApplyPointerForce attracts particles toward p while engaged is true.
func (e *Engine) ApplyPointerForce(p geom.Vec2, engaged bool) {
	if !engaged {
		return
	}
	ApplyPointer(e.field.Particles, p, e.params.AttractionRadius, e.params.AttractionStrength)
}

// SpawnBurst injects count particles around p. A point outside the viewport
// is ignored and false is returned.
func (e *Engine) SpawnBurst(p geom.Vec2, count int) bool {
	if !e.field.Bounds.Contains(p) {
		e.log.Debug("burst ignored", "x", p.X, "y", p.Y)
		return false
	}
	for i := 0; i < count; i++ {
		e.field.Particles = append(e.field.Particles, e.spawner.Burst(p))
	}
	return true
}

// Click fires a burst of the configured ClickSpawnCount.
func (e *Engine) Click(p geom.Vec2) bool {
	return e.SpawnBurst(p, e.params.ClickSpawnCount)
}

// Reset drops every particle and re-seeds the field as at startup.
func (e *Engine) Reset() {
	e.population.Fill(&e.field)
	e.edges = e.edges[:0]
	e.log.Debug("reset", "particles", e.field.Len())
}

// OnResize applies new viewport bounds and refreshes derived constants. It
// takes effect on the next frame.
func (e *Engine) OnResize(b Bounds) {
	e.field.Bounds = b
	e.graph.SetConnectDistance(e.params.ConnectDistance)
	e.log.Debug("resize", "w", b.W, "h", b.H, "target", e.Target())
}

// Frame runs one animation frame: reconcile, pointer force, step, connect.
func (e *Engine) Frame(in Input) Frame {
	b := e.field.Bounds
	e.ReconcilePopulation(b)
	e.ApplyPointerForce(in.Pointer, in.Engaged)
	e.StepAll(b)
	edges := e.BuildConnections()
	e.frame++

	return Frame{
		Index:     e.frame,
		Particles: e.field.Particles,
		Edges:     edges,
		Target:    e.population.Target(b),
	}
}

// Snapshot returns the current state without advancing it, for hosts that
// stop animating after the first frame.
func (e *Engine) Snapshot() Frame {
	return Frame{
		Index:     e.frame,
		Particles: e.field.Particles,
		Edges:     e.edges,
		Target:    e.population.Target(e.field.Bounds),
	}
}
