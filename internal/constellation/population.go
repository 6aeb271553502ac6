package constellation

import "math"

// Population steers the particle count toward a density target. Growth is
// limited to SpawnBatch particles per call; shrinking happens at once.
type Population struct {
	density    float64
	minCount   int
	maxCount   int
	spawnBatch int
	spawner    *Spawner
}

func NewPopulation(params Params, spawner *Spawner) *Population {
	return &Population{
		density:    params.Density,
		minCount:   params.MinCount,
		maxCount:   params.MaxCount,
		spawnBatch: params.SpawnBatch,
		spawner:    spawner,
	}
}

// Target returns clamp(floor(area*density), minCount, maxCount). A zero-area
// viewport yields minCount.
func (p *Population) Target(b Bounds) int {
	n := int(math.Floor(b.Area() * p.density))
	if n < p.minCount {
		n = p.minCount
	}
	if n > p.maxCount {
		n = p.maxCount
	}
	return n
}

// Reconcile moves f one step toward Target: it spawns at most spawnBatch new
// particles, or drops every excess particle from the front (oldest first).
func (p *Population) Reconcile(f *Field) (spawned, trimmed int) {
	target := p.Target(f.Bounds)
	current := f.Len()

	switch {
	case current < target:
		spawned = min(p.spawnBatch, target-current)
		p.spawn(f, spawned)
	case current > target:
		trimmed = current - target
		f.trimFront(trimmed)
	}
	return spawned, trimmed
}

// Fill empties f and seeds it with Target particles in one go.
func (p *Population) Fill(f *Field) {
	f.Particles = f.Particles[:0]
	p.spawn(f, p.Target(f.Bounds))
}

// FramesToConverge is the number of Reconcile calls needed to reach target
// from current.
func (p *Population) FramesToConverge(current, target int) int {
	switch {
	case current > target:
		return 1
	case current == target:
		return 0
	case p.spawnBatch <= 0:
		return -1
	}
	deficit := target - current
	return (deficit + p.spawnBatch - 1) / p.spawnBatch
}

func (p *Population) spawn(f *Field, n int) {
	for i := 0; i < n; i++ {
		f.Particles = append(f.Particles, p.spawner.Spawn(f.Bounds))
	}
}
