package constellation

import (
	"math"

	"github.com/san-kum/constellation/internal/geom"
)

// Rand is the uniform random source consumed by the simulation. *rand.Rand
// satisfies it.
type Rand interface {
	Float64() float64
}

// Spawner creates particles with randomized state.
type Spawner struct {
	params Params
	rng    Rand
}

func NewSpawner(params Params, rng Rand) *Spawner {
	return &Spawner{params: params, rng: rng}
}

func (s *Spawner) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

func (s *Spawner) direction() geom.Vec2 {
	return geom.FromAngle(s.uniform(0, 2*math.Pi))
}

// Spawn returns a particle placed uniformly over b and moving in a random
// direction at a speed drawn around BaseSpeed.
func (s *Spawner) Spawn(b Bounds) Particle {
	pos := geom.V(s.uniform(0, b.W), s.uniform(0, b.H))
	speed := s.uniform(s.params.BaseSpeed*SpeedMinFactor, s.params.BaseSpeed*SpeedMaxFactor)
	return Particle{
		Pos:    pos,
		Vel:    s.direction().Scale(speed),
		Radius: s.uniform(s.params.MinRadius, s.params.MaxRadius),
		Hue:    s.uniform(s.params.HueMin, s.params.HueMax),
	}
}

// Burst returns a particle jittered around at with an independent random
// velocity, as injected by a click-burst.
func (s *Spawner) Burst(at geom.Vec2) Particle {
	jitter := s.direction().Scale(s.uniform(s.params.BurstJitterMin, s.params.BurstJitterMax))
	vel := s.direction().Scale(s.uniform(s.params.BurstSpeedMin, s.params.BurstSpeedMax))
	return Particle{
		Pos:    at.Add(jitter),
		Vel:    vel,
		Radius: s.uniform(s.params.MinRadius, s.params.MaxRadius),
		Hue:    s.uniform(s.params.HueMin, s.params.HueMax),
	}
}
