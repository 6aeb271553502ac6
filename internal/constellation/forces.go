package constellation

import "github.com/san-kum/constellation/internal/geom"

// ApplyPointer pulls every particle within radius toward point. The pull
// falls off linearly in squared distance and is added to the velocity with no
// cap, so holding the pointer keeps accelerating nearby particles. Particles
// closer than one pixel are left alone.
func ApplyPointer(ps []Particle, point geom.Vec2, radius, strength float64) {
	radiusSq := radius * radius
	for i := range ps {
		p := &ps[i]
		toPointer := point.Sub(p.Pos)
		d2 := toPointer.LenSq()
		if d2 < 1 || d2 > radiusSq {
			continue
		}

		t := 1 - d2/radiusSq
		p.Vel = p.Vel.Add(toPointer.SetLen(strength * t))
	}
}
