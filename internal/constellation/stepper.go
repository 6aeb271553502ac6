package constellation

// Step advances p by its velocity and wraps each axis independently with a
// margin of p.Radius, so the dot leaves the viewport completely before it
// reappears on the opposite edge. Step also clears p.Connections; it must run
// before the frame's Graph.Build.
func Step(p *Particle, b Bounds) {
	p.Pos = p.Pos.Add(p.Vel)

	r := p.Radius
	if p.Pos.X < -r {
		p.Pos.X = b.W + r
	}
	if p.Pos.X > b.W+r {
		p.Pos.X = -r
	}
	if p.Pos.Y < -r {
		p.Pos.Y = b.H + r
	}
	if p.Pos.Y > b.H+r {
		p.Pos.Y = -r
	}

	p.Connections = 0
}

// StepAll steps every particle of ps against b.
func StepAll(ps []Particle, b Bounds) {
	for i := range ps {
		Step(&ps[i], b)
	}
}
