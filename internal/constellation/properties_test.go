package constellation_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/constellation/internal/constellation"
	"github.com/san-kum/constellation/internal/geom"
)

var heroParams = constellation.Params{
	MinRadius:          1.2,
	MaxRadius:          2.9,
	BaseSpeed:          0.85,
	HueMin:             200,
	HueMax:             225,
	ConnectDistance:    135,
	MaxConnections:     12,
	MaxAlpha:           0.6,
	Density:            1.0 / 18000,
	MinCount:           60,
	MaxCount:           220,
	SpawnBatch:         4,
	AttractionRadius:   220,
	AttractionStrength: 0.06,
	ClickSpawnCount:    10,
	BurstJitterMin:     6,
	BurstJitterMax:     26,
	BurstSpeedMin:      0.6,
	BurstSpeedMax:      1.8,
}

var _ = Describe("Engine", func() {
	var (
		engine *constellation.Engine
		bounds constellation.Bounds
	)

	BeforeEach(func() {
		bounds = constellation.Bounds{W: 1600, H: 900}
		engine = constellation.NewEngine(heroParams, rand.New(rand.NewSource(GinkgoRandomSeed())), bounds)
	})

	Describe("a running frame loop", func() {
		It("keeps every particle inside the wrap margin", func() {
			for i := 0; i < 400; i++ {
				engine.Frame(constellation.Input{Pointer: geom.V(800, 450), Engaged: i%3 == 0})
				for _, p := range engine.Particles() {
					Expect(p.Pos.X).To(BeNumerically(">=", -p.Radius))
					Expect(p.Pos.X).To(BeNumerically("<=", bounds.W+p.Radius))
					Expect(p.Pos.Y).To(BeNumerically(">=", -p.Radius))
					Expect(p.Pos.Y).To(BeNumerically("<=", bounds.H+p.Radius))
				}
			}
		})

		It("never exceeds the degree cap or the connection radius", func() {
			for i := 0; i < 120; i++ {
				f := engine.Frame(constellation.Input{})
				for _, p := range f.Particles {
					Expect(p.Connections).To(BeNumerically("<=", heroParams.MaxConnections))
				}
				for _, e := range f.Edges {
					d := f.Particles[e.A].Pos.Sub(f.Particles[e.B].Pos).Len()
					Expect(d).To(BeNumerically("<=", heroParams.ConnectDistance))
					Expect(e.Alpha).To(BeNumerically("~", engine.Graph().Alpha(d), 1e-12))
				}
			}
		})
	})

	Describe("population control", func() {
		It("computes the documented target for 800x600", func() {
			Expect(engine.Population().Target(constellation.Bounds{W: 800, H: 600})).To(Equal(60))
		})

		It("converges upward within ceil(deficit/batch) frames", func() {
			engine.OnResize(constellation.Bounds{W: 3000, H: 2000})
			target := engine.Target()
			start := len(engine.Particles())
			want := int(math.Ceil(float64(target-start) / float64(heroParams.SpawnBatch)))

			for i := 0; i < want; i++ {
				engine.Frame(constellation.Input{})
			}
			Expect(engine.Particles()).To(HaveLen(target))
		})

		It("converges downward in exactly one frame", func() {
			for i := 0; i < 8; i++ {
				engine.Click(geom.V(100, 100))
			}
			Expect(len(engine.Particles())).To(BeNumerically(">", engine.Target()))

			engine.Frame(constellation.Input{})
			Expect(engine.Particles()).To(HaveLen(engine.Target()))
		})
	})

	Describe("interaction", func() {
		It("ignores bursts outside the viewport", func() {
			n := len(engine.Particles())
			Expect(engine.SpawnBurst(geom.V(-5, 10), 10)).To(BeFalse())
			Expect(engine.SpawnBurst(geom.V(10, bounds.H+1), 10)).To(BeFalse())
			Expect(engine.Particles()).To(HaveLen(n))
		})

		It("leaves a particle sitting on the pointer untouched", func() {
			p := engine.Particles()[0]
			engine.ApplyPointerForce(p.Pos, true)
			Expect(engine.Particles()[0].Vel).To(Equal(p.Vel))
		})

		It("reseeds to the target on reset", func() {
			engine.Click(geom.V(500, 500))
			engine.Reset()
			Expect(engine.Particles()).To(HaveLen(engine.Target()))
		})
	})
})

var _ = Describe("Graph tie-break", func() {
	It("connects particle 0 to particle 1 before the closer particle 2", func() {
		ps := []constellation.Particle{
			{Pos: geom.V(0, 0)},
			{Pos: geom.V(40, 0)},
			{Pos: geom.V(1, 1)},
		}
		g := constellation.NewGraph(100, 1, 0.55)

		edges := g.Build(ps)

		Expect(edges).To(HaveLen(1))
		Expect(edges[0].A).To(Equal(0))
		Expect(edges[0].B).To(Equal(1))
	})
})
