package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ropelab/ropesim/internal/geom"
	"github.com/ropelab/ropesim/internal/sim"
)

var _ = Describe("World", func() {
	var w *sim.World

	BeforeEach(func() {
		w = sim.New(sim.DefaultOptions())
	})

	Describe("construction", func() {
		It("rejects non-positive masses", func() {
			_, err := w.AddParticle(geom.V(0, 0), 0, 1, 1)
			Expect(err).To(MatchError(sim.ErrBadMass))

			_, err = w.AddParticle(geom.V(0, 0), -3, 1, 1)
			Expect(err).To(MatchError(sim.ErrBadMass))

			Expect(w.NumParticles()).To(BeZero())
		})

		It("rejects self-referential constraints", func() {
			id, err := w.AddParticle(geom.V(0, 0), 1, 0, 1)
			Expect(err).NotTo(HaveOccurred())

			_, err = w.AddConstraint(id, id, 1, 1)
			Expect(err).To(MatchError(sim.ErrSelfConstraint))
		})

		It("hands out ids in creation order", func() {
			for i := 0; i < 4; i++ {
				id, err := w.AddParticle(geom.V(float64(i), 0), 1, 0, 1)
				Expect(err).NotTo(HaveOccurred())
				Expect(int(id)).To(Equal(i))
			}
		})
	})

	Describe("stepping", func() {
		var a, b sim.ParticleID

		BeforeEach(func() {
			var err error
			a, err = w.AddParticle(geom.V(0, 0), 1, 0, 1)
			Expect(err).NotTo(HaveOccurred())
			b, err = w.AddParticle(geom.V(12, 0), 1, 0, 1)
			Expect(err).NotTo(HaveOccurred())
			_, err = w.AddConstraint(a, b, 10, 1)
			Expect(err).NotTo(HaveOccurred())
		})

		It("fails fast on invalid step arguments", func() {
			_, err := w.Step(0, 4, nil)
			Expect(err).To(MatchError(sim.ErrBadStep))

			_, err = w.Step(1.0/60, -1, nil)
			Expect(err).To(MatchError(sim.ErrBadStep))

			pos, err := w.Position(b)
			Expect(err).NotTo(HaveOccurred())
			Expect(pos).To(Equal(geom.V(12, 0)), "rejected steps must not move particles")
			Expect(w.Tick()).To(BeZero())
		})

		It("relaxes a stretched pair toward rest length", func() {
			for i := 0; i < 50; i++ {
				diag, err := w.Step(1.0/60, 8, nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(diag.Clean()).To(BeTrue())
			}

			pa, _ := w.Position(a)
			pb, _ := w.Position(b)
			Expect(pa.Dist(pb)).To(BeNumerically("~", 10, 1e-6))
		})

		It("reports degenerate constraints without failing the tick", func() {
			p, err := w.Particle(b)
			Expect(err).NotTo(HaveOccurred())
			p.Pos = geom.V(0, 0)
			p.Prev = geom.V(0, 0)
			Expect(w.SetParticle(b, p)).To(Succeed())

			diag, err := w.Step(1.0/60, 8, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(diag.Faults).To(HaveLen(1))
			Expect(diag.Faults[0].Kind).To(Equal(sim.FaultDegenerate))

			pa, _ := w.Position(a)
			Expect(pa.IsFinite()).To(BeTrue())
		})

		It("replays identically from the same construction sequence", func() {
			replay := sim.New(sim.DefaultOptions())
			ra, _ := replay.AddParticle(geom.V(0, 0), 1, 0, 1)
			rb, _ := replay.AddParticle(geom.V(12, 0), 1, 0, 1)
			replay.AddConstraint(ra, rb, 10, 1)

			bounds := &sim.Bounds{Min: geom.V(-20, -20), Max: geom.V(20, 20)}
			for i := 0; i < 120; i++ {
				_, err := w.Step(1.0/60, 6, bounds)
				Expect(err).NotTo(HaveOccurred())
				_, err = replay.Step(1.0/60, 6, bounds)
				Expect(err).NotTo(HaveOccurred())
			}

			for id := 0; id < w.NumParticles(); id++ {
				p1, _ := w.Particle(sim.ParticleID(id))
				p2, _ := replay.Particle(sim.ParticleID(id))
				Expect(p1.Pos).To(Equal(p2.Pos))
			}
		})
	})
})
