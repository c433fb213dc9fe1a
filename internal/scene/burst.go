package scene

import (
	"math"
	"math/rand"

	"github.com/ropelab/ropesim/internal/config"
	"github.com/ropelab/ropesim/internal/geom"
	"github.com/ropelab/ropesim/internal/sim"
)

// buildBurst scatters unconstrained particles from the center with
// seeded velocities. With no constraints the scene is pure integration
// and boundary response.
func buildBurst(cfg *config.Config) (*Scene, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	w := sim.New(opts)
	rng := rand.New(rand.NewSource(cfg.Seed))

	n := cfg.Setup.Particles
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		angle := 2*math.Pi*float64(i)/float64(n) + rng.Float64()*0.2
		speed := 25 + rng.Float64()*35
		id, err := w.AddParticle(geom.V(0, 0), cfg.Setup.Mass, cfg.Setup.Radius, cfg.Setup.Damping)
		if err != nil {
			return nil, err
		}
		w.SetVelocity(id, geom.V(math.Cos(angle)*speed, math.Sin(angle)*speed))
	}

	return &Scene{Name: "burst", World: w}, nil
}
