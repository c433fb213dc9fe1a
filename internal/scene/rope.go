package scene

import (
	"math"

	"github.com/ropelab/ropesim/internal/config"
	"github.com/ropelab/ropesim/internal/geom"
	"github.com/ropelab/ropesim/internal/sim"
)

// anchorMass makes the driven head particle effectively immovable to the
// solver while keeping every mass strictly positive.
const anchorMass = 1e6

// buildRope hangs a chain from a driven anchor. The anchor sweeps a
// horizontal sine path; every other particle follows through the
// constraints alone.
func buildRope(cfg *config.Config) (*Scene, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	w := sim.New(opts)

	n := cfg.Setup.Particles
	if n < 2 {
		n = 2
	}
	top := geom.V(0, 50)

	anchor, err := w.AddParticle(top, anchorMass, cfg.Setup.Radius, cfg.Setup.Damping)
	if err != nil {
		return nil, err
	}
	prev := anchor
	for i := 1; i < n; i++ {
		pos := geom.V(top.X, top.Y-float64(i)*cfg.Setup.Spacing)
		id, err := w.AddParticle(pos, cfg.Setup.Mass, cfg.Setup.Radius, cfg.Setup.Damping)
		if err != nil {
			return nil, err
		}
		if _, err := w.AddConstraint(prev, id, cfg.Setup.Spacing, cfg.Setup.Strength); err != nil {
			return nil, err
		}
		prev = id
	}

	sweep := float64(n) * cfg.Setup.Spacing * 0.4
	s := &Scene{Name: "rope", World: w}
	s.Drive = func(tick int) {
		x := sweep * math.Sin(float64(tick)*0.03)
		w.SetPosition(anchor, geom.V(x, top.Y))
	}
	return s, nil
}
