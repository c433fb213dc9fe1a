package scene

import (
	"github.com/ropelab/ropesim/internal/config"
	"github.com/ropelab/ropesim/internal/geom"
	"github.com/ropelab/ropesim/internal/sim"
)

// buildPendulum hangs a single bob from a pinned pivot, released
// horizontally. The one constraint acts as the rod; the mass weighting is
// plainly visible when the bob outweighs nothing but the pivot pin.
func buildPendulum(cfg *config.Config) (*Scene, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	w := sim.New(opts)

	pivotPos := geom.V(0, 30)
	length := cfg.Setup.Spacing

	pivot, err := w.AddParticle(pivotPos, anchorMass, 1, cfg.Setup.Damping)
	if err != nil {
		return nil, err
	}
	bob, err := w.AddParticle(geom.V(length, 30), cfg.Setup.Mass, cfg.Setup.Radius, cfg.Setup.Damping)
	if err != nil {
		return nil, err
	}
	if _, err := w.AddConstraint(pivot, bob, length, cfg.Setup.Strength); err != nil {
		return nil, err
	}

	s := &Scene{Name: "pendulum", World: w}
	s.Drive = func(tick int) {
		pin(w, pivot, pivotPos)
	}
	return s, nil
}
