package scene

import (
	"github.com/ropelab/ropesim/internal/config"
	"github.com/ropelab/ropesim/internal/geom"
	"github.com/ropelab/ropesim/internal/sim"
)

// buildWeb lays out a rectangular grid with structural constraints
// between axis neighbors. The two top corners are re-pinned every tick,
// so the sheet sags and swings under gravity.
func buildWeb(cfg *config.Config) (*Scene, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	w := sim.New(opts)

	cols, rows := cfg.Setup.Width, cfg.Setup.Height
	if cols < 2 {
		cols = 2
	}
	if rows < 2 {
		rows = 2
	}
	spacing := cfg.Setup.Spacing
	origin := geom.V(-float64(cols-1)*spacing/2, 45)

	ids := make([]sim.ParticleID, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			pos := geom.V(origin.X+float64(c)*spacing, origin.Y-float64(r)*spacing)
			mass := cfg.Setup.Mass
			if r == 0 && (c == 0 || c == cols-1) {
				mass = anchorMass
			}
			id, err := w.AddParticle(pos, mass, cfg.Setup.Radius, cfg.Setup.Damping)
			if err != nil {
				return nil, err
			}
			ids[r*cols+c] = id
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c > 0 {
				if _, err := w.AddConstraint(ids[r*cols+c-1], ids[r*cols+c], spacing, cfg.Setup.Strength); err != nil {
					return nil, err
				}
			}
			if r > 0 {
				if _, err := w.AddConstraint(ids[(r-1)*cols+c], ids[r*cols+c], spacing, cfg.Setup.Strength); err != nil {
					return nil, err
				}
			}
		}
	}

	left, right := ids[0], ids[cols-1]
	leftPos := geom.V(origin.X, origin.Y)
	rightPos := geom.V(origin.X+float64(cols-1)*spacing, origin.Y)

	s := &Scene{Name: "web", World: w}
	s.Drive = func(tick int) {
		pin(w, left, leftPos)
		pin(w, right, rightPos)
	}
	return s, nil
}

// pin parks a particle at pos with no velocity in either mode.
func pin(w *sim.World, id sim.ParticleID, pos geom.Vec2) {
	p, err := w.Particle(id)
	if err != nil {
		return
	}
	p.Pos = pos
	p.Prev = pos
	p.Vel = geom.Vec2{}
	w.SetParticle(id, p)
}
