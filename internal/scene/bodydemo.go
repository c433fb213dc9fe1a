package scene

import (
	"github.com/ropelab/ropesim/internal/config"
	"github.com/ropelab/ropesim/internal/geom"
	"github.com/ropelab/ropesim/internal/rigid"
	"github.com/ropelab/ropesim/internal/sim"
)

// buildBody runs the impulse model on its own: a circle and a box that
// get deterministic off-center pokes and drift between them. The world
// carries no particles; the scene exists to show torque from point
// forces.
func buildBody(cfg *config.Config) (*Scene, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	w := sim.New(opts)

	circle, err := rigid.New(rigid.Circle{Radius: cfg.Setup.Radius}, geom.V(-30, 0), cfg.Setup.Mass)
	if err != nil {
		return nil, err
	}
	box, err := rigid.New(rigid.Rect{Width: 24, Height: 14}, geom.V(35, 10), 2)
	if err != nil {
		return nil, err
	}

	bodies := []*rigid.Body{circle, box}
	s := &Scene{Name: "body", World: w, Bodies: bodies}
	s.Drive = func(tick int) {
		// Rim pokes on a fixed cadence, alternating spin direction.
		if tick%90 == 0 {
			dir := 1.0
			if (tick/90)%2 == 1 {
				dir = -1
			}
			rim := circle.Pos.Add(geom.V(cfg.Setup.Radius, 0))
			circle.Apply(circle.ImpulseAt(rim, geom.V(0, 0.5*dir)))
		}
		if tick%140 == 0 {
			corner := box.Pos.Add(geom.V(12, 7))
			box.Apply(box.ImpulseAt(corner, geom.V(-0.6, 0)))
		}
		// A soft pull keeps runaway bodies near the origin.
		for _, b := range bodies {
			if b.Pos.Len() > 55 {
				b.Apply(rigid.Impulse{Force: b.Pos.Norm().Scale(-1.5 * b.Mass)})
			}
		}
	}
	return s, nil
}
