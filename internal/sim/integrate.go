package sim

import "github.com/ropelab/ropesim/internal/geom"

// integrate advances every particle by dt according to the world's mode.
func (w *World) integrate(dt float64) {
	switch w.opts.Mode {
	case ModeEuler:
		w.integrateEuler(dt)
	case ModeVerlet:
		w.integrateVerlet()
	}
}

// integrateEuler is semi-implicit: the velocity update lands before the
// position update, then damping scales the velocity once per tick.
func (w *World) integrateEuler(dt float64) {
	for i := range w.particles {
		p := &w.particles[i]
		acc := w.opts.Gravity.Add(p.accum.Scale(p.invMass))
		p.Vel = p.Vel.Add(acc.Scale(dt)).Scale(p.Damping)
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		p.accum = geom.Vec2{}
	}
}

// integrateVerlet carries velocity implicitly in the position history.
// There is no acceleration term in this mode; motion enters through the
// history difference and through direct position writes. The timestep is
// folded into the history, so dt does not appear.
func (w *World) integrateVerlet() {
	for i := range w.particles {
		p := &w.particles[i]
		next := p.Pos.Add(p.Pos.Sub(p.Prev).Scale(p.Damping))
		p.Prev = p.Pos
		p.Pos = next
		p.accum = geom.Vec2{}
	}
}
