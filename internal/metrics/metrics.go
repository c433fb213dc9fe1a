// Package metrics reduces world state to scalar observations: kinetic
// energy, momentum, constraint stretch. Metric types accumulate across a
// run; the free functions compute one instant for live displays.
package metrics

import (
	"math"

	"github.com/ropelab/ropesim/internal/geom"
	"github.com/ropelab/ropesim/internal/sim"
)

// Metric observes the world after each tick and reduces to one number.
type Metric interface {
	Name() string
	Observe(w *sim.World, dt float64)
	Value() float64
	Reset()
}

// KineticEnergy returns the instantaneous kinetic energy. Verlet worlds
// have no stored velocity, so it is recovered from the position history
// and dt.
func KineticEnergy(w *sim.World, dt float64) float64 {
	var total float64
	w.EachParticle(func(_ sim.ParticleID, p sim.Particle) bool {
		v := velocityOf(w, p, dt)
		total += 0.5 * p.Mass * v.LenSq()
		return true
	})
	return total
}

// MomentumMagnitude returns the length of the summed linear momentum.
func MomentumMagnitude(w *sim.World, dt float64) float64 {
	var total geom.Vec2
	w.EachParticle(func(_ sim.ParticleID, p sim.Particle) bool {
		total = total.Add(velocityOf(w, p, dt).Scale(p.Mass))
		return true
	})
	return total.Len()
}

// Stretch returns the worst relative rest-length deviation across the
// live constraints. Constraints with dangling ids or a zero rest length
// are skipped.
func Stretch(w *sim.World) float64 {
	var worst float64
	w.EachConstraint(func(_ sim.ConstraintID, c sim.Constraint) bool {
		if c.Rest == 0 {
			return true
		}
		pa, errA := w.Position(c.A)
		pb, errB := w.Position(c.B)
		if errA != nil || errB != nil {
			return true
		}
		if dev := math.Abs(pa.Dist(pb)-c.Rest) / c.Rest; dev > worst {
			worst = dev
		}
		return true
	})
	return worst
}

func velocityOf(w *sim.World, p sim.Particle, dt float64) geom.Vec2 {
	if w.Mode() == sim.ModeEuler {
		return p.Vel
	}
	return p.Pos.Sub(p.Prev).Scale(1 / dt)
}
