package metrics

import (
	"math"
	"testing"

	"github.com/ropelab/ropesim/internal/geom"
	"github.com/ropelab/ropesim/internal/sim"
)

func TestKineticEnergyEuler(t *testing.T) {
	w := sim.New(sim.Options{Mode: sim.ModeEuler, Restitution: -1, PositionGain: 1, VelocityGain: 2})
	a, _ := w.AddParticle(geom.V(0, 0), 2, 0, 1)
	b, _ := w.AddParticle(geom.V(10, 0), 1, 0, 1)
	w.SetVelocity(a, geom.V(3, 0))
	w.SetVelocity(b, geom.V(0, 4))

	// 0.5*2*9 + 0.5*1*16 = 17
	if got := KineticEnergy(w, 1.0/60); got != 17 {
		t.Errorf("KineticEnergy = %v, want 17", got)
	}
}

func TestKineticEnergyVerletUsesHistory(t *testing.T) {
	w := sim.New(sim.DefaultOptions())
	id, _ := w.AddParticle(geom.V(0, 0), 2, 0, 1)

	// One unit of travel per tick at dt=0.5 is speed 2.
	p, _ := w.Particle(id)
	p.Prev = geom.V(-1, 0)
	w.SetParticle(id, p)

	// 0.5 * 2 * 2^2 = 4
	if got := KineticEnergy(w, 0.5); math.Abs(got-4) > 1e-12 {
		t.Errorf("KineticEnergy = %v, want 4", got)
	}
}

func TestMomentumCancellation(t *testing.T) {
	w := sim.New(sim.Options{Mode: sim.ModeEuler, Restitution: -1, PositionGain: 1, VelocityGain: 2})
	a, _ := w.AddParticle(geom.V(0, 0), 1, 0, 1)
	b, _ := w.AddParticle(geom.V(10, 0), 1, 0, 1)
	w.SetVelocity(a, geom.V(5, 0))
	w.SetVelocity(b, geom.V(-5, 0))

	if got := MomentumMagnitude(w, 1.0/60); got != 0 {
		t.Errorf("opposing equal momenta sum to %v, want 0", got)
	}

	w.SetVelocity(b, geom.V(-3, 0))
	if got := MomentumMagnitude(w, 1.0/60); got != 2 {
		t.Errorf("MomentumMagnitude = %v, want 2", got)
	}
}

func TestStretch(t *testing.T) {
	w := sim.New(sim.DefaultOptions())
	a, _ := w.AddParticle(geom.V(0, 0), 1, 0, 1)
	b, _ := w.AddParticle(geom.V(12, 0), 1, 0, 1)
	c, _ := w.AddParticle(geom.V(12, 5), 1, 0, 1)
	w.AddConstraint(a, b, 10, 1)
	w.AddConstraint(b, c, 5, 1)

	// First constraint is 20% long, second is exact.
	if got := Stretch(w); math.Abs(got-0.2) > 1e-12 {
		t.Errorf("Stretch = %v, want 0.2", got)
	}
}

func TestStretchSkipsDanglingAndZeroRest(t *testing.T) {
	w := sim.New(sim.DefaultOptions())
	a, _ := w.AddParticle(geom.V(0, 0), 1, 0, 1)
	b, _ := w.AddParticle(geom.V(3, 0), 1, 0, 1)
	w.AddConstraint(a, sim.ParticleID(9), 10, 1)
	w.AddConstraint(a, b, 0, 1)

	if got := Stretch(w); got != 0 {
		t.Errorf("Stretch = %v, want 0 for unmeasurable constraints", got)
	}
}

func TestKineticMetricAverages(t *testing.T) {
	w := sim.New(sim.Options{Mode: sim.ModeEuler, Restitution: -1, PositionGain: 1, VelocityGain: 2})
	id, _ := w.AddParticle(geom.V(0, 0), 2, 0, 1)

	k := NewKinetic()
	if k.Name() != "kinetic" {
		t.Errorf("Name = %q", k.Name())
	}

	w.SetVelocity(id, geom.V(1, 0))
	k.Observe(w, 1.0/60) // 1
	w.SetVelocity(id, geom.V(3, 0))
	k.Observe(w, 1.0/60) // 9

	if got := k.Value(); got != 5 {
		t.Errorf("Value = %v, want 5", got)
	}

	k.Reset()
	if k.Value() != 0 {
		t.Errorf("Reset did not clear: %v", k.Value())
	}
}

func TestMaxStretchKeepsPeak(t *testing.T) {
	w := sim.New(sim.DefaultOptions())
	a, _ := w.AddParticle(geom.V(0, 0), 1, 0, 1)
	b, _ := w.AddParticle(geom.V(15, 0), 1, 0, 1)
	w.AddConstraint(a, b, 10, 1)

	m := NewMaxStretch()
	m.Observe(w, 1.0/60) // 50% long

	w.SetPosition(b, geom.V(11, 0))
	m.Observe(w, 1.0/60) // back to 10% long

	if got := m.Value(); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Value = %v, want the 0.5 peak", got)
	}
}
