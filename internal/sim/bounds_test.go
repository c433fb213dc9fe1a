package sim

import (
	"testing"

	"github.com/ropelab/ropesim/internal/geom"
)

func TestBoundsExactReflection(t *testing.T) {
	w := eulerWorld(geom.Vec2{})
	id, _ := w.AddParticle(geom.V(5, 0), 1, 0, 1)
	w.SetVelocity(id, geom.V(10, 0))

	bounds := &Bounds{Min: geom.V(-12, -12), Max: geom.V(12, 12)}
	if _, err := w.Step(1, 0, bounds); err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	// dt 1 carries the particle to x=15; the wall at 12 clamps it and
	// restitution -1 reverses the component exactly.
	pos, _ := w.Position(id)
	vel, _ := w.Velocity(id)
	if pos != geom.V(12, 0) {
		t.Errorf("position = %v, want (12, 0)", pos)
	}
	if vel != geom.V(-10, 0) {
		t.Errorf("velocity = %v, want (-10, 0)", vel)
	}
}

func TestBoundsMinWall(t *testing.T) {
	w := eulerWorld(geom.Vec2{})
	id, _ := w.AddParticle(geom.V(-5, 0), 1, 0, 1)
	w.SetVelocity(id, geom.V(-10, 0))

	bounds := &Bounds{Min: geom.V(-12, -12), Max: geom.V(12, 12)}
	w.Step(1, 0, bounds)

	pos, _ := w.Position(id)
	vel, _ := w.Velocity(id)
	if pos != geom.V(-12, 0) {
		t.Errorf("position = %v, want (-12, 0)", pos)
	}
	if vel != geom.V(10, 0) {
		t.Errorf("velocity = %v, want (10, 0)", vel)
	}
}

func TestBoundsLossyRestitution(t *testing.T) {
	w := New(Options{Mode: ModeEuler, Restitution: -0.5, PositionGain: 1, VelocityGain: 2})
	id, _ := w.AddParticle(geom.V(5, 0), 1, 0, 1)
	w.SetVelocity(id, geom.V(10, 0))

	w.Step(1, 0, &Bounds{Min: geom.V(-12, -12), Max: geom.V(12, 12)})

	vel, _ := w.Velocity(id)
	if vel != geom.V(-5, 0) {
		t.Errorf("velocity = %v, want (-5, 0)", vel)
	}
}

func TestBoundsCornerContact(t *testing.T) {
	w := eulerWorld(geom.Vec2{})
	id, _ := w.AddParticle(geom.V(10, 10), 1, 0, 1)
	w.SetVelocity(id, geom.V(6, 8))

	w.Step(1, 0, &Bounds{Min: geom.V(-12, -12), Max: geom.V(12, 12)})

	pos, _ := w.Position(id)
	vel, _ := w.Velocity(id)
	if pos != geom.V(12, 12) {
		t.Errorf("position = %v, want the corner (12, 12)", pos)
	}
	if vel != geom.V(-6, -8) {
		t.Errorf("velocity = %v, want both components reversed", vel)
	}
}

func TestBoundsVerletReflection(t *testing.T) {
	w := New(DefaultOptions())
	id, _ := w.AddParticle(geom.V(0, 0), 1, 0, 1)
	w.SetPosition(id, geom.V(5, 0))

	bounds := &Bounds{Min: geom.V(-8, -8), Max: geom.V(8, 8)}

	// Implicit velocity 5 per tick: 5 -> 10, clamped to 8.
	w.Step(1.0/60, 0, bounds)
	if pos, _ := w.Position(id); pos != geom.V(8, 0) {
		t.Fatalf("position = %v, want (8, 0)", pos)
	}

	// History was rewritten, so the particle now travels backwards at
	// the same speed.
	w.Step(1.0/60, 0, nil)
	if pos, _ := w.Position(id); pos != geom.V(3, 0) {
		t.Errorf("position after reflection = %v, want (3, 0)", pos)
	}
}

func TestBoundsInteriorUntouched(t *testing.T) {
	w := eulerWorld(geom.Vec2{})
	id, _ := w.AddParticle(geom.V(1, 2), 1, 0, 1)
	w.SetVelocity(id, geom.V(3, -4))

	w.Step(0.5, 0, &Bounds{Min: geom.V(-100, -100), Max: geom.V(100, 100)})

	pos, _ := w.Position(id)
	vel, _ := w.Velocity(id)
	if pos != geom.V(2.5, 0) {
		t.Errorf("position = %v, want (2.5, 0)", pos)
	}
	if vel != geom.V(3, -4) {
		t.Errorf("interior particle velocity changed: %v", vel)
	}
}

func TestBoundsInset(t *testing.T) {
	b := Bounds{Min: geom.V(0, 0), Max: geom.V(100, 80)}
	in := b.Inset(25)
	if in.Min != geom.V(25, 25) || in.Max != geom.V(75, 55) {
		t.Errorf("Inset = %+v", in)
	}
	if b.Size() != geom.V(100, 80) {
		t.Errorf("Size = %v", b.Size())
	}
}
