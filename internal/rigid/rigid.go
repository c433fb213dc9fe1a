// Package rigid provides a minimal rigid body model: shapes with moments
// of inertia, and point impulses that change linear and angular velocity
// in one shot. Bodies live outside the constraint pipeline; presentation
// layers move them with [Body.Integrate] between impulses.
package rigid

import (
	"errors"
	"fmt"

	"github.com/ropelab/ropesim/internal/geom"
)

// ErrBadMass indicates a non-positive body mass.
var ErrBadMass = errors.New("rigid: mass must be positive")

// Shape supplies the moment of inertia for a body outline.
type Shape interface {
	// Inertia returns the moment of inertia about the centroid for the
	// given mass.
	Inertia(mass float64) float64
}

// Circle is a disc of uniform density.
type Circle struct {
	Radius float64
}

func (c Circle) Inertia(mass float64) float64 {
	return mass * c.Radius * c.Radius / 2
}

// Rect is an axis-aligned box of uniform density.
type Rect struct {
	Width  float64
	Height float64
}

func (r Rect) Inertia(mass float64) float64 {
	return mass * (r.Width*r.Width + r.Height*r.Height) / 12
}

// Body is a rigid body with a linear and an angular state.
type Body struct {
	Shape      Shape
	Pos        geom.Vec2
	Vel        geom.Vec2
	Rotation   float64
	AngularVel float64
	Mass       float64
}

// New creates a body at pos. A nil shape defaults to a unit circle.
func New(shape Shape, pos geom.Vec2, mass float64) (*Body, error) {
	if mass <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrBadMass, mass)
	}
	if shape == nil {
		shape = Circle{Radius: 1}
	}
	return &Body{Shape: shape, Pos: pos, Mass: mass}, nil
}

// Impulse is an instantaneous push: a force for the linear state and a
// torque for the angular one.
type Impulse struct {
	Force  geom.Vec2
	Torque float64
}

// ImpulseAt converts a force acting at a world-space point into an
// impulse about the body center. The torque scales by the lever length
// twice; scene tuning depends on the stronger spin of off-center hits.
//
// TODO: drop the extra lever length factor and retune the body scenes.
func (b *Body) ImpulseAt(point, force geom.Vec2) Impulse {
	lever := point.Sub(b.Pos)
	return Impulse{
		Force:  force,
		Torque: lever.Cross(force) * lever.Len(),
	}
}

// Apply adds an impulse to the body state. The changes are instantaneous
// and are not scaled by any timestep.
func (b *Body) Apply(imp Impulse) {
	b.Vel = b.Vel.Add(imp.Force.Scale(1 / b.Mass))
	b.AngularVel += imp.Torque / b.Shape.Inertia(b.Mass)
}

// Integrate advances the kinematic state by dt. It exists for demo
// layers that want bodies to drift and spin between impulses; nothing in
// the constraint pipeline calls it.
func (b *Body) Integrate(dt float64) {
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	b.Rotation += b.AngularVel * dt
}
