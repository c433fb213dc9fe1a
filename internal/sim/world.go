package sim

import (
	"fmt"

	"github.com/ropelab/ropesim/internal/geom"
)

// ParticleID identifies a particle within a [World]. IDs are dense indexes
// assigned in creation order and stay valid for the life of the world.
type ParticleID int

// ConstraintID identifies a constraint within a [World].
type ConstraintID int

// Mode selects the integration scheme of a [World].
type Mode int

const (
	// ModeVerlet advances positions from the stored previous position.
	ModeVerlet Mode = iota
	// ModeEuler advances an explicit velocity, then the position.
	ModeEuler
)

func (m Mode) String() string {
	switch m {
	case ModeVerlet:
		return "verlet"
	case ModeEuler:
		return "euler"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode converts a mode name ("verlet" or "euler") to a [Mode].
func ParseMode(s string) (Mode, error) {
	switch s {
	case "verlet":
		return ModeVerlet, nil
	case "euler":
		return ModeEuler, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadMode, s)
}

// Particle is a point mass. Pos is always live. In [ModeVerlet] the Prev
// field holds the position of the previous tick and velocity is implicit;
// in [ModeEuler] the Vel field is live and Prev is ignored.
type Particle struct {
	Pos     geom.Vec2
	Prev    geom.Vec2
	Vel     geom.Vec2
	Radius  float64
	Mass    float64
	Damping float64

	invMass float64
	accum   geom.Vec2
}

// Constraint keeps two particles near a rest distance. Constraints are
// immutable after creation and are relaxed in creation order.
type Constraint struct {
	A        ParticleID
	B        ParticleID
	Rest     float64
	Strength float64
}

// Options configures a [World]. Use [DefaultOptions] as the base; the zero
// value disables the solver (zero gains) and is almost never what you want.
type Options struct {
	// Mode selects the integration scheme. Fixed for the world's lifetime.
	Mode Mode
	// Gravity is a constant acceleration applied in [ModeEuler] only.
	Gravity geom.Vec2
	// Restitution multiplies a particle's wall-normal velocity on boundary
	// contact. -1 reflects exactly, values in (-1, 0) lose energy.
	Restitution float64
	// PositionGain scales solver corrections applied to positions.
	PositionGain float64
	// VelocityGain scales solver corrections applied to velocities.
	VelocityGain float64
	// CorrectPositions forces position-target corrections in [ModeEuler].
	CorrectPositions bool
}

// DefaultOptions returns the reference parameter set: verlet integration,
// no gravity, exact reflection, unit position gain and doubled velocity
// gain.
func DefaultOptions() Options {
	return Options{
		Mode:         ModeVerlet,
		Restitution:  -1.0,
		PositionGain: 1.0,
		VelocityGain: 2.0,
	}
}

// World owns all simulation state. It is not safe for concurrent use; run
// [World.Step] and all accessors from a single goroutine.
type World struct {
	opts Options

	particles   []Particle
	constraints []Constraint
	tick        int

	// scratch reused across Step calls
	skip     []bool
	reported []bool
}

// New creates an empty world with the given options.
func New(opts Options) *World {
	return &World{opts: opts}
}

// Opts returns the options the world was built with.
func (w *World) Opts() Options { return w.opts }

// Mode returns the world's integration mode.
func (w *World) Mode() Mode { return w.opts.Mode }

// Tick returns the number of completed steps.
func (w *World) Tick() int { return w.tick }

// NumParticles returns the particle count.
func (w *World) NumParticles() int { return len(w.particles) }

// NumConstraints returns the constraint count.
func (w *World) NumConstraints() int { return len(w.constraints) }

// AddParticle creates a particle at pos and returns its id. A particle
// starts at rest: zero velocity in euler mode, history equal to pos in
// verlet mode. Mass must be positive, radius non-negative and damping in
// (0, 1].
func (w *World) AddParticle(pos geom.Vec2, mass, radius, damping float64) (ParticleID, error) {
	if mass <= 0 {
		return 0, fmt.Errorf("%w: got %v", ErrBadMass, mass)
	}
	if radius < 0 {
		return 0, fmt.Errorf("%w: got %v", ErrBadRadius, radius)
	}
	if damping <= 0 || damping > 1 {
		return 0, fmt.Errorf("%w: got %v", ErrBadDamping, damping)
	}
	w.particles = append(w.particles, Particle{
		Pos:     pos,
		Prev:    pos,
		Radius:  radius,
		Mass:    mass,
		Damping: damping,
		invMass: 1 / mass,
	})
	return ParticleID(len(w.particles) - 1), nil
}

// AddConstraint creates a distance constraint between a and b. The
// endpoints must differ; their existence is not checked here, a dangling
// id surfaces as a data fault when the solver first visits the constraint.
func (w *World) AddConstraint(a, b ParticleID, rest, strength float64) (ConstraintID, error) {
	if a == b {
		return 0, fmt.Errorf("%w: id %d", ErrSelfConstraint, a)
	}
	if rest < 0 {
		return 0, fmt.Errorf("%w: got %v", ErrBadRest, rest)
	}
	if strength <= 0 || strength > 1 {
		return 0, fmt.Errorf("%w: got %v", ErrBadStrength, strength)
	}
	w.constraints = append(w.constraints, Constraint{A: a, B: b, Rest: rest, Strength: strength})
	return ConstraintID(len(w.constraints) - 1), nil
}

// Particle returns a copy of the particle with the given id.
func (w *World) Particle(id ParticleID) (Particle, error) {
	if !w.validParticle(id) {
		return Particle{}, fmt.Errorf("%w: %d", ErrNoParticle, id)
	}
	return w.particles[id], nil
}

// SetParticle replaces the particle with the given id. The same field
// rules as [World.AddParticle] apply; the inverse mass cache is refreshed
// from the new mass.
func (w *World) SetParticle(id ParticleID, p Particle) error {
	if !w.validParticle(id) {
		return fmt.Errorf("%w: %d", ErrNoParticle, id)
	}
	if p.Mass <= 0 {
		return fmt.Errorf("%w: got %v", ErrBadMass, p.Mass)
	}
	if p.Radius < 0 {
		return fmt.Errorf("%w: got %v", ErrBadRadius, p.Radius)
	}
	if p.Damping <= 0 || p.Damping > 1 {
		return fmt.Errorf("%w: got %v", ErrBadDamping, p.Damping)
	}
	p.invMass = 1 / p.Mass
	w.particles[id] = p
	return nil
}

// Position returns the current position of a particle.
func (w *World) Position(id ParticleID) (geom.Vec2, error) {
	if !w.validParticle(id) {
		return geom.Vec2{}, fmt.Errorf("%w: %d", ErrNoParticle, id)
	}
	return w.particles[id].Pos, nil
}

// SetPosition overwrites a particle's position. The verlet history is left
// untouched, so in [ModeVerlet] the move changes the implicit velocity;
// use [World.SetParticle] to relocate history and position together.
func (w *World) SetPosition(id ParticleID, pos geom.Vec2) error {
	if !w.validParticle(id) {
		return fmt.Errorf("%w: %d", ErrNoParticle, id)
	}
	w.particles[id].Pos = pos
	return nil
}

// Velocity returns a particle's explicit velocity field. Only meaningful
// in [ModeEuler]; verlet worlds keep velocity implicitly in the history.
func (w *World) Velocity(id ParticleID) (geom.Vec2, error) {
	if !w.validParticle(id) {
		return geom.Vec2{}, fmt.Errorf("%w: %d", ErrNoParticle, id)
	}
	return w.particles[id].Vel, nil
}

// SetVelocity overwrites a particle's explicit velocity field.
func (w *World) SetVelocity(id ParticleID, vel geom.Vec2) error {
	if !w.validParticle(id) {
		return fmt.Errorf("%w: %d", ErrNoParticle, id)
	}
	w.particles[id].Vel = vel
	return nil
}

// ApplyForce adds to a particle's force accumulator for the next step.
// Forces act in [ModeEuler] only; verlet worlds discard the accumulator.
func (w *World) ApplyForce(id ParticleID, f geom.Vec2) error {
	if !w.validParticle(id) {
		return fmt.Errorf("%w: %d", ErrNoParticle, id)
	}
	w.particles[id].accum = w.particles[id].accum.Add(f)
	return nil
}

// Constraint returns a copy of the constraint with the given id.
func (w *World) Constraint(id ConstraintID) (Constraint, error) {
	if id < 0 || int(id) >= len(w.constraints) {
		return Constraint{}, fmt.Errorf("%w: %d", ErrNoConstraint, id)
	}
	return w.constraints[id], nil
}

// EachParticle calls fn for every particle in creation order, stopping
// early when fn returns false. fn receives a copy; mutate through
// [World.SetParticle].
func (w *World) EachParticle(fn func(ParticleID, Particle) bool) {
	for i := range w.particles {
		if !fn(ParticleID(i), w.particles[i]) {
			return
		}
	}
}

// EachConstraint calls fn for every constraint in creation order,
// stopping early when fn returns false. This is the same order the
// solver relaxes in.
func (w *World) EachConstraint(fn func(ConstraintID, Constraint) bool) {
	for i := range w.constraints {
		if !fn(ConstraintID(i), w.constraints[i]) {
			return
		}
	}
}

// Step advances the world by one tick: integration, then iterations
// relaxation passes over the constraints, then boundary resolution against
// bounds when non-nil. It fails fast on dt <= 0 or negative iterations
// without touching any state. Recoverable per-constraint conditions are
// reported in the returned [Diagnostics], never as an error.
func (w *World) Step(dt float64, iterations int, bounds *Bounds) (Diagnostics, error) {
	if dt <= 0 {
		return Diagnostics{}, fmt.Errorf("%w: dt %v", ErrBadStep, dt)
	}
	if iterations < 0 {
		return Diagnostics{}, fmt.Errorf("%w: iterations %d", ErrBadStep, iterations)
	}

	w.tick++
	diag := Diagnostics{Tick: w.tick}

	w.integrate(dt)
	w.solve(iterations, &diag)
	if bounds != nil {
		w.resolveBounds(*bounds)
	}
	return diag, nil
}

func (w *World) validParticle(id ParticleID) bool {
	return id >= 0 && int(id) < len(w.particles)
}

// pair returns simultaneous references to two distinct particles. The
// caller is responsible for id range checks; identical ids would alias, so
// that is asserted here.
func (w *World) pair(a, b ParticleID) (*Particle, *Particle) {
	if a == b {
		panic("sim: pair called with identical ids")
	}
	return &w.particles[a], &w.particles[b]
}
