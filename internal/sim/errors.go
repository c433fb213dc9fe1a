package sim

import "errors"

// Domain errors for world construction and stepping.
var (
	// ErrBadMass indicates a non-positive particle mass.
	ErrBadMass = errors.New("sim: mass must be positive")

	// ErrBadDamping indicates a damping factor outside (0, 1].
	ErrBadDamping = errors.New("sim: damping outside (0, 1]")

	// ErrBadRadius indicates a negative particle radius.
	ErrBadRadius = errors.New("sim: radius must be non-negative")

	// ErrSelfConstraint indicates a constraint whose endpoints are the same particle.
	ErrSelfConstraint = errors.New("sim: constraint endpoints must differ")

	// ErrBadRest indicates a negative rest length.
	ErrBadRest = errors.New("sim: rest length must be non-negative")

	// ErrBadStrength indicates a constraint strength outside (0, 1].
	ErrBadStrength = errors.New("sim: strength outside (0, 1]")

	// ErrBadStep indicates invalid step arguments (dt or iterations).
	ErrBadStep = errors.New("sim: invalid step parameters")

	// ErrBadMode indicates an unknown integration mode name.
	ErrBadMode = errors.New("sim: unknown integration mode")

	// ErrNoParticle indicates a particle id outside the store.
	ErrNoParticle = errors.New("sim: particle id out of range")

	// ErrNoConstraint indicates a constraint id outside the store.
	ErrNoConstraint = errors.New("sim: constraint id out of range")
)
