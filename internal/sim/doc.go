// Package sim provides the deterministic particle simulation core.
//
// The package advances a set of point masses and pairwise distance
// constraints through discrete, fixed-size time steps:
//
//   - [World]: owns particle and constraint storage and runs the tick pipeline
//   - [Particle]: point mass with position, velocity or position history
//   - [Constraint]: distance relation between two particles
//   - [Bounds]: optional axis-aligned domain with reflective walls
//   - [Diagnostics]: per-tick report of skipped constraints
//
// Each [World.Step] runs three passes in a fixed order: integration,
// iterative constraint relaxation, boundary resolution. Two integration
// modes are supported. [ModeVerlet] worlds store the previous position and
// derive velocity implicitly; [ModeEuler] worlds carry an explicit velocity
// updated semi-implicitly. The mode is fixed at construction.
//
// # Example
//
//	w := sim.New(sim.DefaultOptions())
//	a, _ := w.AddParticle(geom.V(0, 0), 1, 0, 1)
//	b, _ := w.AddParticle(geom.V(10, 0), 1, 0, 1)
//	w.AddConstraint(a, b, 10, 1)
//	diag, err := w.Step(1.0/60, 8, nil)
//
// # Determinism
//
// Stepping is single-threaded and reads no clocks. Two worlds built with
// the same options, the same creation sequence, and stepped with the same
// arguments produce bitwise-identical trajectories.
package sim
