// Package scene builds worlds from configuration. A scene owns the
// entity spawning the core deliberately leaves out: particle layout,
// constraint wiring, rigid bodies, and the deterministic driving of
// anchor particles.
package scene

import (
	"fmt"
	"sort"

	"github.com/ropelab/ropesim/internal/config"
	"github.com/ropelab/ropesim/internal/rigid"
	"github.com/ropelab/ropesim/internal/sim"
)

// Scene is a built world plus everything around it: rigid bodies for the
// impulse demo and an optional per-tick drive hook.
type Scene struct {
	Name   string
	World  *sim.World
	Bodies []*rigid.Body

	// Drive animates externally controlled particles or pokes bodies.
	// It runs once per tick, before the world steps. Nil when the scene
	// moves on its own.
	Drive func(tick int)
}

// Advance runs one scene tick: drive, step, body kinematics. The tick
// index handed to Drive is the count of completed steps, so a fresh
// scene drives with 0 first.
func (s *Scene) Advance(dt float64, iterations int, bounds *sim.Bounds) (sim.Diagnostics, error) {
	if s.Drive != nil {
		s.Drive(s.World.Tick())
	}
	diag, err := s.World.Step(dt, iterations, bounds)
	if err != nil {
		return diag, err
	}
	for _, b := range s.Bodies {
		b.Integrate(dt)
	}
	return diag, nil
}

// Builder constructs a scene from a validated config.
type Builder func(cfg *config.Config) (*Scene, error)

// Registry maps scene names to builders.
type Registry struct {
	scenes map[string]Builder
}

func NewRegistry() *Registry {
	r := &Registry{scenes: make(map[string]Builder)}
	r.scenes["rope"] = buildRope
	r.scenes["web"] = buildWeb
	r.scenes["burst"] = buildBurst
	r.scenes["pendulum"] = buildPendulum
	r.scenes["body"] = buildBody
	return r
}

// Build constructs the named scene. The config must already validate.
func (r *Registry) Build(name string, cfg *config.Config) (*Scene, error) {
	fn, ok := r.scenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene: %s", name)
	}
	return fn(cfg)
}

// List returns the registered scene names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
