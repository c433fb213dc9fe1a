package sim

import "github.com/ropelab/ropesim/internal/geom"

// Bounds is an axis-aligned rectangular domain. Particles crossing a wall
// are clamped onto it and their wall-normal velocity is scaled by the
// world's restitution.
type Bounds struct {
	Min geom.Vec2 `yaml:"min" json:"min"`
	Max geom.Vec2 `yaml:"max" json:"max"`
}

// Inset shrinks the bounds by r on every side. Callers that want walls to
// act on a particle's rim rather than its center pass the particle radius
// here before stepping.
func (b Bounds) Inset(r float64) Bounds {
	return Bounds{
		Min: geom.V(b.Min.X+r, b.Min.Y+r),
		Max: geom.V(b.Max.X-r, b.Max.Y-r),
	}
}

// Size returns the extent of the bounds.
func (b Bounds) Size() geom.Vec2 { return b.Max.Sub(b.Min) }

// resolveBounds clamps every particle into b, axis by axis. A corner
// contact reflects both components in the same tick.
func (w *World) resolveBounds(b Bounds) {
	for i := range w.particles {
		p := &w.particles[i]
		switch w.opts.Mode {
		case ModeEuler:
			p.Pos.X, p.Vel.X = reflectAxis(p.Pos.X, p.Vel.X, b.Min.X, b.Max.X, w.opts.Restitution)
			p.Pos.Y, p.Vel.Y = reflectAxis(p.Pos.Y, p.Vel.Y, b.Min.Y, b.Max.Y, w.opts.Restitution)
		case ModeVerlet:
			// The implicit velocity is Pos-Prev; rewriting Prev after the
			// clamp scales it by the same restitution as the euler path.
			p.Pos.X, p.Prev.X = reflectHistoryAxis(p.Pos.X, p.Prev.X, b.Min.X, b.Max.X, w.opts.Restitution)
			p.Pos.Y, p.Prev.Y = reflectHistoryAxis(p.Pos.Y, p.Prev.Y, b.Min.Y, b.Max.Y, w.opts.Restitution)
		}
	}
}

func reflectAxis(pos, vel, lo, hi, restitution float64) (float64, float64) {
	if pos < lo {
		return lo, vel * restitution
	}
	if pos > hi {
		return hi, vel * restitution
	}
	return pos, vel
}

func reflectHistoryAxis(pos, prev, lo, hi, restitution float64) (float64, float64) {
	if pos < lo {
		return lo, lo - restitution*(pos-prev)
	}
	if pos > hi {
		return hi, hi - restitution*(pos-prev)
	}
	return pos, prev
}
