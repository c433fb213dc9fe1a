// Package export captures batch runs and streams them as CSV, JSON or
// SVG. Everything writes to an io.Writer; there is no run database, a
// capture lives exactly as long as the caller keeps it.
package export

import (
	"github.com/ropelab/ropesim/internal/geom"
	"github.com/ropelab/ropesim/internal/metrics"
	"github.com/ropelab/ropesim/internal/sim"
)

// Trajectory is the tick-by-tick record of one run.
type Trajectory struct {
	Scene      string             `json:"scene"`
	Mode       string             `json:"mode"`
	Dt         float64            `json:"dt"`
	Iterations int                `json:"iterations"`
	Ticks      []Tick             `json:"ticks"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// Tick holds the world as observed after one step.
type Tick struct {
	Tick      int         `json:"tick"`
	Faults    int         `json:"faults"`
	Kinetic   float64     `json:"kinetic"`
	Stretch   float64     `json:"stretch"`
	Positions []geom.Vec2 `json:"positions"`
}

func NewTrajectory(scene, mode string, dt float64, iterations int) *Trajectory {
	return &Trajectory{
		Scene:      scene,
		Mode:       mode,
		Dt:         dt,
		Iterations: iterations,
		Metrics:    make(map[string]float64),
	}
}

// Record appends the world's current state.
func (t *Trajectory) Record(w *sim.World, diag sim.Diagnostics) {
	positions := make([]geom.Vec2, 0, w.NumParticles())
	w.EachParticle(func(_ sim.ParticleID, p sim.Particle) bool {
		positions = append(positions, p.Pos)
		return true
	})
	t.Ticks = append(t.Ticks, Tick{
		Tick:      diag.Tick,
		Faults:    len(diag.Faults),
		Kinetic:   metrics.KineticEnergy(w, t.Dt),
		Stretch:   metrics.Stretch(w),
		Positions: positions,
	})
}

// Energies returns the kinetic energy series, one sample per tick.
func (t *Trajectory) Energies() []float64 {
	out := make([]float64, len(t.Ticks))
	for i, tk := range t.Ticks {
		out[i] = tk.Kinetic
	}
	return out
}

// FaultCount sums the faults over the whole run.
func (t *Trajectory) FaultCount() int {
	var n int
	for _, tk := range t.Ticks {
		n += tk.Faults
	}
	return n
}
