package metrics

import "github.com/ropelab/ropesim/internal/sim"

// MaxStretch tracks the worst relative constraint deviation seen over
// the whole run.
type MaxStretch struct {
	name string
	max  float64
}

func NewMaxStretch() *MaxStretch {
	return &MaxStretch{name: "max_stretch"}
}

func (m *MaxStretch) Name() string { return m.name }

func (m *MaxStretch) Observe(w *sim.World, dt float64) {
	if s := Stretch(w); s > m.max {
		m.max = s
	}
}

func (m *MaxStretch) Value() float64 { return m.max }

func (m *MaxStretch) Reset() { m.max = 0 }
