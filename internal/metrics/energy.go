package metrics

import "github.com/ropelab/ropesim/internal/sim"

// Kinetic averages the kinetic energy across every observed tick.
type Kinetic struct {
	name    string
	sum     float64
	samples int
}

func NewKinetic() *Kinetic {
	return &Kinetic{name: "kinetic"}
}

func (k *Kinetic) Name() string { return k.name }

func (k *Kinetic) Observe(w *sim.World, dt float64) {
	k.sum += KineticEnergy(w, dt)
	k.samples++
}

func (k *Kinetic) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.sum / float64(k.samples)
}

func (k *Kinetic) Reset() {
	k.sum = 0
	k.samples = 0
}

// Momentum averages the magnitude of the total linear momentum.
type Momentum struct {
	name    string
	sum     float64
	samples int
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(w *sim.World, dt float64) {
	m.sum += MomentumMagnitude(w, dt)
	m.samples++
}

func (m *Momentum) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Momentum) Reset() {
	m.sum = 0
	m.samples = 0
}
