package metrics

import (
	"github.com/san-kum/bouncebox/internal/sim"
)

// Energy is the mean total kinetic energy per frame, unit mass per box.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(f sim.Frame) {
	e.totalEnergy += kinetic(f)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDecay is final kinetic energy as a fraction of the peak seen. It
// stays below 1 once damping has had a chance to act.
type EnergyDecay struct {
	name    string
	peak    float64
	current float64
}

func NewEnergyDecay() *EnergyDecay {
	return &EnergyDecay{name: "energy_decay"}
}

func (e *EnergyDecay) Name() string { return e.name }

func (e *EnergyDecay) Observe(f sim.Frame) {
	e.current = kinetic(f)
	if e.current > e.peak {
		e.peak = e.current
	}
}

func (e *EnergyDecay) Value() float64 {
	if e.peak == 0 {
		return 0
	}
	return e.current / e.peak
}

func (e *EnergyDecay) Reset() {
	e.peak = 0
	e.current = 0
}

func kinetic(f sim.Frame) float64 {
	ke := 0.0
	for _, b := range f.Boxes {
		ke += 0.5 * (b.VX*b.VX + b.VY*b.VY)
	}
	return ke
}
