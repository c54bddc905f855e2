// Package metrics provides per-frame observers for headless runs. Every
// metric implements [sim.Metric] and is fed one [sim.Frame] per step.
package metrics

import "github.com/san-kum/bouncebox/internal/sim"

// Default returns a fresh set of the metrics recorded for every run.
func Default() []sim.Metric {
	return []sim.Metric{NewEnergy(), NewEnergyDecay(), NewContainment(1e-6), NewSpin()}
}
