package metrics

import (
	"math"

	"github.com/san-kum/bouncebox/internal/sim"
)

// Spin is the mean absolute rotation speed over all boxes and frames.
type Spin struct {
	name    string
	sum     float64
	samples int
}

func NewSpin() *Spin {
	return &Spin{name: "spin"}
}

func (s *Spin) Name() string { return s.name }

func (s *Spin) Observe(f sim.Frame) {
	for _, b := range f.Boxes {
		s.sum += math.Abs(b.RotationSpeed)
		s.samples++
	}
}

func (s *Spin) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.sum / float64(s.samples)
}

func (s *Spin) Reset() {
	s.sum = 0
	s.samples = 0
}
