package metrics

import (
	"math"

	"github.com/san-kum/bouncebox/internal/sim"
)

// Containment is the fraction of frames in which every box stayed inside
// the screen, within tolerance px.
type Containment struct {
	name       string
	tolerance  float64
	violations int
	samples    int
	worst      float64
}

func NewContainment(tolerance float64) *Containment {
	return &Containment{
		name:      "containment",
		tolerance: tolerance,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(f sim.Frame) {
	c.samples++
	w, h := float64(f.Width), float64(f.Height)
	escaped := false
	for _, b := range f.Boxes {
		over := math.Max(
			math.Max(-b.X, b.X+f.BoxSize-w),
			math.Max(-b.Y, b.Y+f.BoxSize-h),
		)
		if over > c.worst {
			c.worst = over
		}
		if over > c.tolerance {
			escaped = true
		}
	}
	if escaped {
		c.violations++
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

// Worst is the largest escape seen, in px; 0 when nothing left the screen.
func (c *Containment) Worst() float64 { return c.worst }

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
	c.worst = 0
}
