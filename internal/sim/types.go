package sim

import (
	"fmt"

	"github.com/san-kum/bouncebox/internal/boxes"
	"github.com/san-kum/bouncebox/internal/render"
)

// Frame is what metrics and observers see after each step.
type Frame struct {
	Index         int
	Time          float64 // seconds since Init
	Boxes         []boxes.Box
	BoxSize       float64
	Width, Height uint32
	Status        render.Status
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

// Sample is one row of per-frame telemetry.
type Sample struct {
	Time       float64
	Count      int
	Energy     float64
	MeanHeight float64 // mean distance from box bottom to floor, px
	Bounces    int
	Draws      int
}

type Result struct {
	Seed       uint64
	Samples    []Sample
	Metrics    map[string]float64
	Final      []boxes.Box
	LastFrame  []render.Rect
	Stats      boxes.Stats
	FramesRun  int
	Width      uint32
	Height     uint32
	ClearColor render.Color
}

// SimError reports a frame the renderer failed to present.
type SimError struct {
	Frame  int
	Status render.Status
}

func (e SimError) Error() string {
	return fmt.Sprintf("sim: frame %d not presented (status %d)", e.Frame, e.Status)
}
