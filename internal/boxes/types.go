package boxes

import (
	"errors"
	"fmt"

	"github.com/san-kum/bouncebox/internal/render"
)

const (
	DefaultCapacity       = 100
	DefaultBoxSize        = 60.0
	DefaultGravity        = 500.0
	DefaultBounceDamping  = 0.8
	DefaultFloorFriction  = 0.99
	DefaultFloorSpinDecay = 0.95
	DefaultInitialBoxes   = 5
)

// Hint row drawn under the top edge every frame.
const (
	hintCount   = 10
	hintY       = 30.0
	hintOffset  = 80.0
	hintSpacing = 18.0
	hintW       = 12.0
	hintH       = 4.0
)

var (
	ClearColor = render.Color{R: 0.1, G: 0.1, B: 0.15, A: 1}
	hintColor  = render.Color{R: 0.5, G: 0.5, B: 0.5, A: 0.3}
)

var (
	// ErrNotReady is returned by operations that need Init first.
	ErrNotReady = errors.New("boxes: simulation not initialized")

	// ErrInvalidParams indicates a Params value outside its valid range.
	ErrInvalidParams = errors.New("boxes: invalid parameters")
)

// Box is one simulated rectangle. It has no identity beyond its slot.
type Box struct {
	X, Y          float64 // top-left corner, px
	VX, VY        float64 // px/s
	R, G, B       float64
	Rotation      float64 // rad
	RotationSpeed float64 // rad/s
}

// Params are the tunable physics constants. The zero value is not usable;
// start from DefaultParams.
type Params struct {
	Capacity       int
	BoxSize        float64
	Gravity        float64
	BounceDamping  float64
	FloorFriction  float64
	FloorSpinDecay float64
	InitialBoxes   int
}

func DefaultParams() Params {
	return Params{
		Capacity:       DefaultCapacity,
		BoxSize:        DefaultBoxSize,
		Gravity:        DefaultGravity,
		BounceDamping:  DefaultBounceDamping,
		FloorFriction:  DefaultFloorFriction,
		FloorSpinDecay: DefaultFloorSpinDecay,
		InitialBoxes:   DefaultInitialBoxes,
	}
}

func (p Params) Validate() error {
	switch {
	case p.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidParams, p.Capacity)
	case p.BoxSize <= 0:
		return fmt.Errorf("%w: box size must be positive, got %f", ErrInvalidParams, p.BoxSize)
	case p.BounceDamping <= 0 || p.BounceDamping > 1:
		return fmt.Errorf("%w: bounce damping must be in (0,1], got %f", ErrInvalidParams, p.BounceDamping)
	case p.FloorFriction < 0 || p.FloorFriction > 1:
		return fmt.Errorf("%w: floor friction must be in [0,1], got %f", ErrInvalidParams, p.FloorFriction)
	case p.FloorSpinDecay < 0 || p.FloorSpinDecay > 1:
		return fmt.Errorf("%w: floor spin decay must be in [0,1], got %f", ErrInvalidParams, p.FloorSpinDecay)
	case p.InitialBoxes < 0 || p.InitialBoxes > p.Capacity:
		return fmt.Errorf("%w: initial boxes must be in [0,%d], got %d", ErrInvalidParams, p.Capacity, p.InitialBoxes)
	}
	return nil
}

// Stats are cumulative counters since the last Init.
type Stats struct {
	Frames         int
	WallBounces    int
	FloorBounces   int
	CeilingBounces int
	Dropped        int // spawns refused at capacity
}

func (s Stats) Bounces() int { return s.WallBounces + s.FloorBounces + s.CeilingBounces }
