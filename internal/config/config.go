package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bouncebox/internal/boxes"
)

const (
	DefaultWidth   = 800
	DefaultHeight  = 600
	DefaultFrameMs = 16.67
	DefaultFrames  = 600
	DefaultBackend = "headless"
)

var Backends = []string{"headless", "term", "raylib", "ebiten"}

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Width   uint32        `yaml:"width"`
	Height  uint32        `yaml:"height"`
	Seed    uint64        `yaml:"seed"`
	FrameMs float32       `yaml:"frame_ms"`
	Frames  int           `yaml:"frames"`
	Backend string        `yaml:"backend"`
	Physics PhysicsConfig `yaml:"physics"`
	Touches []TouchEvent  `yaml:"touches,omitempty"`
	Resizes []ResizeEvent `yaml:"resizes,omitempty"`
}

type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`
	BounceDamping  float64 `yaml:"bounce_damping"`
	FloorFriction  float64 `yaml:"floor_friction"`
	FloorSpinDecay float64 `yaml:"floor_spin_decay"`
	BoxSize        float64 `yaml:"box_size"`
	Capacity       int     `yaml:"capacity"`
	InitialBoxes   int     `yaml:"initial_boxes"`
}

// TouchEvent spawns a box centered on (X, Y) before frame Frame is stepped.
type TouchEvent struct {
	Frame int     `yaml:"frame"`
	X     float32 `yaml:"x"`
	Y     float32 `yaml:"y"`
}

// ResizeEvent changes the screen size before frame Frame is stepped.
type ResizeEvent struct {
	Frame  int    `yaml:"frame"`
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

func DefaultConfig() *Config {
	p := boxes.DefaultParams()
	return &Config{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		FrameMs: DefaultFrameMs,
		Frames:  DefaultFrames,
		Backend: DefaultBackend,
		Physics: PhysicsConfig{
			Gravity:        p.Gravity,
			BounceDamping:  p.BounceDamping,
			FloorFriction:  p.FloorFriction,
			FloorSpinDecay: p.FloorSpinDecay,
			BoxSize:        p.BoxSize,
			Capacity:       p.Capacity,
			InitialBoxes:   p.InitialBoxes,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() boxes.Params {
	return boxes.Params{
		Capacity:       c.Physics.Capacity,
		BoxSize:        c.Physics.BoxSize,
		Gravity:        c.Physics.Gravity,
		BounceDamping:  c.Physics.BounceDamping,
		FloorFriction:  c.Physics.FloorFriction,
		FloorSpinDecay: c.Physics.FloorSpinDecay,
		InitialBoxes:   c.Physics.InitialBoxes,
	}
}

func (c *Config) Validate() error {
	if c.Width == 0 || c.Height == 0 {
		return fmt.Errorf("%w: screen must be non-empty, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.FrameMs <= 0 {
		return fmt.Errorf("%w: frame_ms must be positive, got %f", ErrInvalidConfig, c.FrameMs)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidConfig, c.Frames)
	}
	if !validBackend(c.Backend) {
		return fmt.Errorf("%w: unknown backend %q (available: %v)", ErrInvalidConfig, c.Backend, Backends)
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for _, t := range c.Touches {
		if t.Frame < 0 {
			return fmt.Errorf("%w: touch at negative frame %d", ErrInvalidConfig, t.Frame)
		}
	}
	for _, r := range c.Resizes {
		if r.Frame < 0 || r.Width == 0 || r.Height == 0 {
			return fmt.Errorf("%w: bad resize %+v", ErrInvalidConfig, r)
		}
	}
	return nil
}

func validBackend(name string) bool {
	for _, b := range Backends {
		if b == name {
			return true
		}
	}
	return false
}

// Tunable lists the physics fields SetParam accepts.
var Tunable = []string{"gravity", "bounce_damping", "floor_friction", "floor_spin_decay", "box_size"}

// SetParam sets a physics field by its yaml name.
func (c *Config) SetParam(name string, v float64) error {
	switch name {
	case "gravity":
		c.Physics.Gravity = v
	case "bounce_damping":
		c.Physics.BounceDamping = v
	case "floor_friction":
		c.Physics.FloorFriction = v
	case "floor_spin_decay":
		c.Physics.FloorSpinDecay = v
	case "box_size":
		c.Physics.BoxSize = v
	default:
		return fmt.Errorf("%w: unknown parameter %q (tunable: %v)", ErrInvalidConfig, name, Tunable)
	}
	return nil
}

// Clone returns a deep copy; schedules are not shared.
func (c *Config) Clone() *Config {
	out := *c
	out.Touches = append([]TouchEvent(nil), c.Touches...)
	out.Resizes = append([]ResizeEvent(nil), c.Resizes...)
	return &out
}
