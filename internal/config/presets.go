package config

import "sort"

// Presets are named tweaks applied on top of DefaultConfig.
var Presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"moon": func(c *Config) {
		c.Physics.Gravity = 80
		c.Frames = 1200
	},
	"rubber": func(c *Config) {
		c.Physics.BounceDamping = 0.97
		c.Physics.FloorFriction = 1
		c.Physics.FloorSpinDecay = 1
	},
	"crowd": func(c *Config) {
		c.Physics.BoxSize = 24
		c.Physics.InitialBoxes = 60
		for i := 0; i < 40; i++ {
			c.Touches = append(c.Touches, TouchEvent{Frame: i * 5, X: float32(40 + i*18), Y: 80})
		}
	},
	"shrink": func(c *Config) {
		c.Touches = []TouchEvent{{Frame: 0, X: 790, Y: 300}}
		c.Resizes = []ResizeEvent{{Frame: 30, Width: 400, Height: 600}}
	},
}

// GetPreset returns DefaultConfig with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
