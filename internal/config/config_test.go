package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/bouncebox/internal/boxes"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FrameMs <= 0 {
		t.Error("frame_ms should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if diff := cmp.Diff(boxes.DefaultParams(), cfg.Params()); diff != "" {
		t.Errorf("default physics mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxes.yaml")

	cfg := GetPreset("shrink")
	cfg.Seed = 99
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOmitsEmptySchedules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	cfg := &Config{Width: 1024}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	// zero values written to the file override defaults; only schedules are omitted
	if loaded.Width != 1024 {
		t.Errorf("expected width 1024, got %d", loaded.Width)
	}
	if loaded.Touches != nil {
		t.Errorf("expected no touches, got %v", loaded.Touches)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"zero frame_ms", func(c *Config) { c.FrameMs = 0 }},
		{"no frames", func(c *Config) { c.Frames = 0 }},
		{"unknown backend", func(c *Config) { c.Backend = "vulkan" }},
		{"bad damping", func(c *Config) { c.Physics.BounceDamping = 1.5 }},
		{"negative touch frame", func(c *Config) { c.Touches = []TouchEvent{{Frame: -1}} }},
		{"empty resize", func(c *Config) { c.Resizes = []ResizeEvent{{Frame: 3}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidateWrapsParamsError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Physics.Capacity = 0
	if err := cfg.Validate(); !errors.Is(err, boxes.ErrInvalidParams) {
		t.Errorf("expected wrapped ErrInvalidParams, got %v", err)
	}
}

func TestPresets(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s: expected config, got nil", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}

	moon := GetPreset("moon")
	if moon.Physics.Gravity >= boxes.DefaultGravity {
		t.Errorf("expected reduced gravity, got %f", moon.Physics.Gravity)
	}
}

func TestPresetsDoNotShareState(t *testing.T) {
	a := GetPreset("crowd")
	b := GetPreset("crowd")
	a.Touches[0].X = -1
	if b.Touches[0].X == -1 {
		t.Error("presets share touch slices")
	}
}

func TestListPresetsSorted(t *testing.T) {
	want := []string{"crowd", "default", "moon", "rubber", "shrink"}
	if diff := cmp.Diff(want, ListPresets()); diff != "" {
		t.Errorf("presets mismatch (-want +got):\n%s", diff)
	}
}

func TestSetParam(t *testing.T) {
	cfg := DefaultConfig()
	for i, name := range Tunable {
		if err := cfg.SetParam(name, float64(i+1)*0.1); err != nil {
			t.Errorf("set %s: %v", name, err)
		}
	}
	if cfg.Physics.BounceDamping != 0.2 || cfg.Physics.BoxSize != 0.5 {
		t.Errorf("parameters not applied: %+v", cfg.Physics)
	}
	if err := cfg.SetParam("mass", 1); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestClone(t *testing.T) {
	cfg := GetPreset("shrink")
	c := cfg.Clone()
	c.Touches[0].X = 1
	c.Resizes[0].Width = 1
	if cfg.Touches[0].X == 1 || cfg.Resizes[0].Width == 1 {
		t.Error("clone shares schedules with the original")
	}
}
