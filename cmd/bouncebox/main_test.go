package main

import (
	"path/filepath"
	"testing"

	"github.com/san-kum/bouncebox/internal/config"
	"github.com/spf13/cobra"
)

func newTestCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addSessionFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestResolveConfigLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bouncy.yaml")
	fileCfg := config.DefaultConfig()
	fileCfg.Frames = 42
	fileCfg.Seed = 5
	if err := config.Save(path, fileCfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	cmd := newTestCmd(t, "--preset", "moon", "--config", path, "--seed", "9")
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if name != "bouncy" {
		t.Errorf("expected run name from config file, got %q", name)
	}
	if cfg.Frames != 42 {
		t.Errorf("expected frames from config file, got %d", cfg.Frames)
	}
	if cfg.Seed != 9 {
		t.Errorf("expected seed flag to win, got %d", cfg.Seed)
	}
}

func TestResolveConfigPreset(t *testing.T) {
	cmd := newTestCmd(t, "--preset", "moon")
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if name != "moon" || cfg.Physics.Gravity != config.GetPreset("moon").Physics.Gravity {
		t.Errorf("expected moon preset, got %s with gravity %f", name, cfg.Physics.Gravity)
	}
}

func TestResolveConfigRejects(t *testing.T) {
	if _, _, err := resolveConfig(newTestCmd(t, "--preset", "mars")); err == nil {
		t.Error("expected unknown preset error")
	}
	if _, _, err := resolveConfig(newTestCmd(t, "--frames", "0")); err == nil {
		t.Error("expected invalid config error")
	}
}

func TestParseGrid(t *testing.T) {
	names, ranges, err := parseGrid([]string{"gravity=100, 200", "bounce_damping=0.5"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(names) != 2 || names[0] != "gravity" || len(ranges[0]) != 2 || ranges[0][1] != 200 || ranges[1][0] != 0.5 {
		t.Errorf("unexpected grid %v %v", names, ranges)
	}

	for _, bad := range []string{"gravity", "=1", "gravity=", "gravity=a"} {
		if _, _, err := parseGrid([]string{bad}); err == nil {
			t.Errorf("expected %q rejected", bad)
		}
	}
}
