// Package automation runs scripted sequences of headless sessions and
// one-parameter sweeps.
package automation

import (
	"context"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bouncebox/internal/config"
	"github.com/san-kum/bouncebox/internal/sim"
)

// Scenario defines a scripted sequence of sessions.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one headless session: a preset with optional overrides.
type ScenarioStep struct {
	Preset  string               `yaml:"preset"`
	Frames  int                  `yaml:"frames"`
	Seed    uint64               `yaml:"seed"`
	Params  map[string]float64   `yaml:"params"`
	Touches []config.TouchEvent  `yaml:"touches"`
	Resizes []config.ResizeEvent `yaml:"resizes"`
	SaveAs  string               `yaml:"save_as"`
}

// Runner executes one session. sim.Simulator.Run satisfies it.
type Runner func(ctx context.Context, cfg *config.Config) (*sim.Result, error)

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Config builds the session config for the step. Touches and resizes are
// appended to the preset's own schedules.
func (s ScenarioStep) Config() (*config.Config, error) {
	name := s.Preset
	if name == "" {
		name = "default"
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: unknown preset %q", config.ErrInvalidConfig, name)
	}

	if s.Frames > 0 {
		cfg.Frames = s.Frames
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	for k, v := range s.Params {
		if err := cfg.SetParam(k, v); err != nil {
			return nil, err
		}
	}
	cfg.Touches = append(cfg.Touches, s.Touches...)
	cfg.Resizes = append(cfg.Resizes, s.Resizes...)

	return cfg, cfg.Validate()
}

// StepResult pairs a finished session with the config that produced it.
type StepResult struct {
	Step   ScenarioStep
	Config *config.Config
	Result *sim.Result
}

// RunScenario executes all steps in order and stops at the first failure.
func RunScenario(ctx context.Context, scenario *Scenario, run Runner) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		log.Printf("[automation] step %d/%d: %s", i+1, len(scenario.Steps), step.Preset)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := run(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Config: cfg, Result: result})
	}

	return results, nil
}

// ParameterSweep runs the base config once per evenly spaced value of one
// physics parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

type SweepResult struct {
	ParamValue  float64
	Boxes       int
	Bounces     int
	Energy      float64
	Containment float64
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, run Runner) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("%w: sweep needs at least 2 steps, got %d", config.ErrInvalidConfig, sweep.NumSteps)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := sweep.Base.Clone()
		if err := cfg.SetParam(sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		result, err := run(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("%s=%.4f: %w", sweep.ParamName, paramVal, err)
		}

		results = append(results, SweepResult{
			ParamValue:  paramVal,
			Boxes:       len(result.Final),
			Bounces:     result.Stats.Bounces(),
			Energy:      result.Metrics["energy"],
			Containment: result.Metrics["containment"],
		})

		log.Printf("[automation] sweep %d/%d: %s=%.4f", i+1, sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}
