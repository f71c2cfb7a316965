package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"regulab/internal/step"
)

const (
	DefaultKp = 1.0
	DefaultKi = 0.0
	DefaultKd = 0.0
)

type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Gains      GainConfig       `yaml:"gains"`
}

type SimulationConfig struct {
	Samples           int     `yaml:"samples"`
	HorizonMultiplier float64 `yaml:"horizon_multiplier"`
	DefaultHorizon    float64 `yaml:"default_horizon"`
	MaxHorizon        float64 `yaml:"max_horizon"`
	SettleBand        float64 `yaml:"settle_band"`
	Epsilon           float64 `yaml:"epsilon"`
	MaxSubsteps       int     `yaml:"max_substeps"`
}

type GainConfig struct {
	Kp float64 `yaml:"kp"`
	Ki float64 `yaml:"ki"`
	Kd float64 `yaml:"kd"`
}

func DefaultConfig() *Config {
	s := step.DefaultConfig()
	return &Config{
		Simulation: SimulationConfig{
			Samples:           s.Samples,
			HorizonMultiplier: s.HorizonMultiplier,
			DefaultHorizon:    s.DefaultHorizon,
			MaxHorizon:        s.MaxHorizon,
			SettleBand:        s.SettleBand,
			Epsilon:           s.Epsilon,
			MaxSubsteps:       s.MaxSubsteps,
		},
		Gains: GainConfig{
			Kp: DefaultKp,
			Ki: DefaultKi,
			Kd: DefaultKd,
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

// StepConfig maps the file representation onto the simulator's own config.
func (c *Config) StepConfig() step.Config {
	return step.Config{
		Samples:           c.Simulation.Samples,
		HorizonMultiplier: c.Simulation.HorizonMultiplier,
		DefaultHorizon:    c.Simulation.DefaultHorizon,
		MaxHorizon:        c.Simulation.MaxHorizon,
		SettleBand:        c.Simulation.SettleBand,
		Epsilon:           c.Simulation.Epsilon,
		MaxSubsteps:       c.Simulation.MaxSubsteps,
	}
}
