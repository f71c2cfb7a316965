package config

import (
	"os"
	"path/filepath"
	"testing"

	"regulab/internal/step"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Simulation.Samples != step.DefaultSamples {
		t.Errorf("expected %d samples, got %d", step.DefaultSamples, cfg.Simulation.Samples)
	}
	if cfg.Simulation.SettleBand != step.DefaultSettleBand {
		t.Errorf("expected settle band %f, got %f", step.DefaultSettleBand, cfg.Simulation.SettleBand)
	}
	if cfg.Gains.Kp != DefaultKp {
		t.Errorf("expected kp %f, got %f", DefaultKp, cfg.Gains.Kp)
	}
}

func TestStepConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.StepConfig() != step.DefaultConfig() {
		t.Error("default file config must map onto the default step config")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regulab.yaml")

	cfg := DefaultConfig()
	cfg.Simulation.Samples = 800
	cfg.Gains = GainConfig{Kp: 2.5, Ki: 0.5, Kd: 0.1}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Simulation.Samples != 800 {
		t.Errorf("expected 800 samples, got %d", loaded.Simulation.Samples)
	}
	if loaded.Gains != cfg.Gains {
		t.Errorf("expected gains %+v, got %+v", cfg.Gains, loaded.Gains)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("gains:\n  kp: 3.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Gains.Kp != 3.0 {
		t.Errorf("expected kp 3.0, got %f", cfg.Gains.Kp)
	}
	if cfg.Simulation.Samples != step.DefaultSamples {
		t.Error("unset fields must keep their defaults")
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("underdamped")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(p.Den) != 3 {
		t.Errorf("expected second-order denominator, got %v", p.Den)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresetsSorted(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("expected sorted names, got %v", names)
		}
	}
}
