package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scenario != "wave" {
		t.Errorf("expected scenario wave, got %s", cfg.Scenario)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Integrator != "rk45" {
		t.Errorf("expected integrator rk45, got %s", cfg.Integrator)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("pattern", "spots")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Scenario != "pattern" {
		t.Errorf("expected scenario pattern, got %s", cfg.Scenario)
	}
	if cfg.Params["a"] != 0.99 {
		t.Errorf("expected a=0.99, got %f", cfg.Params["a"])
	}
	// Fields the preset leaves unset fall back to defaults.
	if cfg.Addr != DefaultConfig().Addr {
		t.Errorf("expected default addr, got %s", cfg.Addr)
	}
	if cfg.FPS != DefaultFPS {
		t.Errorf("expected default fps, got %d", cfg.FPS)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("wave", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "default"); cfg != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}

func TestGetPresetCopies(t *testing.T) {
	a := GetPreset("wave", "default")
	a.Params["speed"] = 99

	b := GetPreset("wave", "default")
	if b.Params["speed"] != 1.0 {
		t.Errorf("preset table mutated: speed=%f", b.Params["speed"])
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("pattern")
	if len(presets) == 0 {
		t.Fatal("expected presets for pattern")
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] >= presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}

	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}

func TestParam(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params["alpha"] = 2.5

	if got := cfg.Param("alpha", 1); got != 2.5 {
		t.Errorf("expected 2.5, got %f", got)
	}
	if got := cfg.Param("missing", 7); got != 7 {
		t.Errorf("expected default 7, got %f", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Scenario = "heat"
	cfg.Dt = 0.01
	cfg.Params["alpha"] = 0.5

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got.Scenario != "heat" {
		t.Errorf("expected scenario heat, got %s", got.Scenario)
	}
	if got.Dt != 0.01 {
		t.Errorf("expected dt 0.01, got %f", got.Dt)
	}
	if got.Params["alpha"] != 0.5 {
		t.Errorf("expected alpha 0.5, got %f", got.Params["alpha"])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
