package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Field != "lorenz" {
		t.Errorf("expected field lorenz, got %s", cfg.Field)
	}
	if cfg.Dt != 0.003 {
		t.Errorf("expected dt 0.003, got %f", cfg.Dt)
	}
	if cfg.TickHz != 60 {
		t.Errorf("expected 60 Hz, got %d", cfg.TickHz)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative tick rate", func(c *Config) { c.TickHz = -1 }},
		{"negative particles", func(c *Config) { c.Particles = -5 }},
		{"oversized fade step", func(c *Config) { c.FadeStep = 300 }},
		{"zero queue capacity", func(c *Config) { c.QueueCap = 0 }},
		{"zero duration", func(c *Config) { c.Duration = 0 }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Field = "rossler"
	cfg.Lifespan = 5.0
	cfg.Seed = 42

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if *loaded != *cfg {
		t.Errorf("round trip changed config: %+v vs %+v", loaded, cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("classic")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Lifespan != 10.0 {
		t.Errorf("expected lifespan 10, got %f", cfg.Lifespan)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s should validate: %v", name, err)
		}
	}
}

func TestTickPeriod(t *testing.T) {
	cfg := DefaultConfig()
	want := time.Second / 60
	if got := cfg.TickPeriod(); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}
