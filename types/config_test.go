package types

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero alpha", func(c *Config) { c.Alpha = 0 }},
		{"alpha above one", func(c *Config) { c.Alpha = 1.5 }},
		{"negative gamma", func(c *Config) { c.Gamma = -0.1 }},
		{"epsilon above one", func(c *Config) { c.Epsilon = 2 }},
		{"negative decay", func(c *Config) { c.EpsilonDecay = -1 }},
		{"floor above epsilon", func(c *Config) { c.MinEpsilon = 0.9 }},
		{"no colors", func(c *Config) { c.MaxColors = 0 }},
		{"no nodes", func(c *Config) { c.InitialNodes = 0 }},
		{"cap below initial nodes", func(c *Config) { c.MaxNodes = 2 }},
		{"no episodes", func(c *Config) { c.Episodes = 0 }},
		{"no steps", func(c *Config) { c.Horizon = 0 }},
		{"edge probability", func(c *Config) { c.EdgeProbability = 1.2 }},
		{"driver", func(c *Config) { c.Driver = "greedy" }},
		{"policy", func(c *Config) { c.Policy = "sarsa" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			c.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	content := "max_colors: 4\nalpha: 0.5\ndriver: policy\nrender_pace: 250ms\nseed: 7\n"
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(file)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxColors != 4 || cfg.Alpha != 0.5 || cfg.Driver != DriverPolicy || cfg.Seed != 7 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.RenderPace != 250*time.Millisecond {
		t.Errorf("unexpected pace %v", cfg.RenderPace)
	}
	if cfg.Horizon != DefaultHorizon || cfg.InitialNodes != 3 {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(file, []byte("gamma: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(file); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestRecordRoundTrip(t *testing.T) {
	r := NewRecord()
	r.RecordStep(0, 1)
	r.RecordStep(2, -1)
	r.RecordStep(0, -1)
	r.RecordEpisode(1, -1, true)
	r.RecordAgentEpisode(1, 1, 2)
	r.RecordCoverage(1, 5)

	file := filepath.Join(t.TempDir(), "out", "training_data.json")
	if err := r.Save(file); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadRecord(file)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.NodeRewards[0]) != 2 || loaded.NodeRewards[0][1] != -1 || loaded.NodeRewards[2][0] != -1 {
		t.Errorf("node rewards not restored: %v", loaded.NodeRewards)
	}
	if loaded.Episodes != 1 || loaded.FailedEpisodes != 1 || loaded.EpisodeRewards[0] != -1 {
		t.Errorf("episode data not restored: %+v", loaded)
	}
	if len(loaded.AgentRewards) != 2 || len(loaded.AgentRewards[0]) != 0 || loaded.AgentRewards[1][0] != 2 {
		t.Errorf("agent rewards not restored: %v", loaded.AgentRewards)
	}
	if len(loaded.Coverage) != 1 || loaded.Coverage[0] != 5 {
		t.Errorf("coverage not restored: %v", loaded.Coverage)
	}
}
