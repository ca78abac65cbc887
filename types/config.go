package types

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for out of range parameters
var ErrInvalidConfig = errors.New("invalid config")

const (
	PolicyQLearning = "qlearning"
	// PolicyRandom is the non learning baseline
	PolicyRandom = "random"
)

// Config is the construction time surface of a training run
type Config struct {
	InitialNodes    int     `yaml:"initial_nodes"`
	MaxNodes        int     `yaml:"max_nodes"`
	MaxColors       int     `yaml:"max_colors"`
	EdgeProbability float64 `yaml:"edge_probability"`

	Alpha        float64 `yaml:"alpha"`
	Gamma        float64 `yaml:"gamma"`
	Epsilon      float64 `yaml:"epsilon"`
	EpsilonDecay float64 `yaml:"epsilon_decay"`
	MinEpsilon   float64 `yaml:"min_epsilon"`
	Policy       string  `yaml:"policy"`

	Episodes int    `yaml:"episodes"`
	Horizon  int    `yaml:"max_steps"`
	Driver   Driver `yaml:"driver"`
	Seed     uint64 `yaml:"seed"`

	Render     bool          `yaml:"render"`
	RenderPace time.Duration `yaml:"render_pace"`
}

func DefaultConfig() *Config {
	return &Config{
		InitialNodes:    3,
		MaxNodes:        20,
		MaxColors:       3,
		EdgeProbability: 0.5,

		Alpha:        0.1,
		Gamma:        0.9,
		Epsilon:      0.7,
		EpsilonDecay: 0.02,
		MinEpsilon:   0.0,
		Policy:       PolicyQLearning,

		Episodes: 10,
		Horizon:  DefaultHorizon,
		Driver:   DriverRandomValid,
		Seed:     42,

		Render:     false,
		RenderPace: 0,
	}
}

// LoadConfig reads a YAML file over the defaults
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(bs, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.InitialNodes < 1:
		return fmt.Errorf("%w: initial_nodes must be positive, got %d", ErrInvalidConfig, c.InitialNodes)
	case c.MaxNodes < c.InitialNodes:
		return fmt.Errorf("%w: max_nodes %d below initial_nodes %d", ErrInvalidConfig, c.MaxNodes, c.InitialNodes)
	case c.MaxColors < 1:
		return fmt.Errorf("%w: max_colors must be positive, got %d", ErrInvalidConfig, c.MaxColors)
	case c.EdgeProbability < 0 || c.EdgeProbability > 1:
		return fmt.Errorf("%w: edge_probability %v outside [0, 1]", ErrInvalidConfig, c.EdgeProbability)
	case c.Alpha <= 0 || c.Alpha > 1:
		return fmt.Errorf("%w: alpha %v outside (0, 1]", ErrInvalidConfig, c.Alpha)
	case c.Gamma < 0 || c.Gamma > 1:
		return fmt.Errorf("%w: gamma %v outside [0, 1]", ErrInvalidConfig, c.Gamma)
	case c.Epsilon < 0 || c.Epsilon > 1:
		return fmt.Errorf("%w: epsilon %v outside [0, 1]", ErrInvalidConfig, c.Epsilon)
	case c.EpsilonDecay < 0:
		return fmt.Errorf("%w: epsilon_decay must not be negative, got %v", ErrInvalidConfig, c.EpsilonDecay)
	case c.MinEpsilon < 0 || c.MinEpsilon > c.Epsilon:
		return fmt.Errorf("%w: min_epsilon %v outside [0, %v]", ErrInvalidConfig, c.MinEpsilon, c.Epsilon)
	case c.Policy != PolicyQLearning && c.Policy != PolicyRandom:
		return fmt.Errorf("%w: unknown policy %q", ErrInvalidConfig, c.Policy)
	case c.Episodes < 1:
		return fmt.Errorf("%w: episodes must be positive, got %d", ErrInvalidConfig, c.Episodes)
	case c.Horizon < 1:
		return fmt.Errorf("%w: max_steps must be positive, got %d", ErrInvalidConfig, c.Horizon)
	}
	if _, err := ParseDriver(string(c.Driver)); err != nil {
		return err
	}
	return nil
}
