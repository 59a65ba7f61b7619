package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt        = 0.003
	DefaultTickHz    = 60
	DefaultParticles = 100
	DefaultLifespan  = 10.0
	DefaultFadeStep  = 1
	DefaultQueueCap  = 100
	DefaultDuration  = 10.0
)

type Config struct {
	Field      string  `yaml:"field"`
	Integrator string  `yaml:"integrator"`
	Dt         float64 `yaml:"dt"`
	TickHz     int     `yaml:"tick_hz"`
	Particles  int     `yaml:"particles"`
	Lifespan   float64 `yaml:"lifespan"`
	FadeStep   int     `yaml:"fade_step"`
	QueueCap   int     `yaml:"queue_capacity"`
	Seed       int64   `yaml:"seed"`
	Duration   float64 `yaml:"duration"`
}

func DefaultConfig() *Config {
	return &Config{
		Field:      "lorenz",
		Integrator: "euler",
		Dt:         DefaultDt,
		TickHz:     DefaultTickHz,
		Particles:  DefaultParticles,
		Lifespan:   DefaultLifespan,
		FadeStep:   DefaultFadeStep,
		QueueCap:   DefaultQueueCap,
		Duration:   DefaultDuration,
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

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.TickHz <= 0 {
		return fmt.Errorf("tick_hz must be positive, got %d", c.TickHz)
	}
	if c.Particles < 0 {
		return fmt.Errorf("particles must not be negative, got %d", c.Particles)
	}
	if c.FadeStep < 0 || c.FadeStep > 255 {
		return fmt.Errorf("fade_step must fit a color channel, got %d", c.FadeStep)
	}
	if c.QueueCap <= 0 {
		return fmt.Errorf("queue_capacity must be positive, got %d", c.QueueCap)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	return nil
}

// TickPeriod converts the tick rate to a wall-clock period.
func (c *Config) TickPeriod() time.Duration {
	return time.Duration(float64(time.Second) / float64(c.TickHz))
}
