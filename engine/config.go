package engine

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/gravity-well/physics"
)

// Config is the full simulation configuration: world-level limits plus the
// physics tuning constants. It is passed by value at construction and never
// mutated afterwards.
type Config struct {
	TimeStep  float64 `toml:"time_step"`
	MaxBodies int     `toml:"max_bodies"`

	// Trails are sampled every TrailInterval ticks
	TrailInterval int `toml:"trail_interval"`

	// BoundsPadding expands the gravity tree's root square beyond the body
	// population; CollisionPadding widens each broad-phase query circle
	BoundsPadding    float64 `toml:"bounds_padding"`
	CollisionPadding float64 `toml:"collision_padding"`

	Tuning physics.Tuning `toml:"tuning"`
}

// DefaultConfig returns the reference configuration
func DefaultConfig() Config {
	return Config{
		TimeStep:         1.0 / 60,
		MaxBodies:        600,
		TrailInterval:    3,
		BoundsPadding:    50,
		CollisionPadding: 2,
		Tuning:           physics.DefaultTuning(),
	}
}

// LoadConfig reads a TOML config file over the defaults, so partial files
// override only the keys they name
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.TimeStep <= 0 {
		return fmt.Errorf("time_step must be > 0, got %v", c.TimeStep)
	}
	if c.MaxBodies < 1 {
		return fmt.Errorf("max_bodies must be >= 1, got %d", c.MaxBodies)
	}
	if c.TrailInterval < 1 {
		return fmt.Errorf("trail_interval must be >= 1, got %d", c.TrailInterval)
	}
	if c.Tuning.DensityK <= 0 {
		return fmt.Errorf("tuning density constant must be > 0, got %v", c.Tuning.DensityK)
	}
	if c.Tuning.MaxDepth < 1 {
		return fmt.Errorf("tuning max_depth must be >= 1, got %d", c.Tuning.MaxDepth)
	}
	return nil
}
