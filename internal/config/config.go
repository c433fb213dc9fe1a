package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ropelab/ropesim/internal/geom"
	"github.com/ropelab/ropesim/internal/sim"
)

const (
	DefaultDt           = 1.0 / 60
	DefaultTicks        = 600
	DefaultIterations   = 8
	DefaultFPS          = 60
	DefaultGravityY     = -9.8
	DefaultRestitution  = -1.0
	DefaultPositionGain = 1.0
	DefaultVelocityGain = 2.0
	DefaultDamping      = 0.99
	DefaultStrength     = 0.9
	DefaultSpacing      = 4.0
	DefaultParticles    = 24
)

// Config describes a full simulation setup: the scene to build, the world
// parameters, and the run cadence. File values overlay [DefaultConfig];
// CLI flags overlay the file.
type Config struct {
	Scene      string  `yaml:"scene"`
	Mode       string  `yaml:"mode"`
	Dt         float64 `yaml:"dt"`
	Ticks      int     `yaml:"ticks"`
	Iterations int     `yaml:"iterations"`
	Seed       int64   `yaml:"seed"`
	FPS        int     `yaml:"fps"`

	Gravity          geom.Vec2 `yaml:"gravity"`
	Restitution      float64   `yaml:"restitution"`
	PositionGain     float64   `yaml:"position_gain"`
	VelocityGain     float64   `yaml:"velocity_gain"`
	CorrectPositions bool      `yaml:"correct_positions"`

	Bounds BoundsConfig `yaml:"bounds"`
	Setup  SceneConfig  `yaml:"setup"`
}

// BoundsConfig is the optional reflective domain. Disabled bounds leave
// the world open.
type BoundsConfig struct {
	Enabled bool      `yaml:"enabled"`
	Min     geom.Vec2 `yaml:"min"`
	Max     geom.Vec2 `yaml:"max"`
}

// SceneConfig sizes the built scene. Scenes read the fields they care
// about and ignore the rest.
type SceneConfig struct {
	Particles int     `yaml:"particles"`
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Spacing   float64 `yaml:"spacing"`
	Mass      float64 `yaml:"mass"`
	Radius    float64 `yaml:"radius"`
	Damping   float64 `yaml:"damping"`
	Strength  float64 `yaml:"strength"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:        "rope",
		Mode:         "verlet",
		Dt:           DefaultDt,
		Ticks:        DefaultTicks,
		Iterations:   DefaultIterations,
		FPS:          DefaultFPS,
		Gravity:      geom.V(0, DefaultGravityY),
		Restitution:  DefaultRestitution,
		PositionGain: DefaultPositionGain,
		VelocityGain: DefaultVelocityGain,
		Bounds: BoundsConfig{
			Enabled: true,
			Min:     geom.V(-80, -60),
			Max:     geom.V(80, 60),
		},
		Setup: SceneConfig{
			Particles: DefaultParticles,
			Width:     12,
			Height:    9,
			Spacing:   DefaultSpacing,
			Mass:      1,
			Radius:    1,
			Damping:   DefaultDamping,
			Strength:  DefaultStrength,
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

// Validate mirrors the world's own construction rules so a bad file
// fails before any scene is built. Scene names are checked by the scene
// registry, not here.
func (c *Config) Validate() error {
	if _, err := sim.ParseMode(c.Mode); err != nil {
		return err
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %v", c.Dt)
	}
	if c.Ticks < 0 {
		return fmt.Errorf("ticks must be non-negative, got %d", c.Ticks)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("iterations must be non-negative, got %d", c.Iterations)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Setup.Mass <= 0 {
		return fmt.Errorf("particle mass must be positive, got %v", c.Setup.Mass)
	}
	if c.Setup.Damping <= 0 || c.Setup.Damping > 1 {
		return fmt.Errorf("damping must be in (0, 1], got %v", c.Setup.Damping)
	}
	if c.Setup.Strength <= 0 || c.Setup.Strength > 1 {
		return fmt.Errorf("strength must be in (0, 1], got %v", c.Setup.Strength)
	}
	if c.Bounds.Enabled {
		if c.Bounds.Min.X >= c.Bounds.Max.X || c.Bounds.Min.Y >= c.Bounds.Max.Y {
			return fmt.Errorf("bounds min %v must lie below max %v", c.Bounds.Min, c.Bounds.Max)
		}
	}
	return nil
}

// Options converts the config to world options. The mode string must
// already have passed [Config.Validate].
func (c *Config) Options() (sim.Options, error) {
	mode, err := sim.ParseMode(c.Mode)
	if err != nil {
		return sim.Options{}, err
	}
	return sim.Options{
		Mode:             mode,
		Gravity:          c.Gravity,
		Restitution:      c.Restitution,
		PositionGain:     c.PositionGain,
		VelocityGain:     c.VelocityGain,
		CorrectPositions: c.CorrectPositions,
	}, nil
}

// WorldBounds returns the configured domain, or nil when disabled.
func (c *Config) WorldBounds() *sim.Bounds {
	if !c.Bounds.Enabled {
		return nil
	}
	return &sim.Bounds{Min: c.Bounds.Min, Max: c.Bounds.Max}
}
