package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/carnot/internal/engine"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS   = 60
	DefaultTheme = "ember"
)

var ErrFPS = errors.New("config: fps must be positive")

type Config struct {
	Hot       string         `yaml:"hot"`
	Cold      string         `yaml:"cold"`
	Autostart bool           `yaml:"autostart"`
	FPS       int            `yaml:"fps"`
	Seed      int64          `yaml:"seed"`
	Theme     string         `yaml:"theme"`
	Audio     bool           `yaml:"audio"`
	Tuning    TuningConfig   `yaml:"tuning"`
	Geometry  GeometryConfig `yaml:"geometry"`
}

type TuningConfig struct {
	BaseSpeed float64 `yaml:"base_speed"`
	SpeedGain float64 `yaml:"speed_gain"`
}

type GeometryConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	CenterY        float64 `yaml:"center_y"`
	CrankRadius    float64 `yaml:"crank_radius"`
	RodLength      float64 `yaml:"rod_length"`
	PistonWidth    float64 `yaml:"piston_width"`
	PistonHeight   float64 `yaml:"piston_height"`
	CylinderTop    float64 `yaml:"cylinder_top"`
	CylinderBottom float64 `yaml:"cylinder_bottom"`
	ReservoirY     float64 `yaml:"reservoir_y"`
}

func DefaultConfig() *Config {
	t := engine.DefaultTuning()
	g := engine.DefaultGeometry()
	return &Config{
		FPS:   DefaultFPS,
		Theme: DefaultTheme,
		Tuning: TuningConfig{
			BaseSpeed: t.BaseSpeed,
			SpeedGain: t.SpeedGain,
		},
		Geometry: GeometryConfig{
			Width:          g.Width,
			Height:         g.Height,
			CenterY:        g.CenterY,
			CrankRadius:    g.CrankRadius,
			RodLength:      g.RodLength,
			PistonWidth:    g.PistonWidth,
			PistonHeight:   g.PistonHeight,
			CylinderTop:    g.CylinderTop,
			CylinderBottom: g.CylinderBottom,
			ReservoirY:     g.ReservoirY,
		},
	}
}

// Load reads a YAML file over the defaults; keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Overlay(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overlay reads a YAML file over cfg, so a file can refine a preset.
func Overlay(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("%w, got %d", ErrFPS, c.FPS)
	}
	return c.Params().Validate()
}

func (c *Config) Params() engine.Params {
	g := c.Geometry
	return engine.Params{
		Geometry: engine.Geometry{
			Width:          g.Width,
			Height:         g.Height,
			CenterY:        g.CenterY,
			CrankRadius:    g.CrankRadius,
			RodLength:      g.RodLength,
			PistonWidth:    g.PistonWidth,
			PistonHeight:   g.PistonHeight,
			CylinderTop:    g.CylinderTop,
			CylinderBottom: g.CylinderBottom,
			ReservoirY:     g.ReservoirY,
		},
		Tuning: engine.Tuning{
			BaseSpeed: c.Tuning.BaseSpeed,
			SpeedGain: c.Tuning.SpeedGain,
		},
	}
}

func (c *Config) Inputs() engine.Inputs {
	return engine.Inputs{Hot: c.Hot, Cold: c.Cold}
}
