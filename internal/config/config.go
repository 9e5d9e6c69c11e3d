package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/tiltball/internal/tilt"
)

const (
	DefaultPreset   = "original"
	DefaultFPS      = 30
	DefaultBoundX   = 90.0
	DefaultCanvasW  = 60
	DefaultCanvasH  = 20
	DefaultTiltStep = 5.0
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type Config struct {
	Ball   BallConfig   `yaml:"ball"`
	Bounds BoundsConfig `yaml:"bounds"`
	View   ViewConfig   `yaml:"view"`
}

type BallConfig struct {
	Radius      float64 `yaml:"radius"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Color       string  `yaml:"color"`
	Friction    float64 `yaml:"friction"`
	MaxVelocity float64 `yaml:"max_velocity"`
}

type BoundsConfig struct {
	Reflect tilt.Box `yaml:"reflect"`
	Clamp   tilt.Box `yaml:"clamp"`
}

type ViewConfig struct {
	FPS      int     `yaml:"fps"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	TiltStep float64 `yaml:"tilt_step"`
	Prompt   bool    `yaml:"prompt"`
}

// FieldError reports an invalid configuration value.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func DefaultConfig() *Config {
	p := tilt.DefaultProperties()
	b := tilt.DefaultBounds()
	return &Config{
		Ball: BallConfig{
			Radius:      p.Radius,
			Width:       p.Width,
			Height:      p.Height,
			Color:       p.Color,
			Friction:    p.Friction,
			MaxVelocity: p.MaxVelocity,
		},
		Bounds: BoundsConfig{
			Reflect: b.Reflect,
			Clamp:   b.Clamp,
		},
		View: ViewConfig{
			FPS:      DefaultFPS,
			Width:    DefaultCanvasW,
			Height:   DefaultCanvasH,
			TiltStep: DefaultTiltStep,
			Prompt:   true,
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
	if err := cfg.Validate(); err != nil {
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

func (c *Config) Properties() tilt.Properties {
	return tilt.Properties{
		Radius:      c.Ball.Radius,
		Width:       c.Ball.Width,
		Height:      c.Ball.Height,
		Color:       c.Ball.Color,
		Friction:    c.Ball.Friction,
		MaxVelocity: c.Ball.MaxVelocity,
	}
}

func (c *Config) TiltBounds() tilt.Bounds {
	return tilt.Bounds{Reflect: c.Bounds.Reflect, Clamp: c.Bounds.Clamp}
}

func (c *Config) Validate() error {
	if err := c.Properties().Validate(); err != nil {
		field := "ball.max_velocity"
		if errors.Is(err, tilt.ErrFrictionRange) {
			field = "ball.friction"
		}
		return &FieldError{Field: field, Err: err}
	}
	if !hexColor.MatchString(c.Ball.Color) {
		return &FieldError{Field: "ball.color", Err: fmt.Errorf("want #rgb or #rrggbb, got %q", c.Ball.Color)}
	}
	if err := c.TiltBounds().Validate(); err != nil {
		return &FieldError{Field: "bounds", Err: err}
	}
	if c.View.FPS <= 0 {
		return &FieldError{Field: "view.fps", Err: fmt.Errorf("must be positive, got %d", c.View.FPS)}
	}
	if c.View.Width <= 0 || c.View.Height <= 0 {
		return &FieldError{Field: "view", Err: fmt.Errorf("canvas %dx%d too small", c.View.Width, c.View.Height)}
	}
	return nil
}

// Integrator builds the step function for this configuration.
func (c *Config) Integrator() (*tilt.Integrator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return tilt.NewIntegrator(c.Properties(), c.TiltBounds())
}
