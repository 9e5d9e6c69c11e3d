package config

import (
	"sort"

	"github.com/san-kum/tiltball/internal/tilt"
)

var Presets = map[string]func(*Config){
	"original": func(c *Config) {},
	"symmetric": func(c *Config) {
		c.Bounds.Reflect.X = tilt.Range{Min: 0, Max: 100}
	},
	"bouncy": func(c *Config) {
		c.Ball.Friction = 1.0
	},
	"sticky": func(c *Config) {
		c.Ball.Friction = 0.1
		c.Ball.MaxVelocity = 1.0
	},
	"fast": func(c *Config) {
		c.Ball.MaxVelocity = 6.0
		c.Ball.Friction = 0.7
	},
}

// GetPreset returns the default configuration with the named preset
// applied, or nil if there is no such preset.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
