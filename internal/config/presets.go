package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]func() *Config{
	VariantInteractive: DefaultConfig,
	VariantHero:        heroConfig,
	"sparse": func() *Config {
		c := heroConfig()
		c.Density = 1.0 / 40000
		c.MinCount, c.MaxCount = 25, 90
		c.ConnectDistance = 170
		c.MaxConnections = 5
		return c
	},
	"dense": func() *Config {
		c := DefaultConfig()
		c.Density = 1.0 / 7000
		c.MaxCount = 320
		c.SpawnBatch = 10
		c.ConnectDistance = 110
		c.MaxConnections = 8
		return c
	},
	"still": func() *Config {
		c := heroConfig()
		c.Render.ReducedMotion = true
		return c
	},
}

// heroConfig is the passive page-background variant.
func heroConfig() *Config {
	c := DefaultConfig()
	c.Variant = VariantHero
	c.ParticleMinRadius, c.ParticleMaxRadius = 1.2, 2.9
	c.BaseSpeed = 0.85
	c.HueMin, c.HueMax = 200, 225
	c.ConnectDistance = 135
	c.MaxConnections = 12
	c.MaxAlpha = 0.6
	c.Density = 1.0 / 18000
	c.MinCount, c.MaxCount = 60, 220
	c.SpawnBatch = 4
	c.Render.TrailFade = 0.12
	c.Render.BackgroundAlpha = 0
	c.Render.Theme = "dusk"
	return c
}

// GetPreset returns a fresh copy of the named preset.
func GetPreset(name string) (*Config, error) {
	build, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return build(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
