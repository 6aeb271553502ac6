package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/constellation/internal/constellation"
	"gopkg.in/yaml.v3"
)

const (
	VariantHero        = "hero"
	VariantInteractive = "interactive"

	DefaultFPS = 60
)

var (
	ErrInvalidConfig = errors.New("config: invalid configuration")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

type Config struct {
	Variant string `yaml:"variant"`
	Seed    int64  `yaml:"seed"`
	FPS     int    `yaml:"fps"`

	ParticleMinRadius float64 `yaml:"particle_min_radius"`
	ParticleMaxRadius float64 `yaml:"particle_max_radius"`
	BaseSpeed         float64 `yaml:"base_speed"`
	HueMin            float64 `yaml:"hue_min"`
	HueMax            float64 `yaml:"hue_max"`

	ConnectDistance float64 `yaml:"connect_distance"`
	MaxConnections  int     `yaml:"max_connections"`
	MaxAlpha        float64 `yaml:"max_alpha"`

	Density    float64 `yaml:"density"`
	MinCount   int     `yaml:"min_count"`
	MaxCount   int     `yaml:"max_count"`
	SpawnBatch int     `yaml:"spawn_batch"`

	Interaction InteractionConfig `yaml:"interaction"`
	Render      RenderConfig      `yaml:"render"`
}

type InteractionConfig struct {
	MouseAttractionRadius   float64 `yaml:"mouse_attraction_radius"`
	MouseAttractionStrength float64 `yaml:"mouse_attraction_strength"`
	ClickSpawnCount         int     `yaml:"click_spawn_count"`
	BurstJitterMin          float64 `yaml:"burst_jitter_min"`
	BurstJitterMax          float64 `yaml:"burst_jitter_max"`
	BurstSpeedMin           float64 `yaml:"burst_speed_min"`
	BurstSpeedMax           float64 `yaml:"burst_speed_max"`
}

// RenderConfig is read by the renderers only; the simulation ignores it.
type RenderConfig struct {
	TrailFade       float64 `yaml:"trail_fade"`
	BackgroundAlpha float64 `yaml:"background_alpha"`
	ReducedMotion   bool    `yaml:"reduced_motion"`
	Theme           string  `yaml:"theme"`
}

// DefaultConfig returns the interactive variant.
func DefaultConfig() *Config {
	return &Config{
		Variant:           VariantInteractive,
		FPS:               DefaultFPS,
		ParticleMinRadius: 1.4,
		ParticleMaxRadius: 2.8,
		BaseSpeed:         0.9,
		HueMin:            190,
		HueMax:            220,
		ConnectDistance:   140,
		MaxConnections:    14,
		MaxAlpha:          0.55,
		Density:           1.0 / 14000,
		MinCount:          60,
		MaxCount:          170,
		SpawnBatch:        6,
		Interaction: InteractionConfig{
			MouseAttractionRadius:   220,
			MouseAttractionStrength: 0.06,
			ClickSpawnCount:         10,
			BurstJitterMin:          6,
			BurstJitterMax:          26,
			BurstSpeedMin:           0.6,
			BurstSpeedMax:           1.8,
		},
		Render: RenderConfig{
			BackgroundAlpha: 22,
			Theme:           "night",
		},
	}
}

// Clone returns an independent copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Load reads a yaml file over the defaults. When the file names a variant,
// that variant's preset is used as the base instead.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var head struct {
		Variant string `yaml:"variant"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if head.Variant != "" {
		base, err := GetPreset(head.Variant)
		if err != nil {
			return nil, err
		}
		cfg = base
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	switch {
	case c.Variant != VariantHero && c.Variant != VariantInteractive:
		return invalid("variant must be %q or %q, got %q", VariantHero, VariantInteractive, c.Variant)
	case c.FPS <= 0:
		return invalid("fps must be positive, got %d", c.FPS)
	case c.ParticleMinRadius < 0 || c.ParticleMaxRadius < c.ParticleMinRadius:
		return invalid("particle radius range [%g, %g]", c.ParticleMinRadius, c.ParticleMaxRadius)
	case c.BaseSpeed < 0:
		return invalid("base_speed must not be negative, got %g", c.BaseSpeed)
	case c.HueMax < c.HueMin:
		return invalid("hue range [%g, %g]", c.HueMin, c.HueMax)
	case c.ConnectDistance <= 0:
		return invalid("connect_distance must be positive, got %g", c.ConnectDistance)
	case c.MaxConnections < 0:
		return invalid("max_connections must not be negative, got %d", c.MaxConnections)
	case c.MaxAlpha < 0 || c.MaxAlpha > 1:
		return invalid("max_alpha must be in [0, 1], got %g", c.MaxAlpha)
	case c.Density < 0:
		return invalid("density must not be negative, got %g", c.Density)
	case c.MinCount < 0 || c.MaxCount < c.MinCount:
		return invalid("count range [%d, %d]", c.MinCount, c.MaxCount)
	case c.SpawnBatch <= 0:
		return invalid("spawn_batch must be positive, got %d", c.SpawnBatch)
	case c.Interaction.MouseAttractionRadius < 0:
		return invalid("mouse_attraction_radius must not be negative")
	case c.Interaction.ClickSpawnCount < 0:
		return invalid("click_spawn_count must not be negative")
	case c.Interaction.BurstJitterMax < c.Interaction.BurstJitterMin:
		return invalid("burst jitter range [%g, %g]", c.Interaction.BurstJitterMin, c.Interaction.BurstJitterMax)
	case c.Interaction.BurstSpeedMax < c.Interaction.BurstSpeedMin:
		return invalid("burst speed range [%g, %g]", c.Interaction.BurstSpeedMin, c.Interaction.BurstSpeedMax)
	case c.Render.TrailFade < 0 || c.Render.TrailFade > 1:
		return invalid("trail_fade must be in [0, 1], got %g", c.Render.TrailFade)
	case c.Render.BackgroundAlpha < 0 || c.Render.BackgroundAlpha > 255:
		return invalid("background_alpha must be in [0, 255], got %g", c.Render.BackgroundAlpha)
	}
	return nil
}

// Interactive reports whether pointer and key input drive the simulation.
func (c *Config) Interactive() bool { return c.Variant == VariantInteractive }

// FadePerFrame is the fraction of the previous frame erased before drawing
// the next one. Hero trails use trail_fade; interactive uses the translucent
// background fill.
func (c *Config) FadePerFrame() float64 {
	if c.Variant == VariantHero {
		return c.Render.TrailFade
	}
	return c.Render.BackgroundAlpha / 255
}

// Params converts the config into simulation constants.
func (c *Config) Params() constellation.Params {
	return constellation.Params{
		MinRadius:          c.ParticleMinRadius,
		MaxRadius:          c.ParticleMaxRadius,
		BaseSpeed:          c.BaseSpeed,
		HueMin:             c.HueMin,
		HueMax:             c.HueMax,
		ConnectDistance:    c.ConnectDistance,
		MaxConnections:     c.MaxConnections,
		MaxAlpha:           c.MaxAlpha,
		Density:            c.Density,
		MinCount:           c.MinCount,
		MaxCount:           c.MaxCount,
		SpawnBatch:         c.SpawnBatch,
		AttractionRadius:   c.Interaction.MouseAttractionRadius,
		AttractionStrength: c.Interaction.MouseAttractionStrength,
		ClickSpawnCount:    c.Interaction.ClickSpawnCount,
		BurstJitterMin:     c.Interaction.BurstJitterMin,
		BurstJitterMax:     c.Interaction.BurstJitterMax,
		BurstSpeedMin:      c.Interaction.BurstSpeedMin,
		BurstSpeedMax:      c.Interaction.BurstSpeedMax,
	}
}

// SetParam sets a numeric tuning parameter by its yaml name.
func (c *Config) SetParam(name string, value float64) error {
	switch name {
	case "connect_distance":
		c.ConnectDistance = value
	case "max_connections":
		c.MaxConnections = int(value)
	case "max_alpha":
		c.MaxAlpha = value
	case "density":
		c.Density = value
	case "base_speed":
		c.BaseSpeed = value
	case "spawn_batch":
		c.SpawnBatch = int(value)
	case "mouse_attraction_radius":
		c.Interaction.MouseAttractionRadius = value
	case "mouse_attraction_strength":
		c.Interaction.MouseAttractionStrength = value
	default:
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalidConfig, name)
	}
	return nil
}

// Param reads a numeric tuning parameter by its yaml name.
func (c *Config) Param(name string) (float64, error) {
	switch name {
	case "connect_distance":
		return c.ConnectDistance, nil
	case "max_connections":
		return float64(c.MaxConnections), nil
	case "max_alpha":
		return c.MaxAlpha, nil
	case "density":
		return c.Density, nil
	case "base_speed":
		return c.BaseSpeed, nil
	case "spawn_batch":
		return float64(c.SpawnBatch), nil
	case "mouse_attraction_radius":
		return c.Interaction.MouseAttractionRadius, nil
	case "mouse_attraction_strength":
		return c.Interaction.MouseAttractionStrength, nil
	}
	return 0, fmt.Errorf("%w: unknown parameter %q", ErrInvalidConfig, name)
}

// TunableParams lists the names accepted by SetParam.
func TunableParams() []string {
	return []string{
		"base_speed", "connect_distance", "density", "max_alpha", "max_connections",
		"mouse_attraction_radius", "mouse_attraction_strength", "spawn_batch",
	}
}
