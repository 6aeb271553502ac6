package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Variant != VariantInteractive {
		t.Errorf("expected variant interactive, got %s", cfg.Variant)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if cfg.ConnectDistance <= 0 {
		t.Error("connect distance should be positive")
	}
}

func TestGetPreset(t *testing.T) {
	cfg, err := GetPreset("hero")
	if err != nil {
		t.Fatalf("expected preset, got %v", err)
	}
	if cfg.Density != 1.0/18000 {
		t.Errorf("expected density 1/18000, got %g", cfg.Density)
	}
	if cfg.MaxCount != 220 || cfg.SpawnBatch != 4 {
		t.Errorf("expected max 220 batch 4, got %d/%d", cfg.MaxCount, cfg.SpawnBatch)
	}
	if cfg.Render.TrailFade != 0.12 {
		t.Errorf("expected trail fade 0.12, got %g", cfg.Render.TrailFade)
	}

	// presets are built fresh on every call
	cfg.Density = 1
	again, _ := GetPreset("hero")
	if again.Density == 1 {
		t.Error("GetPreset returned shared state")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg, err := GetPreset("nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
	for _, name := range presets {
		cfg, _ := GetPreset(name)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown variant", func(c *Config) { c.Variant = "banner" }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"inverted radius", func(c *Config) { c.ParticleMinRadius, c.ParticleMaxRadius = 3, 1 }},
		{"zero connect distance", func(c *Config) { c.ConnectDistance = 0 }},
		{"negative cap", func(c *Config) { c.MaxConnections = -1 }},
		{"alpha above one", func(c *Config) { c.MaxAlpha = 1.5 }},
		{"inverted counts", func(c *Config) { c.MinCount, c.MaxCount = 100, 50 }},
		{"zero batch", func(c *Config) { c.SpawnBatch = 0 }},
		{"inverted burst speed", func(c *Config) { c.Interaction.BurstSpeedMin = 5 }},
		{"trail fade above one", func(c *Config) { c.Render.TrailFade = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoad_OverlaysVariantPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bg.yaml")
	data := []byte("variant: hero\nconnect_distance: 90\nrender:\n  reduced_motion: true\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ConnectDistance != 90 {
		t.Errorf("expected connect distance 90, got %g", cfg.ConnectDistance)
	}
	if cfg.MaxCount != 220 {
		t.Errorf("expected hero max count 220, got %d", cfg.MaxCount)
	}
	if !cfg.Render.ReducedMotion {
		t.Error("expected reduced motion")
	}
	if cfg.Render.TrailFade != 0.12 {
		t.Errorf("expected hero trail fade, got %g", cfg.Render.TrailFade)
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("spawn_batch: 0\n"), 0644)
	if _, err := Load(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	unknown := filepath.Join(dir, "unknown.yaml")
	os.WriteFile(unknown, []byte("variant: banner\n"), 0644)
	if _, err := Load(unknown); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg, _ := GetPreset("dense")
	cfg.Seed = 42

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestParams(t *testing.T) {
	cfg := DefaultConfig()
	p := cfg.Params()

	if p.ConnectDistance != cfg.ConnectDistance || p.MaxConnections != cfg.MaxConnections {
		t.Error("graph params not copied")
	}
	if p.AttractionRadius != cfg.Interaction.MouseAttractionRadius || p.ClickSpawnCount != cfg.Interaction.ClickSpawnCount {
		t.Error("interaction params not copied")
	}
}

func TestSetParam(t *testing.T) {
	cfg := DefaultConfig()
	for _, name := range TunableParams() {
		if err := cfg.SetParam(name, 3); err != nil {
			t.Errorf("SetParam(%s) failed: %v", name, err)
		}
	}
	if cfg.MaxConnections != 3 || cfg.ConnectDistance != 3 {
		t.Errorf("SetParam did not apply: %+v", cfg)
	}
	if err := cfg.SetParam("gravity", 1); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestFadePerFrame(t *testing.T) {
	hero, _ := GetPreset(VariantHero)
	if got := hero.FadePerFrame(); got != 0.12 {
		t.Errorf("hero fade = %v, want 0.12", got)
	}
	interactive := DefaultConfig()
	if got, want := interactive.FadePerFrame(), 22.0/255; got != want {
		t.Errorf("interactive fade = %v, want %v", got, want)
	}
}

func TestParamMatchesSetParam(t *testing.T) {
	cfg := DefaultConfig()
	for _, name := range TunableParams() {
		if err := cfg.SetParam(name, 7); err != nil {
			t.Fatalf("SetParam(%s): %v", name, err)
		}
		got, err := cfg.Param(name)
		if err != nil {
			t.Fatalf("Param(%s): %v", name, err)
		}
		if got != 7 {
			t.Errorf("Param(%s) = %v, want 7", name, got)
		}
	}
	if _, err := cfg.Param("gravity"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
