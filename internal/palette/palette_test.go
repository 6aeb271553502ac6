package palette

import (
	"testing"

	"github.com/san-kum/constellation/internal/config"
)

func TestFor(t *testing.T) {
	hero := For(config.VariantHero)
	interactive := For(config.VariantInteractive)

	if hero.LineWidth != 1.15 || interactive.LineWidth != 1 {
		t.Errorf("line widths = %v, %v", hero.LineWidth, interactive.LineWidth)
	}
	if hero.Lightness <= interactive.Lightness {
		t.Error("hero particles should be lighter")
	}
	if For("unknown") != interactive {
		t.Error("unknown variant should fall back to interactive")
	}
}

func TestParticleHueBand(t *testing.T) {
	p := For(config.VariantInteractive)
	for _, hue := range []float64{190, 205, 220} {
		h, _, _ := p.Particle(hue).Hsl()
		if h < hue-1 || h > hue+1 {
			t.Errorf("Particle(%v) hue = %v", hue, h)
		}
		r, g, b := p.Particle(hue).RGB255()
		if b <= r || b < g {
			t.Errorf("Particle(%v) = (%d,%d,%d), want a blue tone", hue, r, g, b)
		}
	}
}

func TestRGBA(t *testing.T) {
	p := For(config.VariantInteractive)

	tests := []struct {
		name  string
		alpha float64
		wantA uint8
	}{
		{"opaque", 1, 255},
		{"transparent", 0, 0},
		{"half", 0.5, 128},
		{"clamped high", 3, 255},
		{"clamped low", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := RGBA(p.Edge, tt.alpha)
			if c.A != tt.wantA {
				t.Errorf("A = %d, want %d", c.A, tt.wantA)
			}
			if c.R > c.A || c.G > c.A || c.B > c.A {
				t.Errorf("%v is not premultiplied", c)
			}
		})
	}
}
