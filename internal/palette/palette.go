// Package palette maps particle hues and edge alphas to display colors for
// every renderer.
package palette

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/constellation/internal/config"
)

// ParticleAlpha is the opacity every particle is filled with.
const ParticleAlpha = 0.95

type Palette struct {
	Saturation float64
	Lightness  float64
	Edge       colorful.Color
	Background colorful.Color
	LineWidth  float64
}

// For returns the palette of a variant. Unknown variants get the
// interactive palette.
func For(variant string) Palette {
	p := Palette{
		Saturation: 0.90,
		Lightness:  0.70,
		Edge:       colorful.Hsv(210, 0.90, 0.72),
		Background: colorful.Hsv(225, 0.65, 0.06),
		LineWidth:  1,
	}
	if variant == config.VariantHero {
		p.Saturation = 0.95
		p.Lightness = 0.78
		p.Edge = colorful.Hsv(210, 0.95, 0.80)
		p.Background = colorful.Color{}
		p.LineWidth = 1.15
	}
	return p
}

// Particle returns the fill color for a particle hue in degrees.
func (p Palette) Particle(hue float64) colorful.Color {
	return colorful.Hsl(hue, p.Saturation, p.Lightness).Clamped()
}

// RGBA converts c with straight alpha a into a premultiplied color.RGBA.
func RGBA(c colorful.Color, a float64) color.RGBA {
	switch {
	case a < 0:
		a = 0
	case a > 1:
		a = 1
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{
		R: uint8(float64(r)*a + 0.5),
		G: uint8(float64(g)*a + 0.5),
		B: uint8(float64(b)*a + 0.5),
		A: uint8(a*255 + 0.5),
	}
}
