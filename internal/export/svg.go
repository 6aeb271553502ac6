package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/constellation/internal/constellation"
	"github.com/san-kum/constellation/internal/palette"
	"github.com/san-kum/constellation/internal/viz"
)

// FrameToSVG draws a frame at simulation scale: edges as lines with
// stroke-opacity equal to their alpha, particles as filled circles on top.
func FrameToSVG(f constellation.Frame, b constellation.Bounds, p palette.Palette) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, b.W, b.H, b.W, b.H, p.Background.Hex()))

	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="%.2f" stroke-linecap="round">
`, p.Edge.Hex(), p.LineWidth))
	for _, e := range f.Edges {
		a, c := f.Particles[e.A].Pos, f.Particles[e.B].Pos
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke-opacity="%.3f"/>
`, a.X, a.Y, c.X, c.Y, e.Alpha))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf(`<g fill-opacity="%.2f">
`, palette.ParticleAlpha))
	for _, pt := range f.Particles {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s"/>
`, pt.Pos.X, pt.Pos.Y, pt.Radius, p.Particle(pt.Hue).Hex()))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// WriteFrameSVG writes FrameToSVG output to path.
func WriteFrameSVG(path string, f constellation.Frame, b constellation.Bounds, p palette.Palette) error {
	if err := os.WriteFile(path, []byte(FrameToSVG(f, b, p)), 0644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#9fd8ff">
`, width, height, width, height))

	dotRadius := scale * 0.4

	for y := 0; y < canvas.DotsH(); y++ {
		for x := 0; x < canvas.DotsW(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			level := canvas.Level[y/4][x/2]
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill-opacity="%.2f"/>
`, cx, cy, dotRadius, level))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
