package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/constellation/internal/constellation"
	"github.com/san-kum/constellation/internal/palette"
)

// fade erases part of the previous frame. Interactive paints a translucent
// background over it; hero cuts alpha out so the page behind shows through.
func (a *App) fade(dst *ebiten.Image) {
	amount := a.cfg.FadePerFrame()
	if amount <= 0 || amount >= 1 {
		dst.Clear()
		return
	}

	if a.cfg.Interactive() {
		w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
		vector.DrawFilledRect(dst, 0, 0, float32(w), float32(h), palette.RGBA(a.pal.Background, amount), false)
		return
	}

	if a.eraser == nil {
		a.eraser = ebiten.NewImage(1, 1)
		a.eraser.Fill(palette.RGBA(a.pal.Edge, 1))
	}
	op := &ebiten.DrawImageOptions{Blend: ebiten.BlendDestinationOut}
	op.GeoM.Scale(float64(dst.Bounds().Dx()), float64(dst.Bounds().Dy()))
	op.ColorScale.ScaleAlpha(float32(amount))
	dst.DrawImage(a.eraser, op)
}

// drawFrame strokes edges then fills particles on top.
func drawFrame(dst *ebiten.Image, f constellation.Frame, pal palette.Palette) {
	for _, e := range f.Edges {
		pa, pb := f.Particles[e.A].Pos, f.Particles[e.B].Pos
		vector.StrokeLine(dst, float32(pa.X), float32(pa.Y), float32(pb.X), float32(pb.Y),
			float32(pal.LineWidth), palette.RGBA(pal.Edge, e.Alpha), true)
	}
	for _, p := range f.Particles {
		vector.DrawFilledCircle(dst, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Radius),
			palette.RGBA(pal.Particle(p.Hue), palette.ParticleAlpha), true)
	}
}

// drawTelemetry plots the recent edge counts as a line strip.
func (a *App) drawTelemetry(screen *ebiten.Image) {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := float32(20), float32(a.height-100)
	width, height := float32(300), float32(50)

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	n := float32(len(a.Telemetry))
	point := func(i int) (float32, float32) {
		norm := float32((a.Telemetry[i] - minVal) / (maxVal - minVal))
		return rectX + float32(i)/n*width, rectY + height - norm*height
	}
	for i := 1; i < len(a.Telemetry); i++ {
		x0, y0 := point(i - 1)
		x1, y1 := point(i)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, ColAccent, true)
	}
}
