package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"

	"github.com/charmbracelet/lipgloss"
)

const (
	gifCellW = 8
	gifCellH = 16
	// maxGIFFrames bounds memory while recording.
	maxGIFFrames = 1800
)

type gifFrames struct {
	images []*image.Paletted
}

func themePalette(t Theme) color.Palette {
	conv := func(c lipgloss.Color) color.Color {
		r, g, b := parseColor(c).Clamped().RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return color.Palette{conv(t.Background), conv(t.Muted), conv(t.Secondary), conv(t.Primary)}
}

// capture rasterizes the canvas, one 4x4 block per braille dot, colored by
// cell level.
func (g *gifFrames) capture(c *Canvas, t Theme) {
	if len(g.images) >= maxGIFFrames {
		return
	}
	img := image.NewPaletted(image.Rect(0, 0, c.Width*gifCellW, c.Height*gifCellH), themePalette(t))
	dotW, dotH := gifCellW/2, gifCellH/4

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r := c.Grid[row][col]
			if r == blank {
				continue
			}
			idx := uint8(band(c.Level[row][col]) + 1)
			pattern := int(r - blank)
			baseX, baseY := col*gifCellW, row*gifCellH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, idx)
						}
					}
				}
			}
		}
	}
	g.images = append(g.images, img)
}

// save writes the captured frames as a looping GIF. Nothing is written when
// no frames were captured.
func (g *gifFrames) save(path string) error {
	if len(g.images) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range g.images {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
