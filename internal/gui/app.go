package gui

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/san-kum/constellation/internal/config"
	"github.com/san-kum/constellation/internal/constellation"
	"github.com/san-kum/constellation/internal/geom"
	"github.com/san-kum/constellation/internal/palette"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720
	maxTelemetry  = 240
)

// ColAccent draws the telemetry strip.
var ColAccent = color.RGBA{180, 180, 180, 255}

// errQuit ends the game loop without reporting a failure.
var errQuit = errors.New("quit")

// controls is the input sampled once per tick.
type controls struct {
	pointer     geom.Vec2
	pressed     bool
	justPressed bool
	reset       bool
	pause       bool
	hud         bool
	quit        bool
}

func readControls() controls {
	mx, my := ebiten.CursorPosition()
	return controls{
		pointer:     geom.V(float64(mx), float64(my)),
		pressed:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		justPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		reset:       inpututil.IsKeyJustPressed(ebiten.KeyR),
		pause:       inpututil.IsKeyJustPressed(ebiten.KeySpace),
		hud:         inpututil.IsKeyJustPressed(ebiten.KeyH),
		quit:        inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
}

// App is an ebiten.Game hosting one engine. Drawing accumulates on an
// offscreen image that is partly erased each frame, which produces trails.
type App struct {
	cfg    *config.Config
	engine *constellation.Engine
	pal    palette.Palette
	log    *slog.Logger

	width, height int
	canvas        *ebiten.Image
	eraser        *ebiten.Image

	frame   constellation.Frame
	dirty   bool
	running bool
	frozen  bool
	showHUD bool
	pointer geom.Vec2
	engaged bool

	Telemetry []float64
}

// NewApp creates the game for a window of w x h pixels.
func NewApp(cfg *config.Config, rng constellation.Rand, w, h int, log *slog.Logger) *App {
	return &App{
		cfg:       cfg,
		engine:    constellation.NewEngine(cfg.Params(), rng, constellation.Bounds{W: float64(w), H: float64(h)}),
		pal:       palette.For(cfg.Variant),
		log:       log,
		width:     w,
		height:    h,
		running:   true,
		Telemetry: make([]float64, 0, maxTelemetry),
	}
}

func (a *App) Engine() *constellation.Engine { return a.engine }

func (a *App) Update() error {
	if err := a.apply(readControls()); err != nil {
		return err
	}
	a.advance()
	return nil
}

// apply handles one tick of input. Only the interactive variant reacts to
// anything besides quitting.
func (a *App) apply(c controls) error {
	if c.quit {
		return errQuit
	}
	if !a.cfg.Interactive() {
		return nil
	}

	a.pointer = c.pointer
	a.engaged = c.pressed
	if c.justPressed {
		a.engine.Click(c.pointer)
	}
	if c.reset {
		a.engine.Reset()
		a.clearCanvas()
		a.log.Debug("window reset")
	}
	if c.pause {
		a.running = !a.running
	}
	if c.hud {
		a.showHUD = !a.showHUD
	}
	return nil
}

// advance runs one engine frame unless paused or frozen. Reduced motion
// freezes after the first frame.
func (a *App) advance() {
	if !a.running || a.frozen {
		return
	}
	a.frame = a.engine.Frame(constellation.Input{Pointer: a.pointer, Engaged: a.engaged})
	a.dirty = true

	if len(a.Telemetry) == maxTelemetry {
		copy(a.Telemetry, a.Telemetry[1:])
		a.Telemetry = a.Telemetry[:maxTelemetry-1]
	}
	a.Telemetry = append(a.Telemetry, float64(len(a.frame.Edges)))

	if a.cfg.Render.ReducedMotion {
		a.frozen = true
	}
}

// Layout follows the window size. A size change resizes the engine and
// drops the trail buffer; a frozen scene is redrawn once at the new size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		a.engine.OnResize(constellation.Bounds{W: float64(outsideWidth), H: float64(outsideHeight)})
		if a.canvas != nil {
			a.canvas.Deallocate()
			a.canvas = nil
		}
		if a.frozen {
			a.frozen = false
			a.advance()
		}
	}
	return a.width, a.height
}

func (a *App) clearCanvas() {
	if a.canvas != nil {
		a.canvas.Clear()
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.canvas == nil {
		a.canvas = ebiten.NewImage(a.width, a.height)
		a.dirty = a.frame.Index > 0
	}
	if a.dirty {
		a.fade(a.canvas)
		drawFrame(a.canvas, a.frame, a.pal)
		a.dirty = false
	}

	screen.Fill(palette.RGBA(a.pal.Background, 1))
	screen.DrawImage(a.canvas, nil)

	if a.showHUD {
		a.drawHUD(screen)
	}
}

func (a *App) drawHUD(screen *ebiten.Image) {
	status := "RUNNING"
	switch {
	case a.frozen:
		status = "STILL"
	case !a.running:
		status = "PAUSED"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("constellation :: %s  %s", a.cfg.Variant, status), 20, 20)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("particles %d/%d  edges %d  %.0f FPS",
		len(a.frame.Particles), a.frame.Target, len(a.frame.Edges), ebiten.ActualFPS()), 20, 36)
	ebitenutil.DebugPrintAt(screen, "[CLICK] BURST  [DRAG] ATTRACT  [R] RESET  [SPACE] PAUSE  [H] HUD  [Q] QUIT", 20, a.height-24)
	a.drawTelemetry(screen)
}

// Run opens a resizable window and blocks until it is closed.
func Run(cfg *config.Config, rng constellation.Rand, log *slog.Logger) error {
	ebiten.SetWindowSize(DefaultWidth, DefaultHeight)
	ebiten.SetWindowTitle("constellation")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)

	app := NewApp(cfg, rng, DefaultWidth, DefaultHeight, log)
	log.Info("window opened", "variant", cfg.Variant, "engine", app.engine.ID())
	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}
