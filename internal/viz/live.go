package viz

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/constellation/internal/config"
	"github.com/san-kum/constellation/internal/constellation"
	"github.com/san-kum/constellation/internal/geom"
	"github.com/san-kum/constellation/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 120
	statsWidth      = 44
	chromeRows      = 2
)

var (
	statsStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 1).Width(statsWidth - 1)
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type TickMsg time.Time

func tick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the terminal host for one engine. The canvas fills the terminal
// above a status line; in interactive mode the stats panel takes a column on
// the right.
type Model struct {
	cfg    *config.Config
	engine *constellation.Engine
	canvas *Canvas
	theme  Theme
	log    *slog.Logger

	width, height int
	cols, rows    int

	pointer geom.Vec2
	engaged bool
	running bool
	frozen  bool

	showStats bool
	showHelp  bool
	recording bool
	frames    gifFrames
	GIFPath   string
	message   string

	last        sim.FrameStats
	popHistory  []float64
	edgeHistory []float64
}

// NewModel builds a model for cfg. The engine starts at a default terminal
// size and is resized on the first WindowSizeMsg.
func NewModel(cfg *config.Config, rng constellation.Rand) Model {
	m := Model{
		cfg:         cfg,
		theme:       GetTheme(cfg.Render.Theme),
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		width:       width,
		height:      height,
		running:     true,
		GIFPath:     "constellation.gif",
		popHistory:  make([]float64, 0, historyCapacity),
		edgeHistory: make([]float64, 0, historyCapacity),
	}
	m.cols, m.rows = m.canvasSize()
	m.canvas = NewCanvas(m.cols, m.rows)
	m.engine = constellation.NewEngine(cfg.Params(), rng, BoundsFor(m.cols, m.rows))
	return m
}

// WithLogger sets the logger used for user-visible events such as saved
// recordings.
func (m Model) WithLogger(l *slog.Logger) Model {
	m.log = l
	return m
}

func (m Model) Engine() *constellation.Engine { return m.engine }
func (m Model) Canvas() *Canvas               { return m.canvas }
func (m Model) Engaged() bool                 { return m.engaged }
func (m Model) Pointer() geom.Vec2            { return m.pointer }
func (m Model) Running() bool                 { return m.running }
func (m Model) Frozen() bool                  { return m.frozen }

func (m Model) Init() tea.Cmd {
	return tick(m.cfg.FPS)
}

func (m Model) canvasSize() (int, int) {
	cols, rows := m.width, m.height-chromeRows
	if m.showStats {
		cols -= statsWidth
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// relayout resizes the canvas and the engine viewport when the available
// area changed.
func (m *Model) relayout() {
	cols, rows := m.canvasSize()
	if cols == m.cols && rows == m.rows {
		return
	}
	m.cols, m.rows = cols, rows
	m.canvas = NewCanvas(cols, rows)
	m.engine.OnResize(BoundsFor(cols, rows))
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.relayout()
		if m.frozen {
			m.step()
		}
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if m.cfg.Interactive() {
			m.handleMouse(msg)
		}
	case TickMsg:
		if m.frozen {
			return m, nil
		}
		if m.running {
			m.step()
		}
		if m.cfg.Render.ReducedMotion {
			m.frozen = true
			return m, nil
		}
		return m, tick(m.cfg.FPS)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.recording {
			m.stopRecording()
		}
		return m, tea.Quit
	}
	if !m.cfg.Interactive() {
		return m, nil
	}

	switch msg.String() {
	case " ":
		m.running = !m.running
	case "r", "R":
		m.engine.Reset()
		m.canvas.Clear()
		m.message = "reset"
	case "tab":
		m.showStats = !m.showStats
		m.relayout()
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.message = "theme " + m.theme.Name
	case "g":
		if m.recording {
			m.stopRecording()
		} else {
			m.recording = true
			m.frames = gifFrames{}
			m.message = "recording"
		}
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.X >= m.cols || msg.Y >= m.rows {
		if msg.Action == tea.MouseActionRelease {
			m.engaged = false
		}
		return
	}
	m.pointer = CellToPixel(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.engaged = true
		m.engine.Click(m.pointer)
	case tea.MouseActionRelease:
		m.engaged = false
	}
}

// step runs one engine frame and redraws the canvas.
func (m *Model) step() {
	f := m.engine.Frame(constellation.Input{Pointer: m.pointer, Engaged: m.engaged})
	m.canvas.Fade(m.cfg.FadePerFrame())
	DrawFrame(m.canvas, f, m.cfg.MaxAlpha)

	m.last = sim.Collect(f, m.cfg.MaxConnections)
	m.popHistory = pushHistory(m.popHistory, float64(m.last.Population))
	m.edgeHistory = pushHistory(m.edgeHistory, float64(m.last.Edges))

	if m.recording {
		m.frames.capture(m.canvas, m.theme)
	}
}

func (m *Model) stopRecording() {
	m.recording = false
	n := len(m.frames.images)
	if err := m.frames.save(m.GIFPath); err != nil {
		m.message = "gif: " + err.Error()
		m.log.Error("save gif", "path", m.GIFPath, "err", err)
	} else if n > 0 {
		m.message = fmt.Sprintf("saved %s (%d frames)", m.GIFPath, n)
		m.log.Info("saved gif", "path", m.GIFPath, "frames", n)
	}
	m.frames = gifFrames{}
}

func pushHistory(h []float64, v float64) []float64 {
	if len(h) == historyCapacity {
		copy(h, h[1:])
		h = h[:len(h)-1]
	}
	return append(h, v)
}

// View renders the TUI interface.
func (m Model) View() string {
	bg := lipgloss.NewStyle().Background(m.theme.Background)
	canvasView := RenderCanvas(m.canvas, m.theme)
	if m.showStats {
		canvasView = lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.viewStats())
	}

	view := canvasView + m.viewStatus()
	if m.showHelp {
		view = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, GlassPanel.Render(helpText))
	}
	return bg.Render(view)
}

func (m Model) viewStatus() string {
	status := StatusRunning.Render("RUNNING")
	switch {
	case m.frozen:
		status = StatusPaused.Render("STILL")
	case !m.running:
		status = StatusPaused.Render("PAUSED")
	}
	if m.recording {
		status += " " + StatusRecording.Render("● REC")
	}

	line := fmt.Sprintf("%s  %s %d/%d  %s %d", status,
		Subtle.Render("particles"), m.last.Population, m.last.Target,
		Subtle.Render("edges"), m.last.Edges)
	if m.message != "" {
		line += "  " + Subtle.Render(m.message)
	}

	hint := "q quit"
	if m.cfg.Interactive() {
		hint = "click burst · drag attract · r reset · tab stats · t theme · space pause · g gif · ? help · q quit"
	}
	return line + "\n" + KeyHint.Render(hint)
}

func (m Model) viewStats() string {
	var s strings.Builder
	s.WriteString(GradientText("CONSTELLATION", m.theme.Primary, m.theme.Secondary) + "\n\n")

	if len(m.popHistory) > 1 {
		s.WriteString(graphStyle.Render(asciigraph.Plot(m.popHistory,
			asciigraph.Height(4), asciigraph.Width(statsWidth-12), asciigraph.Caption("particles"))) + "\n\n")
		s.WriteString(graphStyle.Render(asciigraph.Plot(m.edgeHistory,
			asciigraph.Height(4), asciigraph.Width(statsWidth-12), asciigraph.Caption("edges"))) + "\n\n")
	}

	fill := 0.0
	if m.last.Target > 0 {
		fill = float64(m.last.Population) / float64(m.last.Target)
	}
	s.WriteString(MetricLabel.Render("Population") + ProgressBar(fill, 16) + "\n")
	s.WriteString(MetricLabel.Render("Frame") + MetricValue.Render(fmt.Sprintf("%d", m.last.Index)) + "\n")
	s.WriteString(MetricLabel.Render("Saturated") + MetricValue.Render(fmt.Sprintf("%d", m.last.Saturated)) + "\n")
	s.WriteString(MetricLabel.Render("Mean alpha") + MetricValue.Render(fmt.Sprintf("%.3f", m.last.MeanAlpha)) + "\n")
	s.WriteString(MetricLabel.Render("Max speed") + MetricValue.Render(fmt.Sprintf("%.2f", m.last.MaxSpeed)) + "\n")
	s.WriteString(MetricLabel.Render("Theme") + MetricValue.Render(m.theme.Name) + "\n")
	if m.engaged {
		s.WriteString(MetricLabel.Render("Pointer") + MetricValue.Render(fmt.Sprintf("%.0f,%.0f", m.pointer.X, m.pointer.Y)) + "\n")
	}
	return statsStyle.Render(s.String())
}

const helpText = `KEYBOARD AND MOUSE

Click    Spawn a burst at the pointer
Drag     Attract nearby particles
R        Reset to a fresh field
Tab      Toggle stats panel
T        Cycle themes
Space    Pause/Resume
G        Toggle GIF recording
?        Toggle this help
Q        Quit`

// Run starts a full-screen program for cfg. Mouse events are only requested
// for the interactive variant.
func Run(cfg *config.Config, rng constellation.Rand, log *slog.Logger) error {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Interactive() {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	m := NewModel(cfg, rng).WithLogger(log)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
