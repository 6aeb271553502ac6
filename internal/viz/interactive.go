package viz

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/constellation/internal/config"
)

var presetInfo = map[string]string{
	"interactive": "click, drag and reset",
	"hero":        "passive page background",
	"sparse":      "few stars, long links",
	"dense":       "crowded, short links",
	"still":       "one frame, no motion",
}

// launcherParams are the knobs offered before a run starts.
var launcherParams = []string{"connect_distance", "max_connections", "density", "base_speed", "spawn_batch"}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

var (
	menuTitle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuIdleSub = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	menuKey     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// launcher picks a preset, tunes a few parameters and then hands the
// terminal to a live Model.
type launcher struct {
	state, cursor int
	presets       []string
	cfg           *config.Config
	paramCursor   int
	editing       bool
	editBuf       string
	err           string
	seed          int64
	width, height int
	liveModel     Model
}

// NewLauncher returns the preset menu. A zero seed picks one from the clock.
func NewLauncher(seed int64) *launcher {
	return &launcher{
		state:   stateMenu,
		presets: config.ListPresets(),
		seed:    seed,
	}
}

func (m launcher) Init() tea.Cmd { return nil }

func (m launcher) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	if m.state == stateSim {
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m launcher) handleKey(msg tea.KeyMsg) (launcher, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m launcher) menuKey(msg tea.KeyMsg) (launcher, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		cfg, err := config.GetPreset(m.presets[m.cursor])
		if err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.cfg = cfg
		m.state, m.paramCursor, m.err = stateConfig, 0, ""
	}
	return m, nil
}

func (m launcher) configKey(msg tea.KeyMsg) (launcher, tea.Cmd) {
	name := launcherParams[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			m.editing = false
			val, err := strconv.ParseFloat(m.editBuf, 64)
			if err != nil {
				m.err = fmt.Sprintf("%s: not a number", name)
			} else {
				m.setParam(name, val)
			}
			m.editBuf = ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	cur, _ := m.cfg.Param(name)
	switch msg.String() {
	case "q", "esc":
		m.state, m.err = stateMenu, ""
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(launcherParams)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, strconv.FormatFloat(cur, 'g', -1, 64)
	case "s":
		cmd := m.start()
		return m, cmd
	case "left", "h":
		m.setParam(name, nudge(name, cur, -1))
	case "right", "l":
		m.setParam(name, nudge(name, cur, 1))
	}
	return m, nil
}

// nudge moves integer parameters by one and real ones by ten percent.
func nudge(name string, v float64, dir int) float64 {
	switch name {
	case "max_connections", "spawn_batch":
		return v + float64(dir)
	}
	if dir < 0 {
		return v / 1.1
	}
	return v * 1.1
}

// setParam applies a value only if the result still validates.
func (m *launcher) setParam(name string, v float64) {
	next := m.cfg.Clone()
	if err := next.SetParam(name, v); err != nil {
		m.err = err.Error()
		return
	}
	if err := next.Validate(); err != nil {
		m.err = err.Error()
		return
	}
	m.cfg, m.err = next, ""
}

func (m *launcher) start() tea.Cmd {
	seed := m.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m.liveModel = NewModel(m.cfg, rand.New(rand.NewSource(seed)))
	m.state = stateSim
	cmd := m.liveModel.Init()
	if m.width > 0 {
		newLive, _ := m.liveModel.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.liveModel = newLive.(Model)
	}
	return cmd
}

func (m launcher) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

func (m launcher) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("CONSTELLATION") + "\n    " + menuSub.Render("ambient particle network") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-14s", name)), menuDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-14s", name)), menuIdleSub.Render(desc)))
		}
	}
	if m.err != "" {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(ThemeNight.Error).Render(m.err) + "\n")
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuIdle.Render(" navigate  ") + menuKey.Render("enter") + menuIdle.Render(" select  ") + menuKey.Render("q") + menuIdle.Render(" quit") + "\n")
	return b.String()
}

func (m launcher) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(m.presets[m.cursor])) + "\n    " + menuSub.Render(presetInfo[m.presets[m.cursor]]) + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range launcherParams {
		val, _ := m.cfg.Param(name)
		valStr := fmt.Sprintf("%10.4g", val)
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%10s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-18s", name)), menuDesc.Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", menuIdle.Render(fmt.Sprintf("  %-18s", name)), menuIdleSub.Render(valStr)))
		}
	}
	if m.err != "" {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(ThemeNight.Error).Render(m.err) + "\n")
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuIdle.Render(" select  ") + menuKey.Render("h/l") + menuIdle.Render(" adjust  ") + menuKey.Render("enter") + menuIdle.Render(" edit  ") + menuKey.Render("s") + menuIdle.Render(" start  ") + menuKey.Render("esc") + menuIdle.Render(" back") + "\n")
	return b.String()
}

// RunLauncher starts the preset menu full-screen.
func RunLauncher(seed int64) error {
	_, err := tea.NewProgram(NewLauncher(seed), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
