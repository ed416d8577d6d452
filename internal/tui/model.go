package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"grapher/pkg/api"
	"grapher/pkg/expression"
	"grapher/pkg/plot"
)

// panDots is the distance an arrow key pans by, in braille dots.
const panDots = 8

// chromeRows is the number of terminal rows outside the plot: title,
// input, status and help.
const chromeRows = 4

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5A56E0"))

	windowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A0A0A0"))
)

// session is the state shared by every copy of the Model.
type session struct {
	viewport   *plot.Viewport
	surface    *Braille
	controller *plot.Controller
	source     string
	notice     error
}

// Model represents the TUI application state
type Model struct {
	// Window dimensions
	width  int
	height int

	s *session

	input    textinput.Model
	editing  bool
	keys     KeyMap
	help     help.Model
	status   string
	quitting bool
}

// NewModel creates a model plotting source with the window, style and zoom
// factor of opts. Size comes from the terminal.
func NewModel(source string, opts api.Options) Model {
	v := opts.Window
	s := &session{
		viewport: &v,
		surface:  NewBraille(80, 20),
		source:   source,
	}
	r := &plot.Renderer{Style: opts.Style}
	s.controller = plot.NewController(s.viewport, r, s.surface, func() string { return s.source })
	s.controller.ZoomFactor = opts.ZoomFactor
	s.controller.Notify = func(err error) { s.notice = err }

	input := textinput.New()
	input.Placeholder = "sin(x) * x"
	input.Prompt = "y = "
	input.CharLimit = 256
	input.Width = 60
	input.SetValue(source)

	return Model{
		width:  80,
		height: 20 + chromeRows,
		s:      s,
		input:  input,
		keys:   DefaultKeyMap,
		help:   help.New(),
	}
}

// Run starts the terminal UI and blocks until the user quits.
func Run(source string, opts api.Options) error {
	p := tea.NewProgram(NewModel(source, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init draws the first frame.
func (m Model) Init() tea.Cmd {
	m.redraw(m.s.controller.Redraw())
	return textinput.Blink
}

// Update handles terminal events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-len(m.input.Prompt)-2, 10)
		m.s.surface.Resize(msg.Width, max(msg.Height-chromeRows, 1))
		m.status = m.redraw(m.s.controller.Redraw())
		return m, nil

	case tea.MouseMsg:
		m.status = m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		prev := m.s.source
		m.s.source = m.input.Value()
		m.status = m.redraw(m.s.controller.Redraw())
		if m.s.notice != nil {
			// keep panning and zooming the last good expression
			m.s.source = prev
			return m, nil
		}
		m.editing = false
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		m.input.Blur()
		m.input.SetValue(m.s.source)
		return m, nil
	case msg.Type == tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.s.controller
	var err error
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		m.editing = true
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.ZoomIn):
		err = c.ZoomIn()
	case key.Matches(msg, m.keys.ZoomOut):
		err = c.ZoomOut()
	case key.Matches(msg, m.keys.Reset):
		err = c.Reset()
	case key.Matches(msg, m.keys.Left):
		err = c.PanBy(panDots, 0)
	case key.Matches(msg, m.keys.Right):
		err = c.PanBy(-panDots, 0)
	case key.Matches(msg, m.keys.Up):
		err = c.PanBy(0, panDots)
	case key.Matches(msg, m.keys.Down):
		err = c.PanBy(0, -panDots)
	default:
		return m, nil
	}
	m.status = m.redraw(err)
	return m, nil
}

// handleMouse maps a cell event onto the dot at the cell's center. The
// plot starts on the second terminal row.
func (m Model) handleMouse(msg tea.MouseMsg) string {
	c := m.s.controller
	x := float64(msg.X*dotsX) + dotsX/2
	y := float64((msg.Y-1)*dotsY) + dotsY/2

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return m.redraw(c.Wheel(plot.WheelEvent{X: x, Y: y, DeltaY: -1}))
	case msg.Button == tea.MouseButtonWheelDown:
		return m.redraw(c.Wheel(plot.WheelEvent{X: x, Y: y, DeltaY: 1}))
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		c.PointerDown(x, y)
	case msg.Action == tea.MouseActionMotion:
		return m.redraw(c.PointerMove(x, y))
	case msg.Action == tea.MouseActionRelease:
		c.PointerUp()
	}
	return m.cursorText()
}

// redraw turns the result of a controller call into a status line.
func (m Model) redraw(err error) string {
	var ce *expression.CompileError
	switch {
	case errors.As(err, &ce):
		return ""
	case err != nil:
		return err.Error()
	}
	m.s.notice = nil
	return m.cursorText()
}

func (m Model) cursorText() string {
	if x, y, ok := m.s.controller.Cursor(); ok {
		return fmt.Sprintf("(%.4f, %.4f)", x, y)
	}
	return ""
}

// View renders the title, plot, input line, status and help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	v := m.s.viewport
	title := titleStyle.Render("grapher") + " " +
		windowStyle.Render(fmt.Sprintf("x [%.4g, %.4g]  y [%.4g, %.4g]", v.XMin, v.XMax, v.YMin, v.YMax))

	status := statusStyle.Render(m.status)
	if m.s.notice != nil {
		status = errorStyle.Render(m.s.notice.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.s.surface.Render(),
		m.input.View(),
		status,
		m.help.View(m.keys),
	)
}
