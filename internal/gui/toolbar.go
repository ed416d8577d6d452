package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"grapher/pkg/plot"
)

// Toolbar holds the expression entry and the zoom controls.
type Toolbar struct {
	container *fyne.Container

	OnPlot    func(source string)
	OnZoomIn  func()
	OnZoomOut func()
	OnReset   func()

	entry   *widget.Entry
	plotBtn *widget.Button
}

// NewToolbar creates a new toolbar.
func NewToolbar() *Toolbar {
	t := &Toolbar{}
	t.build()
	return t
}

func (t *Toolbar) build() {
	t.entry = widget.NewEntry()
	t.entry.SetPlaceHolder("f(x), e.g. sin(x) * x")
	t.entry.OnSubmitted = func(string) { t.submit() }

	t.plotBtn = widget.NewButtonWithIcon("Plot", theme.MediaPlayIcon(), t.submit)

	zoomOutBtn := widget.NewButtonWithIcon("", theme.ZoomOutIcon(), func() {
		if t.OnZoomOut != nil {
			t.OnZoomOut()
		}
	})

	zoomInBtn := widget.NewButtonWithIcon("", theme.ZoomInIcon(), func() {
		if t.OnZoomIn != nil {
			t.OnZoomIn()
		}
	})

	resetBtn := widget.NewButtonWithIcon("", theme.ViewRestoreIcon(), func() {
		if t.OnReset != nil {
			t.OnReset()
		}
	})

	buttons := container.NewHBox(
		t.plotBtn,
		widget.NewSeparator(),
		zoomOutBtn,
		zoomInBtn,
		resetBtn,
	)
	t.container = container.NewBorder(nil, nil, widget.NewLabel("y ="), buttons, t.entry)
}

func (t *Toolbar) submit() {
	if t.OnPlot != nil {
		t.OnPlot(t.entry.Text)
	}
}

// Container returns the toolbar container.
func (t *Toolbar) Container() *fyne.Container {
	return t.container
}

// Text returns the expression in the entry.
func (t *Toolbar) Text() string {
	return t.entry.Text
}

// SetText replaces the expression in the entry.
func (t *Toolbar) SetText(s string) {
	t.entry.SetText(s)
}

// StatusBar shows the last message, the window and the cursor position.
type StatusBar struct {
	container   *fyne.Container
	label       *widget.Label
	windowLabel *widget.Label
	cursorLabel *widget.Label
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	s := &StatusBar{
		label:       widget.NewLabel("Ready"),
		windowLabel: widget.NewLabel(""),
		cursorLabel: widget.NewLabel(""),
	}

	s.container = container.NewHBox(
		s.label,
		widget.NewSeparator(),
		s.windowLabel,
		widget.NewSeparator(),
		s.cursorLabel,
	)

	return s
}

// Container returns the status bar container.
func (s *StatusBar) Container() *fyne.Container {
	return s.container
}

// SetStatus sets the status message.
func (s *StatusBar) SetStatus(msg string) {
	s.label.SetText(msg)
}

// SetWindow shows the current world rectangle.
func (s *StatusBar) SetWindow(v plot.Viewport) {
	s.windowLabel.SetText(fmt.Sprintf("x [%.4g, %.4g]  y [%.4g, %.4g]", v.XMin, v.XMax, v.YMin, v.YMax))
}

// SetCursor shows the world point under the mouse.
func (s *StatusBar) SetCursor(x, y float64, ok bool) {
	if !ok {
		s.cursorLabel.SetText("")
		return
	}
	s.cursorLabel.SetText(fmt.Sprintf("(%.4f, %.4f)", x, y))
}
