// Package gui provides a native desktop plotter using Fyne.
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"

	"grapher/pkg/api"
	"grapher/pkg/plot"
)

// panStep is the pixel distance an arrow key pans by.
const panStep = 20

// App represents the plotter application.
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	plot       *api.Plot

	// UI components
	viewer  *PlotViewer
	toolbar *Toolbar
	status  *StatusBar
}

// NewApp creates a plotter window for p.
func NewApp(p *api.Plot) *App {
	return NewAppWith(app.New(), p)
}

// NewAppWith creates the plotter on an existing Fyne app, such as the one
// from fyne.io/fyne/v2/test.
func NewAppWith(fyneApp fyne.App, p *api.Plot) *App {
	a := &App{
		fyneApp: fyneApp,
		plot:    p,
	}

	a.fyneApp.Settings().SetTheme(theme.LightTheme())
	a.mainWindow = a.fyneApp.NewWindow("Grapher")
	opts := p.Options()
	a.mainWindow.Resize(fyne.NewSize(float32(opts.Width), float32(opts.Height)+80))

	a.buildUI()
	return a
}

// Run shows the window and blocks until it is closed.
func (a *App) Run() {
	a.Plot(a.plot.Source())
	a.mainWindow.ShowAndRun()
}

// Window returns the main window.
func (a *App) Window() fyne.Window {
	return a.mainWindow
}

// Viewer returns the plot widget.
func (a *App) Viewer() *PlotViewer {
	return a.viewer
}

// buildUI constructs the user interface.
func (a *App) buildUI() {
	a.viewer = NewPlotViewer(a.plot)
	a.toolbar = NewToolbar()
	a.status = NewStatusBar()

	a.toolbar.SetText(a.plot.Source())
	a.toolbar.OnPlot = a.Plot
	a.toolbar.OnZoomIn = func() { a.viewer.Do((*plot.Controller).ZoomIn) }
	a.toolbar.OnZoomOut = func() { a.viewer.Do((*plot.Controller).ZoomOut) }
	a.toolbar.OnReset = func() { a.viewer.Do((*plot.Controller).Reset) }

	a.viewer.OnCursor = a.status.SetCursor
	a.viewer.OnViewChange = a.status.SetWindow
	a.viewer.OnError = func(err error) { a.status.SetStatus(err.Error()) }
	a.plot.Controller().Notify = a.showError
	a.status.SetWindow(*a.plot.Viewport())

	content := container.NewBorder(
		container.NewPadded(a.toolbar.Container()),
		a.status.Container(),
		nil,
		nil,
		a.viewer,
	)

	a.mainWindow.SetContent(content)

	// Set up keyboard shortcuts
	a.mainWindow.Canvas().SetOnTypedKey(a.handleKey)
}

// Plot compiles source and redraws. Compile errors are shown in a dialog
// and leave the previous plot on screen.
func (a *App) Plot(source string) {
	if err := a.viewer.Plot(source); err != nil {
		a.status.SetStatus("Error")
		return
	}
	a.status.SetStatus("Plotted " + source)
	a.status.SetWindow(*a.plot.Viewport())
}

// handleKey handles keyboard zoom and pan.
func (a *App) handleKey(key *fyne.KeyEvent) {
	switch key.Name {
	case fyne.KeyPlus, fyne.KeyEqual:
		a.viewer.Do((*plot.Controller).ZoomIn)
	case fyne.KeyMinus:
		a.viewer.Do((*plot.Controller).ZoomOut)
	case fyne.KeyHome, fyne.KeyR:
		a.viewer.Do((*plot.Controller).Reset)
	case fyne.KeyLeft:
		a.pan(panStep, 0)
	case fyne.KeyRight:
		a.pan(-panStep, 0)
	case fyne.KeyUp:
		a.pan(0, panStep)
	case fyne.KeyDown:
		a.pan(0, -panStep)
	}
}

// pan moves the view as if the plot were dragged by (dx, dy).
func (a *App) pan(dx, dy float64) {
	a.viewer.Do(func(c *plot.Controller) error {
		return c.PanBy(dx, dy)
	})
}

func (a *App) showError(err error) {
	dialog.ShowError(err, a.mainWindow)
}
