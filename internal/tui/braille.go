// Package tui is a terminal front end that draws plots with braille dots.
package tui

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"grapher/pkg/font"
	"grapher/pkg/graphics"
	pathpkg "grapher/pkg/path"
	"grapher/pkg/plot"
)

const (
	dotsX = 2
	dotsY = 4

	brailleBase = 0x2800
)

// dotBits maps a dot position inside a cell to its braille bit.
var dotBits = [dotsY][dotsX]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

type cell struct {
	dots  uint8
	color string
	text  rune
	tint  string
}

// Braille is a plot.Surface that maps every terminal cell to a 2x4 grid
// of braille dots. Line widths and fonts are ignored: lines are one dot
// wide and text takes one cell per rune.
type Braille struct {
	cols, rows int
	cells      []cell

	path   *graphics.Path
	stroke string
	fill   string
}

var _ plot.Surface = (*Braille)(nil)

// NewBraille creates a surface of cols x rows terminal cells.
func NewBraille(cols, rows int) *Braille {
	b := &Braille{path: graphics.NewPath(), stroke: "#000000", fill: "#000000"}
	b.Resize(cols, rows)
	return b
}

// Resize changes the cell grid and clears it.
func (b *Braille) Resize(cols, rows int) {
	b.cols, b.rows = max(cols, 0), max(rows, 0)
	b.cells = make([]cell, b.cols*b.rows)
}

// Cols returns the width in cells.
func (b *Braille) Cols() int { return b.cols }

// Rows returns the height in cells.
func (b *Braille) Rows() int { return b.rows }

// Width returns the width in dots.
func (b *Braille) Width() int { return b.cols * dotsX }

// Height returns the height in dots.
func (b *Braille) Height() int { return b.rows * dotsY }

// ClearRect clears the dots in a rectangle and the text of every cell it
// fully covers.
func (b *Braille) ClearRect(x, y, w, h float64) {
	x0, y0 := clampInt(int(math.Floor(x)), 0, b.Width()), clampInt(int(math.Floor(y)), 0, b.Height())
	x1, y1 := clampInt(int(math.Ceil(x+w)), 0, b.Width()), clampInt(int(math.Ceil(y+h)), 0, b.Height())
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c := &b.cells[(py/dotsY)*b.cols+px/dotsX]
			c.dots &^= dotBits[py%dotsY][px%dotsX]
			if c.dots == 0 {
				c.color = ""
			}
		}
	}
	for row := (y0 + dotsY - 1) / dotsY; row < y1/dotsY; row++ {
		for col := (x0 + dotsX - 1) / dotsX; col < x1/dotsX; col++ {
			c := &b.cells[row*b.cols+col]
			c.text, c.tint = 0, ""
		}
	}
}

// BeginPath discards the current path.
func (b *Braille) BeginPath() {
	b.path = graphics.NewPath()
}

// MoveTo starts a new subpath.
func (b *Braille) MoveTo(x, y float64) {
	b.path.MoveTo(x, y)
}

// LineTo extends the current subpath.
func (b *Braille) LineTo(x, y float64) {
	b.path.LineTo(x, y)
}

// Stroke sets the dots along every segment of the current path.
func (b *Braille) Stroke() {
	for _, poly := range b.path.Subpaths() {
		for i := 1; i < len(poly); i++ {
			b.line(poly[i-1], poly[i])
		}
	}
}

func (b *Braille) SetStrokeColor(c color.Color) { b.stroke = graphics.Hex(c) }
func (b *Braille) SetFillColor(c color.Color)   { b.fill = graphics.Hex(c) }
func (b *Braille) SetLineWidth(float64)         {}
func (b *Braille) SetFont(font.Spec)            {}

// FillText writes text into the cells starting at the one holding the
// dot just above (x, y), the text baseline.
func (b *Braille) FillText(text string, x, y float64) {
	col := int(math.Floor(x / dotsX))
	row := int(math.Floor((y - 1) / dotsY))
	if row < 0 || row >= b.rows {
		return
	}
	for _, r := range text {
		if col >= 0 && col < b.cols {
			c := &b.cells[row*b.cols+col]
			c.text, c.tint = r, b.fill
		}
		col++
	}
}

// Cell returns the rune shown at a cell: text if any, otherwise the
// braille pattern, or a space.
func (b *Braille) Cell(col, row int) rune {
	if col < 0 || col >= b.cols || row < 0 || row >= b.rows {
		return ' '
	}
	return b.cells[row*b.cols+col].rune()
}

func (c cell) rune() rune {
	switch {
	case c.text != 0:
		return c.text
	case c.dots != 0:
		return rune(brailleBase + int(c.dots))
	}
	return ' '
}

func (c cell) fg() string {
	if c.text != 0 {
		return c.tint
	}
	return c.color
}

// String renders the grid without colors.
func (b *Braille) String() string {
	var sb strings.Builder
	for row := 0; row < b.rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < b.cols; col++ {
			sb.WriteRune(b.Cell(col, row))
		}
	}
	return sb.String()
}

// Render renders the grid with lipgloss colors, one style per run of
// same-colored cells.
func (b *Braille) Render() string {
	var sb strings.Builder
	for row := 0; row < b.rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		var run strings.Builder
		runColor := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(run.String()))
			}
			run.Reset()
		}
		for col := 0; col < b.cols; col++ {
			c := b.cells[row*b.cols+col]
			if fg := c.fg(); fg != runColor {
				flush()
				runColor = fg
			}
			run.WriteRune(c.rune())
		}
		flush()
	}
	return sb.String()
}

// line draws a segment with Bresenham's algorithm, clipped to the grid.
func (b *Braille) line(p, q graphics.Point) {
	if !p.IsFinite() || !q.IsFinite() {
		return
	}
	bounds := graphics.Rect{Width: float64(b.Width()), Height: float64(b.Height())}
	if !pathpkg.Clip(p, q, bounds, 0) {
		return
	}

	x0, y0 := int(math.Floor(p.X)), int(math.Floor(p.Y))
	x1, y1 := int(math.Floor(q.X)), int(math.Floor(q.Y))
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	err := dx + dy
	for {
		b.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (b *Braille) set(px, py int) {
	// the far edge of the surface maps onto the last dot
	if px == b.Width() {
		px--
	}
	if py == b.Height() {
		py--
	}
	if px < 0 || py < 0 || px >= b.Width() || py >= b.Height() {
		return
	}
	c := &b.cells[(py/dotsY)*b.cols+px/dotsX]
	c.dots |= dotBits[py%dotsY][px%dotsX]
	c.color = b.stroke
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
