package plot

import (
	"fmt"
	"image/color"

	"grapher/pkg/expression"
	"grapher/pkg/font"
	"grapher/pkg/graphics"
)

// Style holds the colors, widths and label settings of a render pass.
type Style struct {
	GridColor  color.Color
	GridWidth  float64
	AxisColor  color.Color
	AxisWidth  float64
	CurveColor color.Color
	CurveWidth float64
	LabelColor color.Color
	LabelFont  font.Spec

	// LabelPrecision is the number of decimals printed on labels.
	LabelPrecision int
	// LabelOffset is the pixel gap between a gridline and its label.
	LabelOffset float64
	// Divisions is the target number of grid intervals per axis.
	Divisions int
}

// DefaultStyle returns light gray 1px gridlines, black 2px axes, a blue
// 2px curve and 10px labels with two decimals.
func DefaultStyle() Style {
	return Style{
		GridColor:      graphics.MustParseColor("#e0e0e0"),
		GridWidth:      1,
		AxisColor:      color.Black,
		AxisWidth:      2,
		CurveColor:     graphics.MustParseColor("blue"),
		CurveWidth:     2,
		LabelColor:     color.Black,
		LabelFont:      font.Default,
		LabelPrecision: 2,
		LabelOffset:    2,
		Divisions:      DefaultDivisions,
	}
}

// Compiler turns expression text into a Function.
type Compiler func(source string) (Function, error)

func compileExpression(source string) (Function, error) {
	e, err := expression.Compile(source)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Renderer draws a full frame: grid, axes, labels and the curve.
type Renderer struct {
	Style   Style
	Compile Compiler
}

// NewRenderer creates a renderer with the default style and the
// expression package as its compiler.
func NewRenderer() *Renderer {
	return &Renderer{
		Style:   DefaultStyle(),
		Compile: compileExpression,
	}
}

// Render compiles source and, only if that succeeds, redraws the whole
// surface. A compile failure returns the *expression.CompileError and
// leaves the surface untouched.
func (r *Renderer) Render(s Surface, v *Viewport, source string) (*Trace, error) {
	compile := r.Compile
	if compile == nil {
		compile = compileExpression
	}
	fn, err := compile(source)
	if err != nil {
		Logger().Warn("compile failed", "source", source, "err", err)
		return nil, err
	}
	return r.RenderFunc(s, v, fn)
}

// RenderFunc redraws the surface for an already compiled function.
func (r *Renderer) RenderFunc(s Surface, v *Viewport, fn Function) (*Trace, error) {
	w, h := s.Width(), s.Height()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("failed to render: surface is %dx%d", w, h)
	}
	proj := v.Project(w, h)

	divisions := r.Style.Divisions
	if divisions < 1 {
		divisions = DefaultDivisions
	}
	xStep := NiceStep(v.XMin, v.XMax, divisions)
	yStep := NiceStep(v.YMin, v.YMax, divisions)
	xs := GridLines(v.XMin, v.XMax, xStep)
	ys := GridLines(v.YMin, v.YMax, yStep)

	s.ClearRect(0, 0, float64(w), float64(h))
	r.drawGrid(s, proj, xs, ys)
	r.drawAxes(s, proj, xs, ys)

	trace := Sample(fn, proj)
	r.drawCurve(s, trace)

	Logger().Debug("rendered",
		"viewport", v.String(),
		"size", fmt.Sprintf("%dx%d", w, h),
		"xStep", xStep, "yStep", yStep,
		"trace", trace.String())
	return trace, nil
}

func (r *Renderer) drawGrid(s Surface, proj Projection, xs, ys []float64) {
	w, h := float64(proj.Width), float64(proj.Height)

	s.BeginPath()
	s.SetStrokeColor(r.Style.GridColor)
	s.SetLineWidth(r.Style.GridWidth)
	for _, x := range xs {
		px := proj.WorldXToPixel(x)
		s.MoveTo(px, 0)
		s.LineTo(px, h)
	}
	for _, y := range ys {
		py := proj.WorldYToPixel(y)
		s.MoveTo(0, py)
		s.LineTo(w, py)
	}
	s.Stroke()
}

// drawAxes strokes the x=0 and y=0 lines and labels every gridline along
// them. Labels follow the axes, so they leave the surface with them.
func (r *Renderer) drawAxes(s Surface, proj Projection, xs, ys []float64) {
	w, h := float64(proj.Width), float64(proj.Height)
	xZero := proj.WorldXToPixel(0)
	yZero := proj.WorldYToPixel(0)

	s.BeginPath()
	s.SetStrokeColor(r.Style.AxisColor)
	s.SetLineWidth(r.Style.AxisWidth)
	s.MoveTo(0, yZero)
	s.LineTo(w, yZero)
	s.MoveTo(xZero, 0)
	s.LineTo(xZero, h)
	s.Stroke()

	s.SetFillColor(r.Style.LabelColor)
	s.SetFont(r.Style.LabelFont)
	off := r.Style.LabelOffset
	for _, x := range xs {
		s.FillText(FormatLabel(x, r.Style.LabelPrecision), proj.WorldXToPixel(x)+off, yZero-off)
	}
	for _, y := range ys {
		s.FillText(FormatLabel(y, r.Style.LabelPrecision), xZero+off, proj.WorldYToPixel(y)-off)
	}
}

func (r *Renderer) drawCurve(s Surface, t *Trace) {
	s.BeginPath()
	s.SetStrokeColor(r.Style.CurveColor)
	s.SetLineWidth(r.Style.CurveWidth)
	for _, seg := range t.Segments {
		for i, pt := range seg {
			if i == 0 {
				s.MoveTo(pt.X, pt.Y)
			} else {
				s.LineTo(pt.X, pt.Y)
			}
		}
	}
	s.Stroke()
}
