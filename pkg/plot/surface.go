package plot

import (
	"image/color"

	"grapher/pkg/font"
)

// Surface is the raster the renderer draws on. Coordinates are pixels with
// the origin at the top left and Y growing downward.
type Surface interface {
	Width() int
	Height() int

	ClearRect(x, y, w, h float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()

	SetStrokeColor(c color.Color)
	SetLineWidth(w float64)
	SetFillColor(c color.Color)
	SetFont(f font.Spec)
	FillText(text string, x, y float64)
}
