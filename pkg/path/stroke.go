// Package path converts plot paths into rasterizer input.
package path

import (
	"math"

	"grapher/pkg/graphics"

	"golang.org/x/image/vector"
)

// ToVector feeds a closed-outline path to a golang.org/x/image/vector
// rasterizer. Open subpaths are closed by the rasterizer.
func ToVector(p *graphics.Path, rasterizer *vector.Rasterizer) {
	for _, seg := range p.Segments {
		switch seg.Op {
		case graphics.PathOpMoveTo:
			rasterizer.MoveTo(float32(seg.Point.X), float32(seg.Point.Y))
		case graphics.PathOpLineTo:
			rasterizer.LineTo(float32(seg.Point.X), float32(seg.Point.Y))
		case graphics.PathOpClose:
			rasterizer.ClosePath()
		}
	}
}

// Stroker turns centre-line paths into fillable outlines.
type Stroker struct {
	Width float64
	Cap   graphics.LineCap

	// Bounds, when non-empty, drops segments that cannot touch it.
	Bounds graphics.Rect
}

// Outline converts the centre-line path p into a fillable outline. Every
// line segment becomes its own quad, all wound the same way, so overlapping
// quads accumulate under the non-zero rule instead of cancelling.
// LineCapSquare extends each quad by half the width, which also fills the
// wedge left at polyline joints.
func (s Stroker) Outline(p *graphics.Path) *graphics.Path {
	result := graphics.NewPath()
	if s.Width <= 0 {
		return result
	}
	half := s.Width / 2

	for _, poly := range p.Subpaths() {
		for i := 1; i < len(poly); i++ {
			a, b := poly[i-1], poly[i]
			if !s.Bounds.Empty() && !Clip(a, b, s.Bounds, s.Width) {
				continue
			}
			addQuad(result, a, b, half, s.Cap)
		}
	}
	return result
}

func addQuad(out *graphics.Path, a, b graphics.Point, half float64, lineCap graphics.LineCap) {
	if !a.IsFinite() || !b.IsFinite() {
		return
	}
	d := b.Sub(a)
	length := d.Length()
	if length == 0 {
		return
	}
	// unit direction and its left normal
	ux, uy := d.X/length, d.Y/length
	nx, ny := -uy*half, ux*half

	if lineCap == graphics.LineCapSquare {
		a = graphics.Point{X: a.X - ux*half, Y: a.Y - uy*half}
		b = graphics.Point{X: b.X + ux*half, Y: b.Y + uy*half}
	}

	out.MoveTo(a.X+nx, a.Y+ny)
	out.LineTo(b.X+nx, b.Y+ny)
	out.LineTo(b.X-nx, b.Y-ny)
	out.LineTo(a.X-nx, a.Y-ny)
	out.Close()
}

// Clip reports whether the segment a-b can touch the rectangle r grown by
// margin. It is a cheap reject test used before adding far off-canvas
// segments to the rasterizer.
func Clip(a, b graphics.Point, r graphics.Rect, margin float64) bool {
	minX := math.Min(a.X, b.X)
	maxX := math.Max(a.X, b.X)
	minY := math.Min(a.Y, b.Y)
	maxY := math.Max(a.Y, b.Y)
	return maxX >= r.X-margin && minX <= r.X+r.Width+margin &&
		maxY >= r.Y-margin && minY <= r.Y+r.Height+margin
}
