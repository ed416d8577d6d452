package graphics

import (
	"math"
)

// PathOp represents a path operation type.
type PathOp int

const (
	PathOpMoveTo PathOp = iota
	PathOpLineTo
	PathOpClose
)

func (op PathOp) String() string {
	switch op {
	case PathOpMoveTo:
		return "moveTo"
	case PathOpLineTo:
		return "lineTo"
	case PathOpClose:
		return "close"
	}
	return "unknown"
}

// PathSegment represents a single segment in a path.
type PathSegment struct {
	Op    PathOp
	Point Point
}

// Path is a sequence of straight-line subpaths. Every MoveTo starts a new
// subpath; a LineTo without a preceding MoveTo starts one implicitly.
type Path struct {
	Segments []PathSegment
	start    Point
	open     bool
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{}
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	clone := *p
	clone.Segments = append([]PathSegment(nil), p.Segments...)
	return &clone
}

// MoveTo starts a new subpath at the given point.
func (p *Path) MoveTo(x, y float64) {
	pt := Point{x, y}
	p.Segments = append(p.Segments, PathSegment{Op: PathOpMoveTo, Point: pt})
	p.start = pt
	p.open = true
}

// LineTo draws a line from the current point to the given point.
func (p *Path) LineTo(x, y float64) {
	if !p.open {
		p.MoveTo(x, y)
		return
	}
	pt := Point{x, y}
	p.Segments = append(p.Segments, PathSegment{Op: PathOpLineTo, Point: pt})
}

// Close closes the current subpath with a line back to its start.
func (p *Path) Close() {
	if !p.open {
		return
	}
	p.Segments = append(p.Segments, PathSegment{Op: PathOpClose, Point: p.start})
	p.open = false
}

// Rect adds a closed rectangle to the path.
func (p *Path) Rect(x, y, width, height float64) {
	p.MoveTo(x, y)
	p.LineTo(x+width, y)
	p.LineTo(x+width, y+height)
	p.LineTo(x, y+height)
	p.Close()
}

// IsEmpty returns true if the path has no segments.
func (p *Path) IsEmpty() bool {
	return len(p.Segments) == 0
}

// Subpaths returns the path flattened into polylines, one per subpath.
// A closed subpath ends with a copy of its first point.
func (p *Path) Subpaths() [][]Point {
	var out [][]Point
	var cur []Point
	for _, seg := range p.Segments {
		switch seg.Op {
		case PathOpMoveTo:
			if len(cur) > 0 {
				out = append(out, cur)
			}
			cur = []Point{seg.Point}
		case PathOpLineTo, PathOpClose:
			cur = append(cur, seg.Point)
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// Bounds returns the bounding box of the path.
func (p *Path) Bounds() Rect {
	if len(p.Segments) == 0 {
		return Rect{}
	}

	minX := math.MaxFloat64
	minY := math.MaxFloat64
	maxX := -math.MaxFloat64
	maxY := -math.MaxFloat64

	for _, seg := range p.Segments {
		minX = math.Min(minX, seg.Point.X)
		minY = math.Min(minY, seg.Point.Y)
		maxX = math.Max(maxX, seg.Point.X)
		maxY = math.Max(maxY, seg.Point.Y)
	}

	return NewRect(minX, minY, maxX, maxY)
}
