package plot

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"grapher/pkg/font"
	"grapher/pkg/graphics"
)

// OpKind names a recorded surface call.
type OpKind string

const (
	OpClearRect      OpKind = "clearRect"
	OpBeginPath      OpKind = "beginPath"
	OpMoveTo         OpKind = "moveTo"
	OpLineTo         OpKind = "lineTo"
	OpStroke         OpKind = "stroke"
	OpSetStrokeColor OpKind = "strokeStyle"
	OpSetLineWidth   OpKind = "lineWidth"
	OpSetFillColor   OpKind = "fillStyle"
	OpSetFont        OpKind = "font"
	OpFillText       OpKind = "fillText"
)

// Op is one recorded surface call.
type Op struct {
	Kind OpKind
	Args []float64
	Text string
}

func (op Op) String() string {
	var b strings.Builder
	b.WriteString(string(op.Kind))
	for _, a := range op.Args {
		fmt.Fprintf(&b, " %.2f", a)
	}
	if op.Text != "" {
		fmt.Fprintf(&b, " %q", op.Text)
	}
	return b.String()
}

// Recorder is a headless Surface that records every call. It backs the
// renderer tests and the "ops" command.
type Recorder struct {
	W, H int
	Ops  []Op
}

// NewRecorder creates a recorder reporting the given pixel size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{W: width, H: height}
}

func (r *Recorder) Width() int  { return r.W }
func (r *Recorder) Height() int { return r.H }

func (r *Recorder) record(kind OpKind, text string, args ...float64) {
	r.Ops = append(r.Ops, Op{Kind: kind, Args: args, Text: text})
}

func (r *Recorder) ClearRect(x, y, w, h float64) { r.record(OpClearRect, "", x, y, w, h) }
func (r *Recorder) BeginPath()                   { r.record(OpBeginPath, "") }
func (r *Recorder) MoveTo(x, y float64)          { r.record(OpMoveTo, "", x, y) }
func (r *Recorder) LineTo(x, y float64)          { r.record(OpLineTo, "", x, y) }
func (r *Recorder) Stroke()                      { r.record(OpStroke, "") }
func (r *Recorder) SetLineWidth(w float64)       { r.record(OpSetLineWidth, "", w) }
func (r *Recorder) SetFont(f font.Spec)          { r.record(OpSetFont, f.String()) }

func (r *Recorder) SetStrokeColor(c color.Color) { r.record(OpSetStrokeColor, graphics.Hex(c)) }
func (r *Recorder) SetFillColor(c color.Color)   { r.record(OpSetFillColor, graphics.Hex(c)) }

func (r *Recorder) FillText(text string, x, y float64) { r.record(OpFillText, text, x, y) }

// Reset drops the recorded ops.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Count returns how many ops of the given kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Paths groups the recorded moveTo/lineTo calls by stroke: element i holds
// the path stroked by the i-th stroke call.
func (r *Recorder) Paths() []*graphics.Path {
	var out []*graphics.Path
	cur := graphics.NewPath()
	for _, op := range r.Ops {
		switch op.Kind {
		case OpBeginPath:
			cur = graphics.NewPath()
		case OpMoveTo:
			cur.MoveTo(op.Args[0], op.Args[1])
		case OpLineTo:
			cur.LineTo(op.Args[0], op.Args[1])
		case OpStroke:
			out = append(out, cur.Clone())
		}
	}
	return out
}

// WriteTo prints one numbered op per line.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, op := range r.Ops {
		n, err := fmt.Fprintf(w, "%5d: %s\n", i+1, op)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
