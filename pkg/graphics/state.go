package graphics

import (
	"image/color"
)

// State is the pen a surface applies to stroke and text calls.
type State struct {
	StrokeColor color.Color
	FillColor   color.Color
	LineWidth   float64
	LineCap     LineCap
}

// NewState creates a state with a 1px black pen.
func NewState() *State {
	return &State{
		StrokeColor: color.Black,
		FillColor:   color.Black,
		LineWidth:   1.0,
		LineCap:     LineCapButt,
	}
}
