package chart

import (
	"fmt"
	"math"

	"census/internal/scale"
)

// Domain inflation applied at the maximum of each axis
const (
	DomainMarginX = 0.02
	DomainMarginY = 0.08
)

// plotInset keeps the extreme markers off the axis lines
const plotInset = 20

// Size is a viewport size in pixels
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Margin is the space around the plot area
type Margin struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargin leaves room for three stacked axis labels below and left
var DefaultMargin = Margin{Top: 10, Right: 40, Bottom: 112, Left: 102}

// Point is a pixel offset
type Point struct {
	X, Y float64
}

// Layout is the geometry derived from a viewport
type Layout struct {
	Viewport Size
	Margin   Margin
	Width    float64
	Height   float64
}

// NewLayout computes the plot dimensions for viewport
func NewLayout(viewport Size, margin Margin) (Layout, error) {
	l := Layout{
		Viewport: viewport,
		Margin:   margin,
		Width:    viewport.Width - margin.Left - margin.Right,
		Height:   viewport.Height - margin.Top - margin.Bottom,
	}
	if !(l.Width > plotInset && l.Height > plotInset) || math.IsInf(l.Width, 0) || math.IsInf(l.Height, 0) {
		return l, fmt.Errorf("%w: %vx%v", ErrInvalidViewport, viewport.Width, viewport.Height)
	}
	return l, nil
}

// XRange is the pixel range of the horizontal axis
func (l Layout) XRange() scale.Range {
	return scale.Range{Lo: plotInset, Hi: l.Width}
}

// YRange is the pixel range of the vertical axis, inverted because screen
// Y grows downward.
func (l Layout) YRange() scale.Range {
	return scale.Range{Lo: l.Height - plotInset, Hi: 0}
}
