package chart

import (
	"time"

	"census/internal/models"
	"census/internal/scale"
)

// Marker is the circle plotted for one record
type Marker struct {
	Record      *models.Record
	CX, CY      Tween
	Radius      float64
	Highlighted bool
}

// MarkerLabel is the abbreviation drawn on top of a marker
type MarkerLabel struct {
	Text   string
	DX, DY Tween
}

// AxisView is a drawn axis: its scale, ticks and placement
type AxisView struct {
	Axis    models.Axis
	Scale   scale.Scale
	Ticks   []scale.Tick
	Offset  Point
	Changed time.Time
}

// AxisLabel is a clickable control selecting Metric for Axis
type AxisLabel struct {
	Axis   models.Axis
	Metric models.Metric
	Text   string
	Active bool
	Pos    Point
	Rotate float64
}

// Tooltip is the hover overlay
type Tooltip struct {
	Visible bool
	Text    string
	Pos     Point
}

// Chart is the mounted drawing surface and every persistent element on it
type Chart struct {
	Layout     Layout
	XAxis      AxisView
	YAxis      AxisView
	AxisLabels []AxisLabel
	Markers    []Marker
	Labels     []MarkerLabel
	Tooltip    Tooltip
	Transition time.Duration
}

// ElementCount counts the surface and every element mounted on it
func (c *Chart) ElementCount() int {
	return 1 + 2 + len(c.AxisLabels) + len(c.Markers) + len(c.Labels) + 1
}

// ActiveLabels returns the active label control of each axis. The
// result has one entry per active control, so mutual exclusion holds
// when it has exactly one entry per axis.
func (c *Chart) ActiveLabels() []AxisLabel {
	var active []AxisLabel
	for _, l := range c.AxisLabels {
		if l.Active {
			active = append(active, l)
		}
	}
	return active
}

// Animating reports whether any marker is still moving at now
func (c *Chart) Animating(now time.Time) bool {
	for _, m := range c.Markers {
		if !m.CX.Done(now) || !m.CY.Done(now) {
			return true
		}
	}
	return false
}

// Container is the host element a chart mounts into, addressed by selector
type Container struct {
	Selector string
	chart    *Chart
}

// NewContainer creates an empty container for selector
func NewContainer(selector string) *Container {
	return &Container{Selector: selector}
}

// Chart returns the mounted chart, or nil
func (c *Container) Chart() *Chart {
	return c.chart
}

// Empty reports whether nothing is mounted
func (c *Container) Empty() bool {
	return c.chart == nil
}

// Clear removes the mounted chart and all its elements
func (c *Container) Clear() {
	c.chart = nil
}
