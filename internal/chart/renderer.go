package chart

import (
	"errors"
	"fmt"
	"time"

	"census/internal/models"
	"census/internal/scale"
)

// Options configures a Renderer
type Options struct {
	Variant            Variant
	Margin             Margin
	TransitionDuration time.Duration
	MarkerRadius       float64
	// LabelDY shifts abbreviations down to sit centered in their marker.
	LabelDY       float64
	TooltipOffset Point
	TickCount     int
	Clock         Clock
	// Metrics overrides the variant's selectable metrics per axis.
	Metrics map[models.Axis][]models.Metric
}

// DefaultOptions returns the standard dual-axis configuration
func DefaultOptions() Options {
	return Options{
		Variant:            VariantDual,
		Margin:             DefaultMargin,
		TransitionDuration: time.Second,
		MarkerRadius:       16,
		LabelDY:            5,
		TooltipOffset:      Point{X: -60, Y: 80},
		TickCount:          8,
		Clock:              SystemClock,
	}
}

// Renderer owns a mounted chart and the selection state driving it
type Renderer struct {
	opts      Options
	container *Container
	chart     *Chart
	records   []models.Record
	byAbbr    map[string]int
	state     State
	tooltip   TooltipFunc
	hovered   int
}

// NewRenderer creates an unmounted renderer with the variant's default
// selection.
func NewRenderer(opts Options) *Renderer {
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	r := &Renderer{opts: opts, hovered: -1}
	sel := Selection{X: r.menu(models.AxisX)[0], Y: r.menu(models.AxisY)[0]}
	r.state = State{Selection: sel}
	r.tooltip = NewTooltipFunc(sel)
	return r
}

// menu lists the selectable metrics of axis in label order
func (r *Renderer) menu(axis models.Axis) []models.Metric {
	if ms := r.opts.Metrics[axis]; len(ms) > 0 {
		return ms
	}
	return r.opts.Variant.Options(axis)
}

func (r *Renderer) allows(axis models.Axis, m models.Metric) bool {
	for _, o := range r.menu(axis) {
		if o == m {
			return true
		}
	}
	return false
}

// Selection returns the active metric of each axis
func (r *Renderer) Selection() Selection {
	return r.state.Selection
}

// State returns the current selection and scales
func (r *Renderer) State() State {
	return r.state
}

// Chart returns the mounted chart, or nil before Mount
func (r *Renderer) Chart() *Chart {
	return r.chart
}

// Bound reports whether data is bound to the current mount
func (r *Renderer) Bound() bool {
	return r.chart != nil && r.records != nil
}

// Mount clears container and builds a fresh surface sized to viewport,
// with axes, one label control per selectable metric and a hidden tooltip.
// It is safe to call repeatedly.
func (r *Renderer) Mount(c *Container, viewport Size) error {
	layout, err := NewLayout(viewport, r.opts.Margin)
	if err != nil {
		return renderError("mount", err)
	}

	if r.container != nil && r.container != c {
		r.container.Clear()
	}
	c.Clear()

	ch := &Chart{
		Layout:     layout,
		XAxis:      AxisView{Axis: models.AxisX, Offset: Point{X: 0, Y: layout.Height}},
		YAxis:      AxisView{Axis: models.AxisY},
		Transition: r.opts.TransitionDuration,
	}
	for i, m := range r.menu(models.AxisX) {
		ch.AxisLabels = append(ch.AxisLabels, AxisLabel{
			Axis:   models.AxisX,
			Metric: m,
			Text:   m.Label(),
			Pos:    Point{X: layout.Width / 2, Y: layout.Height + 25 + 20*float64(i+1)},
		})
	}
	for i, m := range r.menu(models.AxisY) {
		ch.AxisLabels = append(ch.AxisLabels, AxisLabel{
			Axis:   models.AxisY,
			Metric: m,
			Text:   m.Label(),
			Pos:    Point{X: -layout.Height / 2, Y: -layout.Margin.Left + 49 - 22*float64(i)},
			Rotate: -90,
		})
	}

	c.chart = ch
	r.container = c
	r.chart = ch
	r.records = nil
	r.byAbbr = nil
	r.hovered = -1
	r.markActive()
	return nil
}

// BindData attaches records to the mounted chart, creating one marker and
// one label per record at the positions of the current selection.
func (r *Renderer) BindData(records []models.Record) error {
	if r.chart == nil {
		return renderError("bind", ErrNotMounted)
	}
	if r.records != nil {
		return renderError("bind", ErrAlreadyBound)
	}

	st, err := Resync(records, r.chart.Layout, r.state.Selection)
	if err != nil {
		return renderError("bind", err)
	}
	xs, ys, err := r.targets(records, st.XScale, st.YScale)
	if err != nil {
		return renderError("bind", err)
	}

	markers := make([]Marker, len(records))
	labels := make([]MarkerLabel, len(records))
	byAbbr := make(map[string]int, len(records))
	for i := range records {
		markers[i] = Marker{
			Record: &records[i],
			CX:     Fixed(xs[i]),
			CY:     Fixed(ys[i]),
			Radius: r.opts.MarkerRadius,
		}
		labels[i] = MarkerLabel{
			Text: records[i].Abbr,
			DX:   Fixed(xs[i]),
			DY:   Fixed(ys[i] + r.opts.LabelDY),
		}
		byAbbr[records[i].Abbr] = i
	}

	r.chart.Markers = markers
	r.chart.Labels = labels
	r.records = records
	r.byAbbr = byAbbr
	r.state = st
	r.tooltip = NewTooltipFunc(st.Selection)
	r.setAxes(time.Time{})
	return nil
}

// Update transitions every marker and label to the positions given by the
// scales, swaps the tooltip content and marks the active label controls.
// On error nothing on the chart changes.
func (r *Renderer) Update(xScale scale.Scale, xMetric models.Metric, yScale scale.Scale, yMetric models.Metric) error {
	if r.chart == nil {
		return renderError("update", ErrNotMounted)
	}
	if r.records == nil {
		return renderError("update", ErrNotBound)
	}
	if xScale == nil || yScale == nil {
		return renderError("update", errors.New("missing scale"))
	}
	if !r.allows(models.AxisX, xMetric) {
		return renderError("update", fmt.Errorf("%w: %s on x", ErrInvalidOption, xMetric))
	}
	if !r.allows(models.AxisY, yMetric) {
		return renderError("update", fmt.Errorf("%w: %s on y", ErrInvalidOption, yMetric))
	}
	if xScale.Metric() != xMetric || yScale.Metric() != yMetric {
		return renderError("update", fmt.Errorf("scale metrics %s/%s do not match selection %s/%s",
			xScale.Metric(), yScale.Metric(), xMetric, yMetric))
	}

	xs, ys, err := r.targets(r.records, xScale, yScale)
	if err != nil {
		return renderError("update", err)
	}

	now := r.opts.Clock.Now()
	d := r.opts.TransitionDuration
	for i := range r.chart.Markers {
		m := &r.chart.Markers[i]
		m.CX = m.CX.Retarget(xs[i], now, d)
		m.CY = m.CY.Retarget(ys[i], now, d)

		l := &r.chart.Labels[i]
		l.DX = l.DX.Retarget(xs[i], now, d)
		l.DY = l.DY.Retarget(ys[i]+r.opts.LabelDY, now, d)
	}

	r.state = State{
		Selection: Selection{X: xMetric, Y: yMetric},
		XScale:    xScale,
		YScale:    yScale,
	}
	r.tooltip = NewTooltipFunc(r.state.Selection)
	r.setAxes(now)
	r.markActive()
	if r.hovered >= 0 {
		r.showTooltip(r.hovered)
	}
	return nil
}

// OnLabelClick selects metric on axis. Clicking the active metric is a
// no-op. Otherwise both scales are rebuilt from the new selection and the
// chart transitions to them.
func (r *Renderer) OnLabelClick(axis models.Axis, metric models.Metric) (bool, error) {
	if !r.Bound() {
		return false, renderError("select", ErrNotBound)
	}
	if !r.allows(axis, metric) {
		return false, renderError("select", fmt.Errorf("%w: %s on %s", ErrInvalidOption, metric, axis))
	}
	if r.state.Selection.Get(axis) == metric {
		return false, nil
	}

	sel := r.state.Selection.With(axis, metric)
	st, err := Resync(r.records, r.chart.Layout, sel)
	if err != nil {
		return false, renderError("select", err)
	}
	if err := r.Update(st.XScale, sel.X, st.YScale, sel.Y); err != nil {
		return false, err
	}
	return true, nil
}

// Hover highlights marker i and shows its tooltip
func (r *Renderer) Hover(i int) error {
	if err := r.checkMarker("hover", i); err != nil {
		return err
	}
	r.chart.Markers[i].Highlighted = true
	r.hovered = i
	r.showTooltip(i)
	return nil
}

// Leave clears the highlight of marker i and hides the tooltip if it
// belongs to that marker.
func (r *Renderer) Leave(i int) error {
	if err := r.checkMarker("leave", i); err != nil {
		return err
	}
	r.chart.Markers[i].Highlighted = false
	if r.hovered == i {
		r.hovered = -1
		r.chart.Tooltip = Tooltip{}
	}
	return nil
}

// HoverAbbr is Hover addressed by state abbreviation
func (r *Renderer) HoverAbbr(abbr string) error {
	i, err := r.lookup("hover", abbr)
	if err != nil {
		return err
	}
	return r.Hover(i)
}

// LeaveAbbr is Leave addressed by state abbreviation
func (r *Renderer) LeaveAbbr(abbr string) error {
	i, err := r.lookup("leave", abbr)
	if err != nil {
		return err
	}
	return r.Leave(i)
}

// Resize remounts into c at the new viewport and rebinds the records. The
// selection survives the remount.
func (r *Renderer) Resize(c *Container, viewport Size) error {
	records := r.records
	if err := r.Mount(c, viewport); err != nil {
		return err
	}
	if records == nil {
		return nil
	}
	return r.BindData(records)
}

func (r *Renderer) targets(records []models.Record, xScale, yScale scale.Scale) ([]float64, []float64, error) {
	xs := make([]float64, len(records))
	ys := make([]float64, len(records))
	for i := range records {
		x, err := xScale.Apply(&records[i])
		if err != nil {
			return nil, nil, fmt.Errorf("record %s: %w", records[i].Abbr, err)
		}
		y, err := yScale.Apply(&records[i])
		if err != nil {
			return nil, nil, fmt.Errorf("record %s: %w", records[i].Abbr, err)
		}
		xs[i], ys[i] = x, y
	}
	return xs, ys, nil
}

func (r *Renderer) setAxes(changed time.Time) {
	r.chart.XAxis.Scale = r.state.XScale
	r.chart.XAxis.Ticks = r.state.XScale.Ticks(r.opts.TickCount)
	r.chart.XAxis.Changed = changed
	r.chart.YAxis.Scale = r.state.YScale
	r.chart.YAxis.Ticks = r.state.YScale.Ticks(r.opts.TickCount)
	r.chart.YAxis.Changed = changed
}

func (r *Renderer) markActive() {
	for i := range r.chart.AxisLabels {
		l := &r.chart.AxisLabels[i]
		l.Active = r.state.Selection.Get(l.Axis) == l.Metric
	}
}

func (r *Renderer) showTooltip(i int) {
	m := r.chart.Markers[i]
	r.chart.Tooltip = Tooltip{
		Visible: true,
		Text:    r.tooltip(m.Record),
		Pos: Point{
			X: m.CX.To + r.opts.TooltipOffset.X,
			Y: m.CY.To + r.opts.TooltipOffset.Y,
		},
	}
}

func (r *Renderer) checkMarker(op string, i int) error {
	if !r.Bound() {
		return renderError(op, ErrNotBound)
	}
	if i < 0 || i >= len(r.chart.Markers) {
		return renderError(op, fmt.Errorf("no marker %d", i))
	}
	return nil
}

func (r *Renderer) lookup(op, abbr string) (int, error) {
	if !r.Bound() {
		return 0, renderError(op, ErrNotBound)
	}
	i, ok := r.byAbbr[abbr]
	if !ok {
		return 0, renderError(op, fmt.Errorf("no marker for %q", abbr))
	}
	return i, nil
}
