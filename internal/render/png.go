package render

import (
	"fmt"
	"io"

	"census/internal/chart"
	"census/internal/scale"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// pointsPerPixel converts CSS pixels (96 dpi) to points
const pointsPerPixel = 0.75

// PNG writes a static image of ch at its target positions. Transitions are
// not drawn.
func PNG(w io.Writer, ch *chart.Chart) error {
	if ch == nil {
		return ErrNoChart
	}
	if len(ch.Markers) == 0 || ch.XAxis.Scale == nil || ch.YAxis.Scale == nil {
		return fmt.Errorf("render: no data bound")
	}

	xMetric := ch.XAxis.Scale.Metric()
	yMetric := ch.YAxis.Scale.Metric()

	p := plot.New()
	p.X.Label.Text = xMetric.Label()
	p.Y.Label.Text = yMetric.Label()

	// Band categories plot at their index
	band := make(map[string]float64)
	switch s := ch.XAxis.Scale.(type) {
	case *scale.Linear:
		p.X.Min, p.X.Max = s.Domain()
	case *scale.Band:
		ticks := make([]plot.Tick, len(s.Categories()))
		for i, c := range s.Categories() {
			ticks[i] = plot.Tick{Value: float64(i), Label: c}
			band[c] = float64(i)
		}
		p.X.Tick.Marker = plot.ConstantTicks(ticks)
		p.X.Min, p.X.Max = -0.5, float64(len(ticks))-0.5
	}

	xys := make(plotter.XYs, len(ch.Markers))
	abbrs := make([]string, len(ch.Markers))
	for i, m := range ch.Markers {
		if xMetric.Categorical() {
			c, _ := m.Record.Category(xMetric)
			xys[i].X = band[c]
		} else {
			xys[i].X, _ = m.Record.Value(xMetric)
		}
		xys[i].Y, _ = m.Record.Value(yMetric)
		abbrs[i] = m.Record.Abbr
	}
	if s, ok := ch.YAxis.Scale.(*scale.Linear); ok {
		p.Y.Min, p.Y.Max = s.Domain()
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("render: scatter: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(ch.Markers[0].Radius * pointsPerPixel / 2)
	p.Add(scatter)

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: abbrs})
	if err != nil {
		return fmt.Errorf("render: labels: %w", err)
	}
	p.Add(labels)

	wt, err := p.WriterTo(
		vg.Points(ch.Layout.Viewport.Width*pointsPerPixel),
		vg.Points(ch.Layout.Viewport.Height*pointsPerPixel),
		"png")
	if err != nil {
		return fmt.Errorf("render: png: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}
