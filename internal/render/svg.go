// Package render draws a mounted chart as SVG or PNG.
package render

import (
	"errors"
	"fmt"
	"html"
	"io"
	"math"
	"time"
	"unicode/utf8"

	"census/internal/chart"
	"census/internal/models"

	svg "github.com/ajstarks/svgo"
)

// ErrNoChart is returned when rendering an empty container
var ErrNoChart = errors.New("render: nothing mounted")

// easing approximates cubic in-out for SMIL spline animation
const easing = `calcMode="spline" keyTimes="0;1" keySplines="0.645 0.045 0.355 1"`

// SVG writes ch as it stands at now. Elements still transitioning are
// drawn at their current position with an animation to their target.
func SVG(w io.Writer, ch *chart.Chart, now time.Time) error {
	if ch == nil {
		return ErrNoChart
	}
	l := ch.Layout
	vw, vh := px(l.Viewport.Width), px(l.Viewport.Height)

	canvas := svg.New(w)
	canvas.Start(vw, vh, fmt.Sprintf(`viewBox="0 0 %d %d"`, vw, vh), `class="bg-secondary"`)
	canvas.Group(fmt.Sprintf(`transform="translate(%d,%d)"`, px(l.Margin.Left), px(l.Margin.Top)))

	drawAxis(canvas, ch, &ch.XAxis, now)
	drawAxis(canvas, ch, &ch.YAxis, now)

	canvas.Group(`class="markers"`)
	for _, m := range ch.Markers {
		id := "m-" + attr(m.Record.Abbr)
		class := "stateCircle"
		if m.Highlighted {
			class += " highlighted"
		}
		canvas.Circle(px(m.CX.At(now)), px(m.CY.At(now)), px(m.Radius),
			fmt.Sprintf(`id="%s"`, id),
			fmt.Sprintf(`class="%s"`, class),
			fmt.Sprintf(`data-abbr="%s"`, attr(m.Record.Abbr)))
		animate(canvas, id, "cx", m.CX, now)
		animate(canvas, id, "cy", m.CY, now)
	}
	canvas.Gend()

	canvas.Group(`class="labels"`)
	for i, lb := range ch.Labels {
		id := "t-" + attr(ch.Markers[i].Record.Abbr)
		canvas.Text(px(lb.DX.At(now)), px(lb.DY.At(now)), lb.Text,
			fmt.Sprintf(`id="%s"`, id), `class="stateText"`)
		animate(canvas, id, "x", lb.DX, now)
		animate(canvas, id, "y", lb.DY, now)
	}
	canvas.Gend()

	canvas.Group(`class="aText"`)
	for _, al := range ch.AxisLabels {
		state := "inactive"
		if al.Active {
			state = "active"
		}
		attrs := []string{
			fmt.Sprintf(`class="%s"`, state),
			fmt.Sprintf(`data-axis="%s"`, al.Axis),
			fmt.Sprintf(`data-metric="%s"`, al.Metric.Field()),
		}
		if al.Rotate != 0 {
			attrs = append(attrs, fmt.Sprintf(`transform="rotate(%g)"`, al.Rotate))
		}
		canvas.Text(px(al.Pos.X), px(al.Pos.Y), al.Text, attrs...)
	}
	canvas.Gend()

	if tip := ch.Tooltip; tip.Visible {
		canvas.Group(`class="d3-tip"`, fmt.Sprintf(`transform="translate(%d,%d)"`, px(tip.Pos.X), px(tip.Pos.Y)))
		canvas.Rect(0, -16, tooltipWidth(tip.Text), 24, `rx="4"`)
		canvas.Text(6, 0, tip.Text)
		canvas.Gend()
	}

	canvas.Gend()
	canvas.End()
	return nil
}

func drawAxis(canvas *svg.SVG, ch *chart.Chart, a *chart.AxisView, now time.Time) {
	id := a.Axis.String() + "-axis"
	canvas.Group(
		fmt.Sprintf(`id="%s"`, id),
		fmt.Sprintf(`class="%sText"`, a.Axis),
		fmt.Sprintf(`transform="translate(%d,%d)"`, px(a.Offset.X), px(a.Offset.Y)))

	categorical := a.Scale != nil && a.Scale.Metric().Categorical()
	switch a.Axis {
	case models.AxisX:
		canvas.Line(0, 0, px(ch.Layout.Width), 0, `stroke="currentColor"`)
		for _, tk := range a.Ticks {
			x := px(tk.Pos)
			canvas.Line(x, 0, x, 6, `stroke="currentColor"`)
			if categorical {
				canvas.Text(x, 9, tk.Label, `text-anchor="end"`, fmt.Sprintf(`transform="rotate(-30 %d 9)"`, x))
			} else {
				canvas.Text(x, 20, tk.Label, `text-anchor="middle"`)
			}
		}
	case models.AxisY:
		canvas.Line(0, 0, 0, px(ch.Layout.Height), `stroke="currentColor"`)
		for _, tk := range a.Ticks {
			y := px(tk.Pos)
			canvas.Line(-6, y, 0, y, `stroke="currentColor"`)
			canvas.Text(-9, y+4, tk.Label, `text-anchor="end"`)
		}
	}
	canvas.Gend()

	if !a.Changed.IsZero() {
		fade := chart.Tween{From: 0, To: 1, Start: a.Changed, Duration: ch.Transition}
		if rem := fade.Remaining(now); rem > 0 {
			canvas.Animate("#"+id, "opacity", 0, 1, rem.Seconds(), 1, `fill="freeze"`)
		}
	}
}

// animate emits a SMIL animation for a tween still in flight at now
func animate(canvas *svg.SVG, id, attribute string, t chart.Tween, now time.Time) {
	rem := t.Remaining(now)
	if rem <= 0 {
		return
	}
	canvas.Animate("#"+id, attribute, px(t.At(now)), px(t.To), rem.Seconds(), 1, `fill="freeze"`, easing)
}

// tooltipWidth sizes the tooltip box for text at about 8px per character
func tooltipWidth(text string) int {
	return 8*utf8.RuneCountInString(text) + 12
}

func px(v float64) int {
	return int(math.Round(v))
}

func attr(s string) string {
	return html.EscapeString(s)
}
