package chart

import (
	"fmt"

	"census/internal/models"
	"census/internal/scale"
)

// Variant selects which metrics each axis offers
type Variant int

const (
	// VariantDual offers three selectable metrics per axis.
	VariantDual Variant = iota
	// VariantStates bands the state names along X against poverty on Y.
	VariantStates
)

// ParseVariant accepts "dual" or "states"
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "", "dual":
		return VariantDual, nil
	case "states":
		return VariantStates, nil
	default:
		return 0, fmt.Errorf("invalid variant: %s", s)
	}
}

func (v Variant) String() string {
	switch v {
	case VariantDual:
		return "dual"
	case VariantStates:
		return "states"
	}
	panic(fmt.Sprintf("chart: unknown variant %d", int(v)))
}

// Options lists the selectable metrics of axis, in label order
func (v Variant) Options(axis models.Axis) []models.Metric {
	switch v {
	case VariantDual:
		if axis == models.AxisX {
			return []models.Metric{models.MetricIncome, models.MetricAge, models.MetricPoverty}
		}
		return []models.Metric{models.MetricHealthcare, models.MetricSmokes, models.MetricObesity}
	case VariantStates:
		if axis == models.AxisX {
			return []models.Metric{models.MetricState}
		}
		return []models.Metric{models.MetricPoverty}
	}
	panic(fmt.Sprintf("chart: unknown variant %d", int(v)))
}

// Selection holds the active metric of each axis
type Selection struct {
	X models.Metric
	Y models.Metric
}

// Get returns the active metric of axis
func (s Selection) Get(axis models.Axis) models.Metric {
	if axis == models.AxisX {
		return s.X
	}
	return s.Y
}

// With returns a copy of s with axis set to m
func (s Selection) With(axis models.Axis, m models.Metric) Selection {
	if axis == models.AxisX {
		s.X = m
	} else {
		s.Y = m
	}
	return s
}

// State is the selection together with the scales derived from it
type State struct {
	Selection Selection
	XScale    scale.Scale
	YScale    scale.Scale
}

// Resync rebuilds both scales for sel against layout
func Resync(records []models.Record, layout Layout, sel Selection) (State, error) {
	xs, err := scale.BuildScale(records, sel.X, layout.XRange(), DomainMarginX)
	if err != nil {
		return State{}, fmt.Errorf("x scale: %w", err)
	}
	ys, err := scale.BuildScale(records, sel.Y, layout.YRange(), DomainMarginY)
	if err != nil {
		return State{}, fmt.Errorf("y scale: %w", err)
	}
	return State{Selection: sel, XScale: xs, YScale: ys}, nil
}

// TooltipFunc renders the tooltip text of a record
type TooltipFunc func(r *models.Record) string

// NewTooltipFunc builds the tooltip generator for sel
func NewTooltipFunc(sel Selection) TooltipFunc {
	return func(r *models.Record) string {
		if sel.X.Categorical() {
			return fmt.Sprintf("%s: %s %s", r.State, sel.Y.TooltipLabel(), r.Format(sel.Y))
		}
		return fmt.Sprintf("%s: %s %s, %s %s",
			r.State,
			sel.X.TooltipLabel(), r.Format(sel.X),
			sel.Y.TooltipLabel(), r.Format(sel.Y))
	}
}
