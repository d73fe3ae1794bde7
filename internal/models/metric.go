package models

import "fmt"

// Metric identifies one plottable field of a Record
type Metric int

const (
	MetricPoverty Metric = iota
	MetricAge
	MetricIncome
	MetricHealthcare
	MetricObesity
	MetricSmokes
	// MetricState is the categorical state name, used by the band axis.
	MetricState
)

// Metrics lists every metric in declaration order
var Metrics = []Metric{
	MetricPoverty,
	MetricAge,
	MetricIncome,
	MetricHealthcare,
	MetricObesity,
	MetricSmokes,
	MetricState,
}

// ParseMetric resolves a CSV column name such as "income" into a Metric
func ParseMetric(name string) (Metric, error) {
	for _, m := range Metrics {
		if m.Field() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid metric: %s", name)
}

// Field returns the column name used in the source data
func (m Metric) Field() string {
	switch m {
	case MetricPoverty:
		return "poverty"
	case MetricAge:
		return "age"
	case MetricIncome:
		return "income"
	case MetricHealthcare:
		return "healthcare"
	case MetricObesity:
		return "obesity"
	case MetricSmokes:
		return "smokes"
	case MetricState:
		return "state"
	}
	panic(fmt.Sprintf("models: unknown metric %d", int(m)))
}

func (m Metric) String() string {
	return m.Field()
}

// Label is the axis-label control text for the metric
func (m Metric) Label() string {
	switch m {
	case MetricPoverty:
		return "Percent of Population in Poverty"
	case MetricAge:
		return "Median Age"
	case MetricIncome:
		return "Median Household Income"
	case MetricHealthcare:
		return "Percent of Population Lacking Healthcare"
	case MetricObesity:
		return "Obese Population Percentage"
	case MetricSmokes:
		return "Percent of Population Who Smoke"
	case MetricState:
		return "State"
	}
	panic(fmt.Sprintf("models: unknown metric %d", int(m)))
}

// TooltipLabel is the prefix shown before the metric value in a tooltip
func (m Metric) TooltipLabel() string {
	switch m {
	case MetricPoverty:
		return "Poverty (%):"
	case MetricAge:
		return "Age (Median):"
	case MetricIncome:
		return "Household Income (Median):"
	case MetricHealthcare:
		return "Healthcare (% lacking):"
	case MetricObesity:
		return "Obese (%):"
	case MetricSmokes:
		return "Smokes (%):"
	case MetricState:
		return "State:"
	}
	panic(fmt.Sprintf("models: unknown metric %d", int(m)))
}

// Categorical reports whether the metric is plotted on a band scale
func (m Metric) Categorical() bool {
	return m == MetricState
}

// Axis is one of the two chart axes
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// ParseAxis accepts "x" or "y"
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	default:
		return 0, fmt.Errorf("invalid axis: %s", s)
	}
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	}
	panic(fmt.Sprintf("models: unknown axis %d", int(a)))
}
