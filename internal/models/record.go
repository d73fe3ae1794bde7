package models

import (
	"fmt"
	"math"
	"strconv"
)

// Record represents one state's census observations
type Record struct {
	ID    int    `json:"id"`
	State string `json:"state"`
	Abbr  string `json:"abbr"`

	Poverty    float64 `json:"poverty"`
	Age        float64 `json:"age"`
	Income     float64 `json:"income"`
	Healthcare float64 `json:"healthcare"`
	Obesity    float64 `json:"obesity"`
	Smokes     float64 `json:"smokes"`

	// Optional error bounds, zero when the source omits them.
	PovertyMoe     float64 `json:"povertyMoe,omitempty"`
	AgeMoe         float64 `json:"ageMoe,omitempty"`
	IncomeMoe      float64 `json:"incomeMoe,omitempty"`
	HealthcareLow  float64 `json:"healthcareLow,omitempty"`
	HealthcareHigh float64 `json:"healthcareHigh,omitempty"`
	ObesityLow     float64 `json:"obesityLow,omitempty"`
	ObesityHigh    float64 `json:"obesityHigh,omitempty"`
	SmokesLow      float64 `json:"smokesLow,omitempty"`
	SmokesHigh     float64 `json:"smokesHigh,omitempty"`
}

// Value returns the numeric value of m for the record. Categorical metrics
// report ok == false.
func (r *Record) Value(m Metric) (v float64, ok bool) {
	switch m {
	case MetricPoverty:
		return r.Poverty, true
	case MetricAge:
		return r.Age, true
	case MetricIncome:
		return r.Income, true
	case MetricHealthcare:
		return r.Healthcare, true
	case MetricObesity:
		return r.Obesity, true
	case MetricSmokes:
		return r.Smokes, true
	case MetricState:
		return 0, false
	}
	panic(fmt.Sprintf("models: unknown metric %d", int(m)))
}

// Category returns the categorical value of m for the record
func (r *Record) Category(m Metric) (string, bool) {
	if m == MetricState {
		return r.State, true
	}
	return "", false
}

// Format renders the metric value the way it appears in tooltips
func (r *Record) Format(m Metric) string {
	if c, ok := r.Category(m); ok {
		return c
	}
	v, _ := r.Value(m)
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Validate checks the per-record invariants
func (r *Record) Validate() error {
	if r.Abbr == "" {
		return fmt.Errorf("record %d: abbreviation is required", r.ID)
	}
	for _, m := range Metrics {
		v, ok := r.Value(m)
		if !ok {
			continue
		}
		if !(v >= 0) || math.IsInf(v, 1) {
			return fmt.Errorf("record %s: %s must be a non-negative number, got %v", r.Abbr, m.Field(), v)
		}
	}
	return nil
}
