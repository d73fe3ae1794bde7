// Package scale maps record metrics onto pixel coordinates.
package scale

import (
	"errors"
	"fmt"
	"math"

	"census/internal/models"
)

// ErrEmpty is returned when a scale is requested for no records
var ErrEmpty = errors.New("scale: no records")

// Range is a pixel interval. Hi may be smaller than Lo for inverted axes.
type Range struct {
	Lo, Hi float64
}

// Contains reports whether v lies between the range ends, in either order
func (r Range) Contains(v float64) bool {
	lo, hi := math.Min(r.Lo, r.Hi), math.Max(r.Lo, r.Hi)
	return v >= lo && v <= hi
}

// Len is the signed extent of the range
func (r Range) Len() float64 {
	return r.Hi - r.Lo
}

// Tick is an axis tick at pixel position Pos
type Tick struct {
	Pos   float64
	Label string
}

// Scale maps a record's metric value to a pixel coordinate
type Scale interface {
	Metric() models.Metric
	Apply(r *models.Record) (float64, error)
	Range() Range
	Ticks(n int) []Tick
}

// BuildScale builds the scale for metric over records. Continuous metrics
// get a Linear scale whose upper bound is inflated by margin; categorical
// metrics get a Band scale.
func BuildScale(records []models.Record, metric models.Metric, rng Range, margin float64) (Scale, error) {
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	if !finite(rng.Lo) || !finite(rng.Hi) {
		return nil, fmt.Errorf("scale: invalid range [%v, %v]", rng.Lo, rng.Hi)
	}
	if metric.Categorical() {
		return NewBand(records, metric, rng), nil
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range records {
		v, _ := records[i].Value(metric)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	d0, d1 := lo, hi*(1+margin)
	if lo == hi || d1 <= d0 {
		d0, d1 = 0, math.Max(1, hi)
	}
	return &Linear{metric: metric, D0: d0, D1: d1, rng: rng}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
