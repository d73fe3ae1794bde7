package scale

import (
	"fmt"
	"math"
	"strconv"

	"census/internal/models"
)

// Linear interpolates between domain [D0, D1] and the pixel range
type Linear struct {
	metric models.Metric
	D0, D1 float64
	rng    Range
}

// NewLinear creates a linear scale with an explicit domain
func NewLinear(metric models.Metric, d0, d1 float64, rng Range) *Linear {
	return &Linear{metric: metric, D0: d0, D1: d1, rng: rng}
}

func (s *Linear) Metric() models.Metric { return s.metric }

func (s *Linear) Range() Range { return s.rng }

// Domain returns the data bounds of the scale
func (s *Linear) Domain() (float64, float64) { return s.D0, s.D1 }

// Map converts a domain value into a pixel coordinate
func (s *Linear) Map(v float64) float64 {
	t := (v - s.D0) / (s.D1 - s.D0)
	return s.rng.Lo + t*s.rng.Len()
}

// Apply maps the record's value for the scale's metric
func (s *Linear) Apply(r *models.Record) (float64, error) {
	v, ok := r.Value(s.metric)
	if !ok {
		return 0, fmt.Errorf("scale: %s is not numeric", s.metric)
	}
	px := s.Map(v)
	if !finite(px) {
		return 0, fmt.Errorf("scale: %s=%v maps outside the plot", s.metric, v)
	}
	return px, nil
}

// Ticks returns roughly n ticks on round values inside the domain
func (s *Linear) Ticks(n int) []Tick {
	step := tickStep(s.D0, s.D1, n)
	if step <= 0 {
		return nil
	}
	prec := int(math.Max(0, -math.Floor(math.Log10(step)+1e-9)))

	var ticks []Tick
	for i := math.Ceil(s.D0 / step); i*step <= s.D1+step*1e-9; i++ {
		v := i * step
		ticks = append(ticks, Tick{
			Pos:   s.Map(v),
			Label: strconv.FormatFloat(v, 'f', prec, 64),
		})
	}
	return ticks
}

// tickStep picks a 1, 2 or 5 times power of ten step giving about n ticks
func tickStep(lo, hi float64, n int) float64 {
	if n <= 0 || hi <= lo {
		return 0
	}
	raw := (hi - lo) / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch r := raw / mag; {
	case r >= 7.07:
		return 10 * mag
	case r >= 3.16:
		return 5 * mag
	case r >= 1.41:
		return 2 * mag
	default:
		return mag
	}
}
