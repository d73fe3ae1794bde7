package scale

import (
	"math"
	"testing"

	"census/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func alphaBeta() []models.Record {
	return []models.Record{
		{ID: 1, State: "Alpha", Abbr: "AL", Income: 40000, Poverty: 12},
		{ID: 2, State: "Beta", Abbr: "BE", Income: 60000, Poverty: 8},
	}
}

func TestBuildScaleLinear(t *testing.T) {
	s, err := BuildScale(alphaBeta(), models.MetricIncome, Range{20, 780}, 0.02)
	require.NoError(t, err)

	lin, ok := s.(*Linear)
	require.True(t, ok)
	d0, d1 := lin.Domain()
	assert.Equal(t, 40000.0, d0)
	assert.InDelta(t, 61200.0, d1, tol)

	assert.InDelta(t, 20.0, lin.Map(40000), tol)
	assert.InDelta(t, 780.0, lin.Map(61200), tol)
	assert.Less(t, lin.Map(60000), 780.0)
}

func TestBuildScaleInvertedRange(t *testing.T) {
	s, err := BuildScale(alphaBeta(), models.MetricPoverty, Range{580, 0}, 0.08)
	require.NoError(t, err)

	recs := alphaBeta()
	alpha, err := s.Apply(&recs[0])
	require.NoError(t, err)
	beta, err := s.Apply(&recs[1])
	require.NoError(t, err)

	// Smaller values sit lower on screen, at larger pixel coordinates.
	assert.InDelta(t, 580.0, beta, tol)
	assert.Less(t, alpha, beta)
}

func TestScaleContainsEveryRecord(t *testing.T) {
	recs := []models.Record{
		{Abbr: "A", Age: 30.1, Healthcare: 5},
		{Abbr: "B", Age: 44.2, Healthcare: 17.5},
		{Abbr: "C", Age: 38, Healthcare: 9},
		{Abbr: "D", Age: 41.5, Healthcare: 12.25},
	}
	rngs := []Range{{20, 780}, {580, 0}}
	for _, m := range []models.Metric{models.MetricAge, models.MetricHealthcare} {
		for _, rng := range rngs {
			s, err := BuildScale(recs, m, rng, 0.08)
			require.NoError(t, err)
			for i := range recs {
				px, err := s.Apply(&recs[i])
				require.NoError(t, err)
				assert.True(t, rng.Contains(px), "%s %v outside %v", m, px, rng)
			}
		}
	}
}

func TestBuildScaleDegenerate(t *testing.T) {
	cases := []struct {
		name string
		recs []models.Record
		want float64
	}{
		{"single record", []models.Record{{Abbr: "AL", Income: 40000}}, 40000},
		{"constant metric", []models.Record{{Abbr: "AL", Income: 5}, {Abbr: "BE", Income: 5}}, 5},
		{"all zero", []models.Record{{Abbr: "AL"}, {Abbr: "BE"}}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := BuildScale(tc.recs, models.MetricIncome, Range{20, 780}, 0.02)
			require.NoError(t, err)
			lin := s.(*Linear)
			d0, d1 := lin.Domain()
			assert.Equal(t, 0.0, d0)
			assert.Equal(t, tc.want, d1)
			assert.Greater(t, d1-d0, 0.0)

			px, err := s.Apply(&tc.recs[0])
			require.NoError(t, err)
			assert.False(t, math.IsNaN(px))
			assert.True(t, s.Range().Contains(px))
		})
	}
}

func TestBuildScaleErrors(t *testing.T) {
	_, err := BuildScale(nil, models.MetricIncome, Range{0, 100}, 0.02)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = BuildScale(alphaBeta(), models.MetricIncome, Range{0, math.NaN()}, 0.02)
	assert.Error(t, err)
}

func TestBand(t *testing.T) {
	recs := []models.Record{
		{Abbr: "AL", State: "Alpha"},
		{Abbr: "BE", State: "Beta"},
		{Abbr: "GA", State: "Gamma"},
		{Abbr: "DE", State: "Delta"},
	}
	s, err := BuildScale(recs, models.MetricState, Range{15, 415}, 0)
	require.NoError(t, err)

	b, ok := s.(*Band)
	require.True(t, ok)
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma", "Delta"}, b.Categories())
	assert.InDelta(t, 100.0, b.Bandwidth(), tol)

	for i := range recs {
		px, err := b.Apply(&recs[i])
		require.NoError(t, err)
		assert.InDelta(t, 15+100*float64(i), px, tol)
	}

	_, ok = b.MapCategory("Omega")
	assert.False(t, ok)

	ticks := b.Ticks(0)
	require.Len(t, ticks, 4)
	assert.Equal(t, "Gamma", ticks[2].Label)
}

func TestLinearApplyRejectsCategory(t *testing.T) {
	lin := NewLinear(models.MetricState, 0, 1, Range{0, 1})
	_, err := lin.Apply(&models.Record{State: "Alpha"})
	assert.Error(t, err)
}

func TestLinearTicks(t *testing.T) {
	lin := NewLinear(models.MetricPoverty, 8, 12.96, Range{580, 0})
	ticks := lin.Ticks(5)
	require.NotEmpty(t, ticks)
	assert.Equal(t, "8", ticks[0].Label)
	assert.Equal(t, "12", ticks[len(ticks)-1].Label)
	for _, tk := range ticks {
		assert.True(t, lin.Range().Contains(tk.Pos), tk.Label)
	}

	small := NewLinear(models.MetricSmokes, 0, 0.5, Range{0, 100})
	assert.Equal(t, "0.1", small.Ticks(5)[1].Label)
}

func TestTickStep(t *testing.T) {
	assert.Equal(t, 1.0, tickStep(8, 12.96, 5))
	assert.Equal(t, 5000.0, tickStep(40000, 61200, 5))
	assert.Equal(t, 0.0, tickStep(1, 1, 5))
}
