package scale

import (
	"fmt"

	"census/internal/models"
)

// Band splits the pixel range into equal bands, one per distinct category
// in data order.
type Band struct {
	metric     models.Metric
	categories []string
	index      map[string]int
	rng        Range
}

// NewBand creates a band scale over the categories of records
func NewBand(records []models.Record, metric models.Metric, rng Range) *Band {
	b := &Band{metric: metric, index: make(map[string]int), rng: rng}
	for i := range records {
		c, _ := records[i].Category(metric)
		if _, ok := b.index[c]; ok {
			continue
		}
		b.index[c] = len(b.categories)
		b.categories = append(b.categories, c)
	}
	return b
}

func (b *Band) Metric() models.Metric { return b.metric }

func (b *Band) Range() Range { return b.rng }

// Categories returns the band categories in order
func (b *Band) Categories() []string { return b.categories }

// Bandwidth is the signed width of one band
func (b *Band) Bandwidth() float64 {
	if len(b.categories) == 0 {
		return 0
	}
	return b.rng.Len() / float64(len(b.categories))
}

// MapCategory returns the start of the band for c
func (b *Band) MapCategory(c string) (float64, bool) {
	i, ok := b.index[c]
	if !ok {
		return 0, false
	}
	return b.rng.Lo + float64(i)*b.Bandwidth(), true
}

func (b *Band) Apply(r *models.Record) (float64, error) {
	c, ok := r.Category(b.metric)
	if !ok {
		return 0, fmt.Errorf("scale: %s is not categorical", b.metric)
	}
	px, ok := b.MapCategory(c)
	if !ok {
		return 0, fmt.Errorf("scale: unknown %s %q", b.metric, c)
	}
	return px, nil
}

// Ticks returns one tick per category; n is ignored
func (b *Band) Ticks(int) []Tick {
	ticks := make([]Tick, len(b.categories))
	for i, c := range b.categories {
		ticks[i] = Tick{Pos: b.rng.Lo + float64(i)*b.Bandwidth(), Label: c}
	}
	return ticks
}
