package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestTween(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tw := Tween{From: 100, To: 200, Start: start, Duration: time.Second}

	assert.Equal(t, 100.0, tw.At(start))
	assert.Equal(t, 100.0, tw.At(start.Add(-time.Second)))
	assert.InDelta(t, 150.0, tw.At(start.Add(500*time.Millisecond)), 1e-9)
	assert.Equal(t, 200.0, tw.At(start.Add(time.Second)))
	assert.Equal(t, 200.0, tw.At(start.Add(time.Hour)))

	// Cubic in-out starts slow.
	assert.Less(t, tw.At(start.Add(100*time.Millisecond)), 110.0)

	assert.False(t, tw.Done(start.Add(999*time.Millisecond)))
	assert.True(t, tw.Done(start.Add(time.Second)))
	assert.Equal(t, 250*time.Millisecond, tw.Remaining(start.Add(750*time.Millisecond)))
	assert.Zero(t, tw.Remaining(start.Add(2*time.Second)))
}

func TestFixedTween(t *testing.T) {
	tw := Fixed(42)
	now := time.Now()
	assert.Equal(t, 42.0, tw.At(now))
	assert.True(t, tw.Done(now))
	assert.Zero(t, tw.Remaining(now))
}

func TestTweenRetargetSupersedes(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tw := Tween{From: 0, To: 100, Start: start, Duration: time.Second}

	mid := start.Add(500 * time.Millisecond)
	next := tw.Retarget(0, mid, time.Second)

	assert.InDelta(t, 50.0, next.From, 1e-9)
	assert.Equal(t, 0.0, next.To)
	assert.Equal(t, mid, next.Start)
	assert.InDelta(t, 50.0, next.At(mid), 1e-9)
	assert.Equal(t, 0.0, next.At(mid.Add(time.Second)))
}
