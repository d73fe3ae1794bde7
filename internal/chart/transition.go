package chart

import "time"

// Clock supplies the current time for transitions
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock
var SystemClock Clock = systemClock{}

// Tween animates a single attribute from From to To over Duration,
// starting at Start, with cubic in-out easing.
type Tween struct {
	From, To float64
	Start    time.Time
	Duration time.Duration
}

// Fixed is a tween already resting at v
func Fixed(v float64) Tween {
	return Tween{From: v, To: v}
}

// Progress returns the linear fraction of the transition elapsed at now
func (t Tween) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.Start)) / float64(t.Duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// At evaluates the tween at now
func (t Tween) At(now time.Time) float64 {
	return t.From + (t.To-t.From)*easeCubicInOut(t.Progress(now))
}

// Done reports whether the tween has reached its target
func (t Tween) Done(now time.Time) bool {
	return t.From == t.To || t.Progress(now) >= 1
}

// Remaining is the time left before the tween reaches To
func (t Tween) Remaining(now time.Time) time.Duration {
	if t.Done(now) {
		return 0
	}
	return t.Start.Add(t.Duration).Sub(now)
}

// Retarget starts a new transition toward to from the value at now.
// A transition still in flight is superseded.
func (t Tween) Retarget(to float64, now time.Time, d time.Duration) Tween {
	return Tween{From: t.At(now), To: to, Start: now, Duration: d}
}

func easeCubicInOut(p float64) float64 {
	p *= 2
	if p <= 1 {
		return p * p * p / 2
	}
	p -= 2
	return (p*p*p + 2) / 2
}
