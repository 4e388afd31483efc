package swipe

import (
	"math"
	"time"
)

// DefaultDuration is the length of every settle animation.
const DefaultDuration = 100 * time.Millisecond

// EaseOutQuint maps linear progress t in [0, 1] to eased progress.
func EaseOutQuint(t float64) float64 {
	return 1 - math.Pow(1-t, 5)
}

// Animation moves the slider offset from From to To over Duration.
type Animation struct {
	Start      time.Time
	From       float64
	To         float64
	Duration   time.Duration
	OnComplete func()
}

// Sample returns the offset at now. Once the duration has elapsed it reports
// done, and the caller should snap to rest instead of using the value.
func (a *Animation) Sample(now time.Time) (value float64, done bool) {
	if a.Duration <= 0 {
		return a.To, true
	}
	t := float64(now.Sub(a.Start)) / float64(a.Duration)
	if t >= 1 {
		return a.To, true
	}
	if t < 0 {
		t = 0
	}
	return a.From + (a.To-a.From)*EaseOutQuint(t), false
}
