// Package timer provides the countdown used for every periodic game transition.
package timer

import "time"

// Timer counts down from a configured duration as elapsed time is fed in.
// The zero value is a zero-length timer that is always ready.
type Timer struct {
	duration  time.Duration
	remaining time.Duration
	ready     bool
}

// New creates a timer that becomes ready after d of accumulated updates.
func New(d time.Duration) Timer {
	t := Timer{duration: d}
	t.Reset()
	return t
}

// FromMillis is a shorthand for New(ms milliseconds).
func FromMillis(ms int64) Timer {
	return New(time.Duration(ms) * time.Millisecond)
}

// Update subtracts elapsed from the remaining time, clamped at zero.
func (t *Timer) Update(elapsed time.Duration) {
	t.remaining -= elapsed
	if t.remaining <= 0 {
		t.remaining = 0
		t.ready = true
	}
}

// Reset restores the configured duration and clears ready.
func (t *Timer) Reset() {
	t.remaining = t.duration
	t.ready = t.remaining <= 0
}

// SetDuration changes the configured duration and resets the timer.
func (t *Timer) SetDuration(d time.Duration) {
	t.duration = d
	t.Reset()
}

// Ready reports whether the countdown has reached zero.
func (t *Timer) Ready() bool { return t.ready }

// Remaining returns the time left before the timer is ready.
func (t *Timer) Remaining() time.Duration { return t.remaining }

// Duration returns the configured duration.
func (t *Timer) Duration() time.Duration { return t.duration }

// Fraction returns remaining/duration in [0, 1]; zero-length timers report 0.
func (t *Timer) Fraction() float64 {
	if t.duration <= 0 {
		return 0
	}
	return float64(t.remaining) / float64(t.duration)
}
