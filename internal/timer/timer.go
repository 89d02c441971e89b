// Package timer implements the delayed capture countdown.
package timer

import "time"

// Interval is the time that must pass between two decrements.
const Interval = time.Second

// Timer counts whole seconds down to a capture.
type Timer struct {
	Seconds  uint32
	FormOpen bool
	Running  bool
	LastTick time.Time
}

// OpenForm shows the seconds entry form.
func (t *Timer) OpenForm() {
	t.FormOpen = true
}

// Start begins the countdown. It returns true when Seconds is zero and the
// capture should happen right away instead.
func (t *Timer) Start(now time.Time) (captureNow bool) {
	t.FormOpen = false
	if t.Seconds == 0 {
		t.Running = false
		return true
	}
	t.Running = true
	t.LastTick = now
	return false
}

// Tick decrements the counter when at least Interval has passed since the
// previous decrement. It returns true exactly once, on the tick that reaches
// zero, after which the timer is reset.
func (t *Timer) Tick(now time.Time) (fired bool) {
	if !t.Running {
		return false
	}
	if t.LastTick.IsZero() {
		t.LastTick = now
		return false
	}
	if now.Sub(t.LastTick) < Interval {
		return false
	}
	t.LastTick = now
	if t.Seconds > 0 {
		t.Seconds--
	}
	if t.Seconds == 0 {
		t.Reset()
		return true
	}
	return false
}

// Cancel stops the countdown and closes the form. Calling it on an idle
// timer has no effect.
func (t *Timer) Cancel() {
	t.Reset()
}

// Reset returns the timer to its zero state.
func (t *Timer) Reset() {
	*t = Timer{}
}
