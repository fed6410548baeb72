package control

import "time"

// relayWindow implements time-proportioning control: within each window of
// fixed length, the heater is on for the first output milliseconds and off
// for the remainder.
type relayWindow struct {
	size  time.Duration
	start time.Time
}

func (w *relayWindow) reset(now time.Time) {
	w.start = now
}

// heaterOn reports whether the heater should be on for this tick, given
// the PID output in [0, windowSize] milliseconds. When a full window has
// elapsed the window start advances by exactly one window size, not to
// now, so the duty cycle stays accurate under tick jitter.
func (w *relayWindow) heaterOn(now time.Time, output float64) bool {
	if now.Sub(w.start) > w.size {
		w.start = w.start.Add(w.size)
	}
	elapsedMs := float64(now.Sub(w.start)) / float64(time.Millisecond)
	return output > elapsedMs
}
