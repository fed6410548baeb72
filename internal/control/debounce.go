package control

import "time"

// debounceState tracks the switch debounce machine.
type debounceState uint8

const (
	debounceIdle debounceState = iota
	debounceChecking
	debounceWaitRelease
)

// debouncer converts raw switch readings into at most one Event per
// physical press-and-release cycle. An event fires exactly on the
// checking -> waiting-for-release transition, so holding a switch never
// repeat-fires.
type debouncer struct {
	period time.Duration
	state  debounceState
	mask   Switch
	since  time.Time
}

// advance consumes one raw reading and returns the event confirmed this
// tick, or EventNone.
func (d *debouncer) advance(raw Switch, now time.Time) Event {
	switch d.state {
	case debounceIdle:
		if raw != SwitchNone {
			d.mask = raw
			d.since = now
			d.state = debounceChecking
		}

	case debounceChecking:
		if raw != d.mask {
			// False trigger: released or changed before the
			// debounce period elapsed.
			d.state = debounceIdle
			break
		}
		if now.Sub(d.since) >= d.period {
			d.state = debounceWaitRelease
			return eventFor(d.mask)
		}

	case debounceWaitRelease:
		if raw == SwitchNone {
			d.state = debounceIdle
		}
	}
	return EventNone
}

func eventFor(s Switch) Event {
	switch s {
	case SwitchStartStop:
		return EventStartStop
	case SwitchProfile:
		return EventProfile
	}
	return EventNone
}
