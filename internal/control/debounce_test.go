package control

import (
	"testing"
	"time"
)

func TestDebounceSinglePress(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := debouncer{period: 100 * time.Millisecond}

	// Press begins - starts checking, no event yet
	if ev := d.advance(SwitchStartStop, now); ev != EventNone {
		t.Errorf("expected no event at press start, got %v", ev)
	}

	// Still held, before debounce period
	if ev := d.advance(SwitchStartStop, now.Add(50*time.Millisecond)); ev != EventNone {
		t.Errorf("expected no event before debounce period, got %v", ev)
	}

	// Held past debounce period - event fires exactly once
	if ev := d.advance(SwitchStartStop, now.Add(100*time.Millisecond)); ev != EventStartStop {
		t.Errorf("expected EventStartStop at debounce period, got %v", ev)
	}

	// Still held - no repeat
	if ev := d.advance(SwitchStartStop, now.Add(500*time.Millisecond)); ev != EventNone {
		t.Errorf("expected no repeat event while held, got %v", ev)
	}
	if ev := d.advance(SwitchStartStop, now.Add(5*time.Second)); ev != EventNone {
		t.Errorf("expected no repeat event while held, got %v", ev)
	}

	// Release re-arms
	if ev := d.advance(SwitchNone, now.Add(6*time.Second)); ev != EventNone {
		t.Errorf("expected no event on release, got %v", ev)
	}

	// Second press produces a second event
	d.advance(SwitchStartStop, now.Add(7*time.Second))
	if ev := d.advance(SwitchStartStop, now.Add(7*time.Second+100*time.Millisecond)); ev != EventStartStop {
		t.Errorf("expected second press event after release, got %v", ev)
	}
}

func TestDebounceTransientIgnored(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := debouncer{period: 100 * time.Millisecond}

	// Blip shorter than the debounce period
	d.advance(SwitchStartStop, now)
	if ev := d.advance(SwitchNone, now.Add(30*time.Millisecond)); ev != EventNone {
		t.Errorf("expected no event for transient, got %v", ev)
	}

	// Time passes with nothing pressed - still no event
	if ev := d.advance(SwitchNone, now.Add(time.Second)); ev != EventNone {
		t.Errorf("expected no event after transient, got %v", ev)
	}
}

func TestDebounceSwitchChangeDuringCheck(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := debouncer{period: 100 * time.Millisecond}

	d.advance(SwitchStartStop, now)

	// Reading changes to the other switch mid-check: the pending press is
	// discarded, and the new reading starts its own cycle from scratch.
	if ev := d.advance(SwitchProfile, now.Add(50*time.Millisecond)); ev != EventNone {
		t.Errorf("expected no event on switch change, got %v", ev)
	}
	if ev := d.advance(SwitchProfile, now.Add(60*time.Millisecond)); ev != EventNone {
		t.Errorf("expected no event before new debounce period, got %v", ev)
	}
	if ev := d.advance(SwitchProfile, now.Add(160*time.Millisecond)); ev != EventProfile {
		t.Errorf("expected EventProfile after full period on new switch, got %v", ev)
	}
}

func TestDebounceProfileSwitch(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := debouncer{period: 100 * time.Millisecond}

	d.advance(SwitchProfile, now)
	if ev := d.advance(SwitchProfile, now.Add(100*time.Millisecond)); ev != EventProfile {
		t.Errorf("expected EventProfile, got %v", ev)
	}
}
