package gpio

import (
	"errors"
	"testing"
)

func TestFakeIORead(t *testing.T) {
	samples := []SwitchSample{
		{Start: true, Select: false},
		{Start: false, Select: true},
		{Start: false, Select: false},
	}
	f := NewFakeIO(samples)

	start, sel, err := f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !start || sel {
		t.Errorf("sample 0: expected (true, false), got (%v, %v)", start, sel)
	}

	start, sel, _ = f.Read()
	if start || !sel {
		t.Errorf("sample 1: expected (false, true), got (%v, %v)", start, sel)
	}

	f.Read()

	// Exhausted samples repeat the last one
	start, sel, _ = f.Read()
	if start || sel {
		t.Errorf("repeat: expected (false, false), got (%v, %v)", start, sel)
	}
}

func TestFakeIONoSamples(t *testing.T) {
	f := NewFakeIO(nil)

	// No script means both switches read released
	start, sel, err := f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start || sel {
		t.Errorf("expected both released, got (%v, %v)", start, sel)
	}
}

func TestFakeIOReadError(t *testing.T) {
	f := NewFakeIO(nil)
	f.ReadError = errors.New("chip gone")
	if _, _, err := f.Read(); err == nil {
		t.Error("expected injected read error")
	}
}

func TestFakeIOOutputs(t *testing.T) {
	f := NewFakeIO(nil)

	f.SetHeater(true)
	f.SetHeater(true) // same state, no new transition
	f.SetHeater(false)
	f.SetBuzzer(true)
	f.SetLED(true)

	if f.Heater {
		t.Error("expected heater off")
	}
	if !f.Buzzer || !f.LED {
		t.Error("expected buzzer and LED on")
	}
	if len(f.HeaterTransitions) != 2 {
		t.Fatalf("expected 2 heater transitions, got %d", len(f.HeaterTransitions))
	}
	if f.HeaterTransitions[0] != true || f.HeaterTransitions[1] != false {
		t.Errorf("unexpected transitions: %v", f.HeaterTransitions)
	}

	f.OutputError = errors.New("line gone")
	if err := f.SetHeater(true); err == nil {
		t.Error("expected injected output error")
	}

	f.Close()
	if !f.Closed {
		t.Error("expected Closed set")
	}
}
