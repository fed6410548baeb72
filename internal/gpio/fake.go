package gpio

// FakeIO is a test double implementing Switches and Outputs.
type FakeIO struct {
	// Samples contains scripted switch states. Each call to Read()
	// consumes the next sample; once exhausted, the last sample is
	// returned repeatedly. With no samples both switches read released.
	Samples []SwitchSample

	// index tracks current position in Samples
	index int

	// Current actuator states.
	Heater bool
	Buzzer bool
	LED    bool

	// HeaterTransitions records the heater state each time it changed.
	HeaterTransitions []bool

	// ReadError, if set, will be returned by Read()
	ReadError error

	// OutputError, if set, will be returned by the Set methods.
	OutputError error

	// Closed tracks if Close was called
	Closed bool
}

// SwitchSample is a single scripted switch reading.
type SwitchSample struct {
	Start  bool
	Select bool
}

// NewFakeIO creates a FakeIO with the given switch samples.
func NewFakeIO(samples []SwitchSample) *FakeIO {
	return &FakeIO{Samples: samples}
}

// Read returns the next scripted switch sample.
func (f *FakeIO) Read() (bool, bool, error) {
	if f.ReadError != nil {
		return false, false, f.ReadError
	}
	if len(f.Samples) == 0 {
		return false, false, nil
	}
	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s.Start, s.Select, nil
}

// SetHeater records the heater state.
func (f *FakeIO) SetHeater(on bool) error {
	if f.OutputError != nil {
		return f.OutputError
	}
	if on != f.Heater {
		f.HeaterTransitions = append(f.HeaterTransitions, on)
	}
	f.Heater = on
	return nil
}

// SetBuzzer records the buzzer state.
func (f *FakeIO) SetBuzzer(on bool) error {
	if f.OutputError != nil {
		return f.OutputError
	}
	f.Buzzer = on
	return nil
}

// SetLED records the LED state.
func (f *FakeIO) SetLED(on bool) error {
	if f.OutputError != nil {
		return f.OutputError
	}
	f.LED = on
	return nil
}

// Close marks the fake as closed.
func (f *FakeIO) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the samples and clears recorded state.
func (f *FakeIO) Reset() {
	f.index = 0
	f.Heater = false
	f.Buzzer = false
	f.LED = false
	f.HeaterTransitions = nil
	f.Closed = false
}
