package thermo

import "errors"

// FakeSensor is a test double that returns scripted readings.
type FakeSensor struct {
	// Readings contains scripted values to return. Each call to Read()
	// consumes the next reading; once exhausted, the last reading is
	// returned repeatedly.
	Readings []Reading

	// index tracks current position in Readings
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeSensor creates a FakeSensor with the given readings.
func NewFakeSensor(readings []Reading) *FakeSensor {
	return &FakeSensor{Readings: readings}
}

// Read returns the next scripted reading.
func (f *FakeSensor) Read() (Reading, error) {
	if f.ReadError != nil {
		return Reading{}, f.ReadError
	}

	if len(f.Readings) == 0 {
		return Reading{}, errors.New("no readings configured")
	}

	r := f.Readings[f.index]
	if f.index < len(f.Readings)-1 {
		f.index++
	}
	return r, nil
}

// Close marks the sensor as closed.
func (f *FakeSensor) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the sensor to the beginning of its readings.
func (f *FakeSensor) Reset() {
	f.index = 0
	f.Closed = false
}
