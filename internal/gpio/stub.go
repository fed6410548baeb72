//go:build !linux

package gpio

import "errors"

// RealIO is not available on non-Linux platforms.
type RealIO struct{}

// NewRealIO returns an error on non-Linux platforms.
func NewRealIO(pins Pins) (*RealIO, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Read is not implemented on non-Linux platforms.
func (io *RealIO) Read() (bool, bool, error) {
	return false, false, errors.New("gpio: not supported")
}

// SetHeater is not implemented on non-Linux platforms.
func (io *RealIO) SetHeater(on bool) error { return errors.New("gpio: not supported") }

// SetBuzzer is not implemented on non-Linux platforms.
func (io *RealIO) SetBuzzer(on bool) error { return errors.New("gpio: not supported") }

// SetLED is not implemented on non-Linux platforms.
func (io *RealIO) SetLED(on bool) error { return errors.New("gpio: not supported") }

// Close is not implemented on non-Linux platforms.
func (io *RealIO) Close() error { return nil }
