//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealIO drives actual hardware through the Linux GPIO character device.
// It implements both Switches and Outputs.
type RealIO struct {
	chip   *gpiocdev.Chip
	start  *gpiocdev.Line
	sel    *gpiocdev.Line
	heater *gpiocdev.Line
	buzzer *gpiocdev.Line
	led    *gpiocdev.Line
}

// NewRealIO requests the switch and actuator lines. The switches are
// inputs with internal pull-ups (pressed pulls the line to ground); the
// actuator lines start driven low so the oven is off at boot.
func NewRealIO(pins Pins) (*RealIO, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	io := &RealIO{chip: chip}

	io.start, err = chip.RequestLine(pins.Start, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		io.Close()
		return nil, fmt.Errorf("request start switch pin %d: %w", pins.Start, err)
	}
	io.sel, err = chip.RequestLine(pins.Select, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		io.Close()
		return nil, fmt.Errorf("request select switch pin %d: %w", pins.Select, err)
	}

	io.heater, err = chip.RequestLine(pins.SSR, gpiocdev.AsOutput(0))
	if err != nil {
		io.Close()
		return nil, fmt.Errorf("request ssr pin %d: %w", pins.SSR, err)
	}
	io.buzzer, err = chip.RequestLine(pins.Buzzer, gpiocdev.AsOutput(0))
	if err != nil {
		io.Close()
		return nil, fmt.Errorf("request buzzer pin %d: %w", pins.Buzzer, err)
	}
	io.led, err = chip.RequestLine(pins.LED, gpiocdev.AsOutput(0))
	if err != nil {
		io.Close()
		return nil, fmt.Errorf("request led pin %d: %w", pins.LED, err)
	}

	return io, nil
}

// Read returns the logical switch states. Inverts raw GPIO: raw low (0)
// with the pull-up means pressed.
func (io *RealIO) Read() (bool, bool, error) {
	startRaw, err := io.start.Value()
	if err != nil {
		return false, false, fmt.Errorf("read start switch: %w", err)
	}
	selRaw, err := io.sel.Value()
	if err != nil {
		return false, false, fmt.Errorf("read select switch: %w", err)
	}
	return startRaw == 0, selRaw == 0, nil
}

// SetHeater drives the solid state relay.
func (io *RealIO) SetHeater(on bool) error {
	return setLine(io.heater, on, "ssr")
}

// SetBuzzer drives the buzzer.
func (io *RealIO) SetBuzzer(on bool) error {
	return setLine(io.buzzer, on, "buzzer")
}

// SetLED drives the heartbeat LED.
func (io *RealIO) SetLED(on bool) error {
	return setLine(io.led, on, "led")
}

func setLine(l *gpiocdev.Line, on bool, name string) error {
	v := 0
	if on {
		v = 1
	}
	if err := l.SetValue(v); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	return nil
}

// Close drives all outputs low, then releases every line and the chip.
// The heater must never be left on past the daemon's lifetime.
func (io *RealIO) Close() error {
	var errs []error

	for _, out := range []*gpiocdev.Line{io.heater, io.buzzer, io.led} {
		if out == nil {
			continue
		}
		if err := out.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("drive output low: %w", err))
		}
		if err := out.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close output: %w", err))
		}
	}
	for _, in := range []*gpiocdev.Line{io.start, io.sel} {
		if in == nil {
			continue
		}
		if err := in.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close input: %w", err))
		}
	}
	if io.chip != nil {
		if err := io.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
