// Package gpio provides switch input and actuator output with hardware
// abstraction. The real implementation uses the Linux GPIO character
// device; the fake allows testing without hardware.
package gpio

// Switches reads the two momentary switches.
type Switches interface {
	// Read returns whether the start/stop and profile-select switches
	// are currently pressed. The raw lines are active-low: line low =
	// pressed.
	Read() (start, sel bool, err error)

	// Close releases GPIO resources.
	Close() error
}

// Outputs drives the oven actuators.
type Outputs interface {
	// SetHeater drives the solid state relay.
	SetHeater(on bool) error

	// SetBuzzer drives the completion buzzer.
	SetBuzzer(on bool) error

	// SetLED drives the heartbeat LED.
	SetLED(on bool) error

	// Close releases GPIO resources, leaving all outputs low.
	Close() error
}

// Default pin assignment (BCM numbering).
const (
	DefaultPinStart  = 23 // start/stop switch
	DefaultPinSelect = 24 // profile-select switch
	DefaultPinSSR    = 18 // solid state relay
	DefaultPinBuzzer = 12
	DefaultPinLED    = 16
)

// Pins is the full pin assignment for the real hardware.
type Pins struct {
	Start  int
	Select int
	SSR    int
	Buzzer int
	LED    int
}

// DefaultPins returns the stock pin assignment.
func DefaultPins() Pins {
	return Pins{
		Start:  DefaultPinStart,
		Select: DefaultPinSelect,
		SSR:    DefaultPinSSR,
		Buzzer: DefaultPinBuzzer,
		LED:    DefaultPinLED,
	}
}
