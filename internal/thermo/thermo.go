// Package thermo provides thermocouple temperature readings with hardware
// abstraction. The real implementation reads a MAX31856 interface board
// over a serial line; the fake returns scripted readings for tests.
package thermo

import "strings"

// FaultMask is the MAX31856 fault status register: eight independent
// fault flags.
type FaultMask uint8

const (
	FaultOpen    FaultMask = 1 << iota // thermocouple open circuit
	FaultOvUv                          // over/under voltage on the input
	FaultTCLow                         // thermocouple below low threshold
	FaultTCHigh                        // thermocouple above high threshold
	FaultCJLow                         // cold junction below low threshold
	FaultCJHigh                        // cold junction above high threshold
	FaultTCRange                       // thermocouple out of range
	FaultCJRange                       // cold junction out of range
)

const faultAll = FaultOpen | FaultOvUv | FaultTCLow | FaultTCHigh |
	FaultCJLow | FaultCJHigh | FaultTCRange | FaultCJRange

// Faulted reports whether any recognized fault bit is set. Every fault
// kind forces the same recovery path; the kind only matters for display
// and logging.
func (m FaultMask) Faulted() bool {
	return m&faultAll != 0
}

var faultNames = []struct {
	bit  FaultMask
	name string
}{
	{FaultOpen, "OPEN"},
	{FaultOvUv, "OVUV"},
	{FaultTCLow, "TCLOW"},
	{FaultTCHigh, "TCHIGH"},
	{FaultCJLow, "CJLOW"},
	{FaultCJHigh, "CJHIGH"},
	{FaultTCRange, "TCRANGE"},
	{FaultCJRange, "CJRANGE"},
}

// String lists the set fault bits, or "none".
func (m FaultMask) String() string {
	if !m.Faulted() {
		return "none"
	}
	var names []string
	for _, f := range faultNames {
		if m&f.bit != 0 {
			names = append(names, f.name)
		}
	}
	return strings.Join(names, "+")
}

// Reading is one thermocouple sample.
type Reading struct {
	// Temperature in degrees Celsius.
	Temperature float64

	// Fault is the raw fault register captured with the reading.
	Fault FaultMask
}

// Sensor reads thermocouple samples.
type Sensor interface {
	// Read returns the most recent reading.
	Read() (Reading, error)

	// Close releases the sensor.
	Close() error
}
