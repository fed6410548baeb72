// Package control contains the reflow process controller: the state
// machine that sequences temperature setpoints over time, the switch
// debouncer, the relay window driver, and per-stage PID gain scheduling.
// This package has NO hardware dependencies (no GPIO, serial, MQTT, or
// time.Sleep). Time is always injectable via time.Time parameters.
package control

import (
	"time"

	"github.com/sweeney/reflow-oven/internal/profile"
)

// State is the process state. Exactly one is active at a time; it is owned
// and mutated only by the Controller.
type State uint8

const (
	StateIdle State = iota
	StatePreheat
	StateSoak
	StateReflow
	StateCool
	StateComplete
	StateTooHot
	StateError
	StateBake
)

// stateLabels are the display labels, one per state.
var stateLabels = [...]string{
	StateIdle:     "Ready",
	StatePreheat:  "Pre",
	StateSoak:     "Soak",
	StateReflow:   "Reflow",
	StateCool:     "Cool",
	StateComplete: "Done!",
	StateTooHot:   "Hot!",
	StateError:    "Error",
	StateBake:     "Bake",
}

// String returns the display label for the state.
func (s State) String() string {
	if int(s) < len(stateLabels) {
		return stateLabels[s]
	}
	return "Unknown"
}

// Status reports whether a heat process is running. Off forces the heater
// relay off regardless of the window logic.
type Status uint8

const (
	StatusOff Status = iota
	StatusOn
)

// String returns "OFF" or "ON".
func (s Status) String() string {
	if s == StatusOn {
		return "ON"
	}
	return "OFF"
}

// Switch is a raw instantaneous switch reading, the input to the debouncer.
type Switch uint8

const (
	SwitchNone Switch = iota
	SwitchStartStop
	SwitchProfile
)

// Event is a debounced switch press. At most one is produced per physical
// press-and-release cycle.
type Event uint8

const (
	EventNone Event = iota
	EventStartStop
	EventProfile
)

// GainSet is one PID tuning set. Gain sets are swapped wholesale on stage
// transitions, never interpolated.
type GainSet struct {
	Kp float64
	Ki float64
	Kd float64
}

// StageGains holds one gain set per heating stage.
type StageGains struct {
	Preheat GainSet
	Soak    GainSet
	Reflow  GainSet
	Bake    GainSet
}

// PID is the supplied PID computation capability. Any standard PID
// implementation satisfies it; internal/pid provides one. Compute must
// return an output within the configured limits.
type PID interface {
	SetTunings(kp, ki, kd float64)
	SetOutputLimits(min, max float64)
	SetSampleTime(d time.Duration)

	// Enable turns the controller on. Enabling an already-enabled
	// controller is a no-op, so internal state carries across runs.
	Enable(now time.Time, input float64)

	// Reset clears the accumulated internal state.
	Reset(now time.Time, input float64)

	// Compute returns the control output for the given setpoint and
	// measured input. It recomputes only once per sample period and
	// returns the previous output between sample points.
	Compute(now time.Time, setpoint, input float64) float64
}

// Sample is one thermocouple reading, already classified by the fault
// monitor.
type Sample struct {
	Temperature float64
	Faulted     bool
}

// TickInput is the input to one control loop tick. Sample is non-nil only
// when the loop performed a sensor read (see Controller.SampleDue).
type TickInput struct {
	Now    time.Time
	Switch Switch
	Sample *Sample
}

// Record is one telemetry sample, produced once per second while a run is
// active.
type Record struct {
	Seconds  int
	Setpoint float64
	Input    float64
	Output   float64
}

// Frame is a display refresh, produced at the display update rate.
type Frame struct {
	State       State
	Status      Status
	Profile     profile.Profile
	Temperature float64
	SensorError bool
	Setpoint    float64
	Output      float64
	Seconds     int
}

// TickResult carries the effects of one tick. The run loop applies them;
// the Controller itself never performs I/O.
type TickResult struct {
	HeaterOn bool
	BuzzerOn bool
	LEDOn    bool

	// Telemetry is non-nil once per second while the process is on.
	Telemetry *Record

	// Header is set at run start; the telemetry sink should emit its
	// run header record.
	Header bool

	// ProfileChanged is set when a profile-select press was accepted;
	// the new selection should be persisted.
	ProfileChanged bool

	// Display is non-nil at the display refresh rate.
	Display *Frame

	// PlotPoint is a quantized temperature row for the scroll plot, or
	// -1 when no point is due this tick.
	PlotPoint int

	// PlotReset is set at run start; the plot buffer should be cleared.
	PlotReset bool
}

// Config holds the thresholds, periods, and gain sets of the controller.
type Config struct {
	// WindowSize is the time-proportioning window for the relay driver.
	WindowSize time.Duration

	// SampleInterval is the sensor sampling and telemetry period.
	SampleInterval time.Duration

	// DisplayInterval is the display refresh period.
	DisplayInterval time.Duration

	// DebouncePeriod is the minimum stable time before a switch press
	// is accepted.
	DebouncePeriod time.Duration

	RoomTemp     float64
	SoakMinTemp  float64
	CoolMinTemp  float64
	SoakStep     float64
	ReflowMargin float64
	BakeTemp     float64

	// BuzzerDuration is how long the completion signal sounds.
	BuzzerDuration time.Duration

	// PlotInterval is the number of elapsed run seconds between scroll
	// plot points.
	PlotInterval int

	// PlotWidth is the scroll plot capacity in columns.
	PlotWidth int

	// PlotTempMax is the temperature mapped to the top plot row.
	PlotTempMax float64

	Gains StageGains

	// ResetPIDOnStart clears the PID's accumulated state at each run
	// start. Off by default: the integral term carries over between
	// runs, so a restarted run resumes from the previous output level.
	ResetPIDOnStart bool
}

// DefaultConfig returns the stock tuning: a lead-free/leaded reflow oven
// with a 2 s relay window and 1 s sampling.
func DefaultConfig() Config {
	return Config{
		WindowSize:      2 * time.Second,
		SampleInterval:  time.Second,
		DisplayInterval: 100 * time.Millisecond,
		DebouncePeriod:  100 * time.Millisecond,
		RoomTemp:        50,
		SoakMinTemp:     150,
		CoolMinTemp:     100,
		SoakStep:        5,
		ReflowMargin:    5,
		BakeTemp:        120,
		BuzzerDuration:  time.Second,
		PlotInterval:    3,
		PlotWidth:       110,
		PlotTempMax:     250,
		Gains: StageGains{
			Preheat: GainSet{Kp: 100, Ki: 0.025, Kd: 20},
			Soak:    GainSet{Kp: 300, Ki: 0.05, Kd: 250},
			Reflow:  GainSet{Kp: 300, Ki: 0.05, Kd: 350},
			Bake:    GainSet{Kp: 100, Ki: 0.07, Kd: 20},
		},
	}
}
