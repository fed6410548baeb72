package control

import (
	"time"

	"github.com/sweeney/reflow-oven/internal/profile"
)

// Controller owns the reflow process state machine and every piece of
// mutable control state: process state and status, setpoint, active gain
// set, relay window, and debounce state. It is driven by a single control
// loop, one Tick per pass, and is not safe for concurrent use.
type Controller struct {
	cfg Config
	pid PID

	state   State
	status  Status
	prof    profile.Profile
	event   Event
	faulted bool

	setpoint float64
	input    float64
	output   float64

	// Per-run profile constants, loaded at run start.
	soakMax   float64
	reflowMax float64
	soakMicro time.Duration

	window relayWindow
	deb    debouncer

	timerSoak   time.Time
	buzzerUntil time.Time
	buzzer      bool
	ledOn       bool

	// Independent deadlines, each advanced by a fixed increment so a
	// late tick never causes a catch-up burst.
	nextRead    time.Time
	nextCheck   time.Time
	nextDisplay time.Time
	clocksSet   bool

	seconds    int // elapsed run seconds
	plotSecond int // last run second a plot point was stored
}

// New creates a Controller with the given tuning, PID capability, and
// initially selected profile. The PID starts with preheat gains.
func New(cfg Config, p PID, prof profile.Profile) *Controller {
	c := &Controller{
		cfg:  cfg,
		pid:  p,
		prof: prof,
	}
	c.window.size = cfg.WindowSize
	c.deb.period = cfg.DebouncePeriod
	c.setTunings(cfg.Gains.Preheat)
	return c
}

// State returns the current process state.
func (c *Controller) State() State { return c.state }

// ProcessStatus returns whether a heat process is running.
func (c *Controller) ProcessStatus() Status { return c.status }

// Profile returns the currently selected profile.
func (c *Controller) Profile() profile.Profile { return c.prof }

// Setpoint returns the current target temperature.
func (c *Controller) Setpoint() float64 { return c.setpoint }

// Input returns the last measured temperature.
func (c *Controller) Input() float64 { return c.input }

// Output returns the last PID output.
func (c *Controller) Output() float64 { return c.output }

// SampleDue reports whether the sensor should be read before the next
// Tick. The deadline advances only when Tick receives the sample, so a
// failed read is retried on the next tick.
func (c *Controller) SampleDue(now time.Time) bool {
	c.initClocks(now)
	return !now.Before(c.nextRead)
}

func (c *Controller) initClocks(now time.Time) {
	if c.clocksSet {
		return
	}
	c.nextRead = now
	c.nextCheck = now
	c.nextDisplay = now
	c.clocksSet = true
}

func (c *Controller) setTunings(g GainSet) {
	c.pid.SetTunings(g.Kp, g.Ki, g.Kd)
}

// Tick runs one control loop pass. The evaluation order is fixed: sensor
// sample and fault detection first, then telemetry, display, the state
// table, cross-cutting switch events, the debounce advance, and finally
// PID compute and relay window. Fault detection must precede the state
// table so the Error transition preempts every per-state transition in
// the same tick.
func (c *Controller) Tick(in TickInput) TickResult {
	now := in.Now
	c.initClocks(now)
	res := TickResult{PlotPoint: -1}

	// 1. Sensor sample and fault detection.
	if in.Sample != nil {
		c.nextRead = c.nextRead.Add(c.cfg.SampleInterval)
		c.input = in.Sample.Temperature
		c.faulted = in.Sample.Faulted
		if c.faulted {
			c.state = StateError
			c.status = StatusOff
		}
	}

	// 2. Once-per-second telemetry and LED heartbeat.
	if !now.Before(c.nextCheck) {
		c.nextCheck = c.nextCheck.Add(c.cfg.SampleInterval)
		if c.status == StatusOn {
			c.ledOn = !c.ledOn
			c.seconds++
			res.Telemetry = &Record{
				Seconds:  c.seconds,
				Setpoint: c.setpoint,
				Input:    c.input,
				Output:   c.output,
			}
		} else {
			c.ledOn = false
		}
	}

	// 3. Display refresh and scroll plot.
	if !now.Before(c.nextDisplay) {
		c.nextDisplay = c.nextDisplay.Add(c.cfg.DisplayInterval)
		res.Display = &Frame{
			State:       c.state,
			Status:      c.status,
			Profile:     c.prof,
			Temperature: c.input,
			SensorError: c.state == StateError,
			Setpoint:    c.setpoint,
			Output:      c.output,
			Seconds:     c.seconds,
		}
		if c.status == StatusOn && c.seconds > c.plotSecond &&
			c.cfg.PlotInterval > 0 && c.seconds%c.cfg.PlotInterval == 0 {
			c.plotSecond = c.seconds
			res.PlotPoint = c.plotRow()
		}
	}

	// 4. State table.
	switch c.state {
	case StateIdle:
		if c.input >= c.cfg.RoomTemp {
			c.state = StateTooHot
			break
		}
		if c.event == EventStartStop {
			c.startRun(now, &res)
		}

	case StatePreheat:
		c.status = StatusOn
		if c.input >= c.cfg.SoakMinTemp {
			// Chop the soak period into micro sub-periods.
			c.timerSoak = now.Add(c.soakMicro)
			c.setTunings(c.cfg.Gains.Soak)
			c.setpoint = c.cfg.SoakMinTemp + c.cfg.SoakStep
			c.state = StateSoak
		}

	case StateSoak:
		if now.After(c.timerSoak) {
			c.timerSoak = now.Add(c.soakMicro)
			c.setpoint += c.cfg.SoakStep
			if c.setpoint > c.soakMax {
				c.setTunings(c.cfg.Gains.Reflow)
				c.setpoint = c.reflowMax
				c.state = StateReflow
			}
		}

	case StateReflow:
		// Leave a margin below peak so the oven does not hover at
		// maximum temperature.
		if c.input >= c.reflowMax-c.cfg.ReflowMargin {
			c.setTunings(c.cfg.Gains.Reflow)
			c.setpoint = c.cfg.CoolMinTemp
			c.state = StateCool
		}

	case StateCool:
		if c.input <= c.cfg.CoolMinTemp {
			c.buzzerUntil = now.Add(c.cfg.BuzzerDuration)
			c.buzzer = true
			c.status = StatusOff
			c.state = StateComplete
		}

	case StateComplete:
		if now.After(c.buzzerUntil) {
			c.buzzer = false
			c.state = StateIdle
		}

	case StateTooHot:
		if c.input < c.cfg.RoomTemp {
			c.state = StateIdle
		}

	case StateError:
		if !c.faulted {
			c.state = StateIdle
		}

	case StateBake:
		c.status = StatusOn
		c.setTunings(c.cfg.Gains.Bake)
	}

	// 5. Cross-cutting switch events, independent of the state table.
	switch c.event {
	case EventStartStop:
		if c.status == StatusOn {
			// A press during a run cancels it.
			c.status = StatusOff
			c.state = StateIdle
		}
	case EventProfile:
		if c.state == StateIdle {
			c.prof = c.prof.Next()
			res.ProfileChanged = true
		}
	}
	c.event = EventNone

	// 6. Debounce advance. A press confirmed here is consumed on the
	// next tick.
	if ev := c.deb.advance(in.Switch, now); ev != EventNone {
		c.event = ev
	}

	// 7. PID compute and relay window.
	if c.status == StatusOn {
		c.output = c.pid.Compute(now, c.setpoint, c.input)
		res.HeaterOn = c.window.heaterOn(now, c.output)
	}

	res.BuzzerOn = c.buzzer
	res.LEDOn = c.ledOn
	return res
}

// startRun initializes a new run from Idle: telemetry header, plot reset,
// relay window, PID configuration, and the initial setpoint for either
// the staged reflow profile or the indefinite bake hold.
func (c *Controller) startRun(now time.Time, res *TickResult) {
	res.Header = true
	res.PlotReset = true
	c.seconds = 0
	c.plotSecond = 0
	c.window.reset(now)

	c.pid.SetOutputLimits(0, float64(c.cfg.WindowSize.Milliseconds()))
	c.pid.SetSampleTime(c.cfg.SampleInterval)
	if c.cfg.ResetPIDOnStart {
		c.pid.Reset(now, c.input)
	}
	c.pid.Enable(now, c.input)

	if c.prof == profile.Bake {
		c.setpoint = c.cfg.BakeTemp
		c.state = StateBake
		return
	}

	c.setpoint = c.cfg.SoakMinTemp
	p := c.prof.Params()
	c.soakMax = p.SoakMax
	c.reflowMax = p.ReflowMax
	c.soakMicro = p.SoakMicroPeriod
	c.setTunings(c.cfg.Gains.Preheat)
	c.state = StatePreheat
}

// Plot rows use a 64-row display layout: 0 degrees on the bottom row,
// PlotTempMax on the top row.
const (
	plotRowTop    = 19
	plotRowBottom = 63
)

func (c *Controller) plotRow() int {
	row := plotRowBottom + int(c.input*float64(plotRowTop-plotRowBottom)/c.cfg.PlotTempMax)
	if row < plotRowTop {
		row = plotRowTop
	}
	if row > plotRowBottom {
		row = plotRowBottom
	}
	return row
}
