// Package pid implements a proportional-integral-derivative controller
// compatible with the Arduino PID_v1 library, so published reflow tunings
// transfer directly: fixed sample time, working gains rescaled by the
// sample period, derivative on measurement, and the integral term clamped
// to the output limits.
package pid

import "time"

const defaultSampleTime = 100 * time.Millisecond

// Controller is a single PID loop. Not safe for concurrent use.
type Controller struct {
	// Working gains, scaled by the sample time.
	kp, ki, kd float64

	// Gains as supplied, kept so SetSampleTime can rescale.
	userKp, userKi, userKd float64

	sampleTime time.Duration
	outMin     float64
	outMax     float64

	outputSum  float64
	lastInput  float64
	lastOutput float64
	lastTime   time.Time
	auto       bool
}

// New creates a controller with the given gains, a 100 ms sample time,
// and output limits of [0, 255]. Callers normally override both.
func New(kp, ki, kd float64) *Controller {
	c := &Controller{
		sampleTime: defaultSampleTime,
		outMax:     255,
	}
	c.SetTunings(kp, ki, kd)
	return c
}

// SetTunings replaces the PID gains. Negative gains are ignored.
func (c *Controller) SetTunings(kp, ki, kd float64) {
	if kp < 0 || ki < 0 || kd < 0 {
		return
	}
	c.userKp, c.userKi, c.userKd = kp, ki, kd
	sec := c.sampleTime.Seconds()
	c.kp = kp
	c.ki = ki * sec
	c.kd = kd / sec
}

// SetSampleTime changes the period at which Compute recalculates, and
// rescales the working integral and derivative gains to match.
func (c *Controller) SetSampleTime(d time.Duration) {
	if d <= 0 {
		return
	}
	ratio := d.Seconds() / c.sampleTime.Seconds()
	c.ki *= ratio
	c.kd /= ratio
	c.sampleTime = d
}

// SetOutputLimits bounds the output and the integral term.
func (c *Controller) SetOutputLimits(min, max float64) {
	if min >= max {
		return
	}
	c.outMin, c.outMax = min, max
	c.outputSum = c.clamp(c.outputSum)
	c.lastOutput = c.clamp(c.lastOutput)
}

// Enable turns the controller on. If it is already enabled this is a
// no-op, so accumulated state carries across successive runs, matching
// PID_v1's SetMode(AUTOMATIC) semantics.
func (c *Controller) Enable(now time.Time, input float64) {
	if c.auto {
		return
	}
	c.auto = true
	c.lastInput = input
	c.outputSum = c.clamp(c.lastOutput)
	// Backdate so the first Compute produces a fresh output.
	c.lastTime = now.Add(-c.sampleTime)
}

// Disable turns the controller off; Compute returns the last output until
// it is enabled again.
func (c *Controller) Disable() {
	c.auto = false
}

// Reset clears the accumulated integral and derivative state.
func (c *Controller) Reset(now time.Time, input float64) {
	c.outputSum = 0
	c.lastOutput = 0
	c.lastInput = input
	c.lastTime = now.Add(-c.sampleTime)
}

// Compute returns the control output for the given setpoint and measured
// input. A new output is calculated only once per sample time; between
// sample points the previous output is returned unchanged.
func (c *Controller) Compute(now time.Time, setpoint, input float64) float64 {
	if !c.auto {
		return c.lastOutput
	}
	if now.Sub(c.lastTime) < c.sampleTime {
		return c.lastOutput
	}

	err := setpoint - input
	dInput := input - c.lastInput

	c.outputSum = c.clamp(c.outputSum + c.ki*err)

	// Derivative on measurement avoids the output spike when the
	// setpoint steps between stages.
	out := c.clamp(c.kp*err + c.outputSum - c.kd*dInput)

	c.lastOutput = out
	c.lastInput = input
	c.lastTime = now
	return out
}

func (c *Controller) clamp(v float64) float64 {
	if v > c.outMax {
		return c.outMax
	}
	if v < c.outMin {
		return c.outMin
	}
	return v
}
