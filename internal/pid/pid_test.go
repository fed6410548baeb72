package pid

import (
	"testing"
	"time"
)

func TestProportionalResponse(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := New(2, 0, 0)
	c.SetOutputLimits(0, 1000)
	c.SetSampleTime(time.Second)
	c.Enable(t0, 10)

	// Enable backdates the clock, so the first Compute is fresh.
	out := c.Compute(t0, 100, 10)
	if out != 180 {
		t.Errorf("expected kp*err = 180, got %.2f", out)
	}
}

func TestOutputClamping(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := New(100, 0, 0)
	c.Enable(t0, 0)

	// Default limits are [0, 255]
	out := c.Compute(t0, 100, 0)
	if out != 255 {
		t.Errorf("expected output clamped to 255, got %.2f", out)
	}

	out = c.Compute(t0.Add(time.Second), 0, 100)
	if out != 0 {
		t.Errorf("expected output clamped to 0, got %.2f", out)
	}
}

func TestSampleTimeGating(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := New(1, 0, 0)
	c.SetOutputLimits(0, 1000)
	c.SetSampleTime(time.Second)
	c.Enable(t0, 0)

	out := c.Compute(t0, 100, 0)
	if out != 100 {
		t.Fatalf("expected 100, got %.2f", out)
	}

	// Within the sample period the previous output is returned unchanged,
	// even if the input moved.
	out = c.Compute(t0.Add(500*time.Millisecond), 100, 90)
	if out != 100 {
		t.Errorf("expected held output within sample period, got %.2f", out)
	}

	// At the sample boundary a new output is computed
	out = c.Compute(t0.Add(time.Second), 100, 90)
	if out != 10 {
		t.Errorf("expected fresh output at sample boundary, got %.2f", out)
	}
}

func TestSampleTimeRescalesIntegral(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// Pure-integral controllers with different sample times must integrate
	// at the same per-second rate.
	fast := New(0, 1, 0)
	fast.SetOutputLimits(0, 100)
	fast.Enable(t0, 0)
	var fastOut float64
	for i := 1; i <= 10; i++ {
		fastOut = fast.Compute(t0.Add(time.Duration(i)*100*time.Millisecond), 1, 0)
	}

	slow := New(0, 1, 0)
	slow.SetOutputLimits(0, 100)
	slow.SetSampleTime(time.Second)
	slow.Enable(t0, 0)
	slowOut := slow.Compute(t0.Add(time.Second), 1, 0)

	if fastOut != slowOut {
		t.Errorf("expected equal integral over 1s: fast=%.4f slow=%.4f", fastOut, slowOut)
	}
	if slowOut != 1 {
		t.Errorf("expected 1.0 after 1s of unit error, got %.4f", slowOut)
	}
}

func TestDerivativeOnMeasurement(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := New(0, 0, 1)
	c.SetOutputLimits(-100, 100)
	c.SetSampleTime(time.Second)
	c.Enable(t0, 0)

	// Rising input produces a negative derivative term
	out := c.Compute(t0.Add(time.Second), 50, 10)
	if out != -10 {
		t.Errorf("expected -10 for input rise of 10, got %.2f", out)
	}

	// A setpoint step with steady input produces no derivative kick
	out = c.Compute(t0.Add(2*time.Second), 500, 10)
	if out != 0 {
		t.Errorf("expected no output change on setpoint step, got %.2f", out)
	}
}

func TestIntegralCarriesAcrossEnable(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := New(0, 1, 0)
	c.SetOutputLimits(0, 100)
	c.SetSampleTime(time.Second)
	c.Enable(t0, 0)

	c.Compute(t0.Add(time.Second), 10, 0)
	out := c.Compute(t0.Add(2*time.Second), 10, 0)
	if out != 20 {
		t.Fatalf("expected accumulated 20, got %.2f", out)
	}

	// Disable then re-enable: the accumulated output carries over
	c.Disable()
	c.Enable(t0.Add(3*time.Second), 0)
	out = c.Compute(t0.Add(3*time.Second), 0, 0)
	if out != 20 {
		t.Errorf("expected carried output 20 after re-enable, got %.2f", out)
	}

	// Enabling an already-enabled controller is a no-op
	c.Enable(t0.Add(4*time.Second), 50)
	out = c.Compute(t0.Add(4*time.Second), 0, 0)
	if out != 20 {
		t.Errorf("expected no state change from redundant enable, got %.2f", out)
	}
}

func TestReset(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := New(0, 1, 0)
	c.SetOutputLimits(0, 100)
	c.SetSampleTime(time.Second)
	c.Enable(t0, 0)

	c.Compute(t0.Add(time.Second), 10, 0)
	c.Reset(t0.Add(2*time.Second), 0)

	out := c.Compute(t0.Add(2*time.Second), 0, 0)
	if out != 0 {
		t.Errorf("expected zero output after reset, got %.2f", out)
	}
}

func TestNegativeTuningsIgnored(t *testing.T) {
	c := New(2, 0, 0)
	c.SetTunings(-1, 0, 0)
	if c.userKp != 2 {
		t.Errorf("expected negative tunings ignored, kp=%v", c.userKp)
	}
}

func TestDisabledHoldsOutput(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := New(1, 0, 0)
	c.SetOutputLimits(0, 1000)
	c.SetSampleTime(time.Second)
	c.Enable(t0, 0)

	out := c.Compute(t0, 100, 0)
	if out != 100 {
		t.Fatalf("expected 100, got %.2f", out)
	}

	c.Disable()
	out = c.Compute(t0.Add(5*time.Second), 500, 0)
	if out != 100 {
		t.Errorf("expected held output while disabled, got %.2f", out)
	}
}
