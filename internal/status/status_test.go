package status

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/reflow-oven/internal/control"
	"github.com/sweeney/reflow-oven/internal/profile"
)

func TestPlotBufferFillAndWrap(t *testing.T) {
	b := NewPlotBuffer(3)

	if b.Len() != 0 || b.Cap() != 3 {
		t.Fatalf("expected empty buffer of cap 3, got len=%d cap=%d", b.Len(), b.Cap())
	}

	b.Append(10)
	b.Append(20)
	pts := b.Points()
	if len(pts) != 2 || pts[0] != 10 || pts[1] != 20 {
		t.Fatalf("expected [10 20], got %v", pts)
	}

	b.Append(30)
	b.Append(40) // overwrites 10, plot scrolls
	pts = b.Points()
	if len(pts) != 3 || pts[0] != 20 || pts[1] != 30 || pts[2] != 40 {
		t.Fatalf("expected [20 30 40], got %v", pts)
	}

	b.Append(50)
	pts = b.Points()
	if pts[0] != 30 || pts[2] != 50 {
		t.Fatalf("expected [30 40 50], got %v", pts)
	}
}

func TestPlotBufferReset(t *testing.T) {
	b := NewPlotBuffer(4)
	for i := 0; i < 6; i++ {
		b.Append(i)
	}
	b.Reset()
	if b.Len() != 0 {
		t.Errorf("expected empty after reset, got len=%d", b.Len())
	}
	b.Append(99)
	pts := b.Points()
	if len(pts) != 1 || pts[0] != 99 {
		t.Errorf("expected [99] after reset, got %v", pts)
	}
}

func TestPlotBufferZeroCapacity(t *testing.T) {
	b := NewPlotBuffer(0)
	b.Append(1)
	if b.Len() != 0 {
		t.Error("expected zero-capacity buffer to drop appends")
	}
}

func TestTrackerSnapshot(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tracker := NewTracker(start, 110, Config{
		PollMs:     25,
		SampleMs:   1000,
		DebounceMs: 100,
		Broker:     "tcp://localhost:1883",
		HTTPAddr:   ":8080",
		SerialPort: "/dev/ttyUSB0",
	})

	tracker.UpdateFrame(control.Frame{
		State:       control.StateSoak,
		Status:      control.StatusOn,
		Profile:     profile.Leaded,
		Temperature: 165.5,
		Setpoint:    170,
		Output:      1200,
		Seconds:     42,
	})
	tracker.AppendPlot(40)
	tracker.AppendPlot(38)
	tracker.SetMQTTConnected(true)

	snap := tracker.Snapshot()
	if snap.State != control.StateSoak {
		t.Errorf("unexpected state: %v", snap.State)
	}
	if snap.Status != control.StatusOn {
		t.Errorf("unexpected status: %v", snap.Status)
	}
	if snap.Profile != profile.Leaded {
		t.Errorf("unexpected profile: %v", snap.Profile)
	}
	if snap.Temperature != 165.5 {
		t.Errorf("unexpected temperature: %v", snap.Temperature)
	}
	if snap.Seconds != 42 {
		t.Errorf("unexpected seconds: %d", snap.Seconds)
	}
	if len(snap.Plot) != 2 || snap.Plot[0] != 40 || snap.Plot[1] != 38 {
		t.Errorf("unexpected plot: %v", snap.Plot)
	}
	if !snap.MQTTConnected {
		t.Error("expected MQTT connected")
	}
	if !snap.StartTime.Equal(start) {
		t.Errorf("unexpected start time: %v", snap.StartTime)
	}
	if snap.Config.Broker != "tcp://localhost:1883" {
		t.Errorf("unexpected broker: %s", snap.Config.Broker)
	}

	// Plot reset clears the snapshot's view
	tracker.ResetPlot()
	snap = tracker.Snapshot()
	if len(snap.Plot) != 0 {
		t.Errorf("expected empty plot after reset, got %v", snap.Plot)
	}
}

func TestFormatJSON(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tracker := NewTracker(start, 110, Config{
		PollMs: 25,
		Broker: "tcp://localhost:1883",
	})
	tracker.UpdateFrame(control.Frame{
		State:       control.StateReflow,
		Status:      control.StatusOn,
		Profile:     profile.LeadFree,
		Temperature: 230.25,
		Setpoint:    250,
		Output:      800,
		Seconds:     180,
	})
	tracker.AppendPlot(25)

	data := FormatJSON(tracker.Snapshot())

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	inner := parsed.Status
	if inner.State != "Reflow" {
		t.Errorf("unexpected state: %s", inner.State)
	}
	if !inner.Running {
		t.Error("expected running true")
	}
	if inner.Profile != "lead-free" || inner.ProfileCode != "LF" {
		t.Errorf("unexpected profile: %s/%s", inner.Profile, inner.ProfileCode)
	}
	if inner.Temperature != 230.25 {
		t.Errorf("unexpected temperature: %v", inner.Temperature)
	}
	if inner.RunSeconds != 180 {
		t.Errorf("unexpected run seconds: %d", inner.RunSeconds)
	}
	if len(inner.Plot) != 1 || inner.Plot[0] != 25 {
		t.Errorf("unexpected plot: %v", inner.Plot)
	}
	if inner.Event != "" {
		t.Errorf("expected no event on web JSON, got %s", inner.Event)
	}
	if inner.MQTT.Broker != "tcp://localhost:1883" {
		t.Errorf("unexpected broker: %s", inner.MQTT.Broker)
	}
	if inner.StartTime != "2026-01-01T12:00:00Z" {
		t.Errorf("unexpected start time: %s", inner.StartTime)
	}
}

func TestFormatStatusEvent(t *testing.T) {
	tracker := NewTracker(time.Now(), 110, Config{})
	data := FormatStatusEvent(tracker.Snapshot(), "SHUTDOWN", "SIGTERM")

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.Event != "SHUTDOWN" {
		t.Errorf("unexpected event: %s", parsed.Status.Event)
	}
	if parsed.Status.Reason != "SIGTERM" {
		t.Errorf("unexpected reason: %s", parsed.Status.Reason)
	}
	if parsed.Status.State != "Ready" {
		t.Errorf("unexpected state: %s", parsed.Status.State)
	}
	// An idle tracker has an empty plot, not null
	if parsed.Status.Plot == nil {
		t.Error("expected empty plot array, got null")
	}
}
