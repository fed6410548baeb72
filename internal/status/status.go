// Package status provides a thread-safe status tracker for the reflow-oven
// daemon. It is the display sink: the controller's display frames and plot
// points land here, and the HTTP handlers read point-in-time snapshots.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/reflow-oven/internal/control"
	"github.com/sweeney/reflow-oven/internal/profile"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs     int64
	SampleMs   int64
	DebounceMs int64
	Broker     string
	HTTPAddr   string
	SerialPort string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	State         control.State
	Status        control.Status
	Profile       profile.Profile
	Temperature   float64
	SensorError   bool
	Setpoint      float64
	Output        float64
	Seconds       int
	Plot          []int
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
	plot *PlotBuffer
}

// NewTracker creates a Tracker with the given start time, plot capacity,
// and config.
func NewTracker(startTime time.Time, plotWidth int, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
		plot: NewPlotBuffer(plotWidth),
	}
}

// UpdateFrame applies a display frame from the controller.
// Called from the run loop at the display refresh rate.
func (t *Tracker) UpdateFrame(f control.Frame) {
	t.mu.Lock()
	t.snap.State = f.State
	t.snap.Status = f.Status
	t.snap.Profile = f.Profile
	t.snap.Temperature = f.Temperature
	t.snap.SensorError = f.SensorError
	t.snap.Setpoint = f.Setpoint
	t.snap.Output = f.Output
	t.snap.Seconds = f.Seconds
	t.mu.Unlock()
}

// AppendPlot stores one quantized plot row.
func (t *Tracker) AppendPlot(row int) {
	t.mu.Lock()
	t.plot.Append(row)
	t.mu.Unlock()
}

// ResetPlot clears the plot at run start.
func (t *Tracker) ResetPlot() {
	t.mu.Lock()
	t.plot.Reset()
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	s.Plot = t.plot.Points()
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
