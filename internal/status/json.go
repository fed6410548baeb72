package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/reflow-oven/internal/control"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	State         string     `json:"state"`
	Running       bool       `json:"running"`
	Profile       string     `json:"profile"`
	ProfileCode   string     `json:"profile_code"`
	Temperature   float64    `json:"temperature"`
	SensorError   bool       `json:"sensor_error"`
	Setpoint      float64    `json:"setpoint"`
	Output        float64    `json:"output"`
	RunSeconds    int        `json:"run_seconds"`
	Plot          []int      `json:"plot"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Config        ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs     int64  `json:"poll_ms"`
	SampleMs   int64  `json:"sample_ms"`
	DebounceMs int64  `json:"debounce_ms"`
	Broker     string `json:"broker"`
	HTTPAddr   string `json:"http_addr"`
	SerialPort string `json:"serial_port"`
}

func buildInner(snap Snapshot) StatusInner {
	plot := snap.Plot
	if plot == nil {
		plot = []int{}
	}

	return StatusInner{
		State:         snap.State.String(),
		Running:       snap.Status == control.StatusOn,
		Profile:       snap.Profile.String(),
		ProfileCode:   snap.Profile.Code(),
		Temperature:   snap.Temperature,
		SensorError:   snap.SensorError,
		Setpoint:      snap.Setpoint,
		Output:        snap.Output,
		RunSeconds:    snap.Seconds,
		Plot:          plot,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Config: ConfigJSON{
			PollMs:     snap.Config.PollMs,
			SampleMs:   snap.Config.SampleMs,
			DebounceMs: snap.Config.DebounceMs,
			Broker:     snap.Config.Broker,
			HTTPAddr:   snap.Config.HTTPAddr,
			SerialPort: snap.Config.SerialPort,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
