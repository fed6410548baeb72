// Package telemetry publishes reflow run data over MQTT with abstraction
// for testing.
package telemetry

import (
	"encoding/json"
	"time"
)

// TopicSamples is the MQTT topic for per-second control samples.
const TopicSamples = "reflow/oven/samples"

// TopicSystem is the MQTT topic for daemon lifecycle events.
const TopicSystem = "reflow/oven/system"

// Publisher publishes run telemetry.
type Publisher interface {
	// PublishSample sends one control sample to the broker.
	// Returns error if publishing fails (should not crash the process).
	PublishSample(s Sample) error

	// PublishRunStart announces a new run. It is the header record:
	// it names the sample fields consumers should expect, in order.
	PublishRunStart(rs RunStart) error

	// PublishSystem sends a daemon lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// Sample is one control sample: elapsed run seconds, setpoint, measured
// temperature, and PID output.
type Sample struct {
	Timestamp time.Time
	Seconds   int
	Setpoint  float64
	Input     float64
	Output    float64
}

// RunStart announces a new run.
type RunStart struct {
	Timestamp time.Time
	Profile   string // two-letter profile code
}

// SystemEvent represents a daemon lifecycle event (startup, shutdown).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// SamplePayload is the MQTT message payload for a control sample.
type SamplePayload struct {
	Reflow SampleInner `json:"reflow"`
}

// SampleInner contains the sample details.
type SampleInner struct {
	Timestamp string  `json:"timestamp"`
	Seconds   int     `json:"time"`
	Setpoint  float64 `json:"setpoint"`
	Input     float64 `json:"input"`
	Output    float64 `json:"output"`
}

// FormatSamplePayload creates the JSON payload for a control sample.
func FormatSamplePayload(s Sample) ([]byte, error) {
	payload := SamplePayload{
		Reflow: SampleInner{
			Timestamp: s.Timestamp.UTC().Format(time.RFC3339),
			Seconds:   s.Seconds,
			Setpoint:  s.Setpoint,
			Input:     s.Input,
			Output:    s.Output,
		},
	}
	return json.Marshal(payload)
}

// runFields names the sample fields in publication order.
var runFields = []string{"time", "setpoint", "input", "output"}

// RunStartPayload is the MQTT message payload for a run start.
type RunStartPayload struct {
	Run RunStartInner `json:"reflow_run"`
}

// RunStartInner contains the run header details.
type RunStartInner struct {
	Timestamp string   `json:"timestamp"`
	Profile   string   `json:"profile"`
	Fields    []string `json:"fields"`
}

// FormatRunStartPayload creates the JSON payload for a run start.
func FormatRunStartPayload(rs RunStart) ([]byte, error) {
	payload := RunStartPayload{
		Run: RunStartInner{
			Timestamp: rs.Timestamp.UTC().Format(time.RFC3339),
			Profile:   rs.Profile,
			Fields:    runFields,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload is the MQTT message payload for simple system events that
// don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full
// status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
