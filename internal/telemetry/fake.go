package telemetry

// FakePublisher records published records for test assertions.
type FakePublisher struct {
	// Samples contains all control samples that were published.
	Samples []Sample

	// SamplePayloads contains the JSON payloads for samples.
	SamplePayloads [][]byte

	// RunStarts contains all run headers that were published.
	RunStarts []RunStart

	// SystemEvents contains all system events that were published.
	SystemEvents []SystemEvent

	// SystemPayloads contains the JSON payloads for system events.
	SystemPayloads [][]byte

	// PublishError, if set, will be returned by PublishSample and
	// PublishRunStart.
	PublishError error

	// PublishSystemError, if set, will be returned by PublishSystem.
	PublishSystemError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// PublishSample records the control sample.
func (f *FakePublisher) PublishSample(s Sample) error {
	if f.PublishError != nil {
		return f.PublishError
	}

	f.Samples = append(f.Samples, s)

	payload, err := FormatSamplePayload(s)
	if err != nil {
		return err
	}
	f.SamplePayloads = append(f.SamplePayloads, payload)

	return nil
}

// PublishRunStart records the run header.
func (f *FakePublisher) PublishRunStart(rs RunStart) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.RunStarts = append(f.RunStarts, rs)
	return nil
}

// PublishSystem records the system event.
func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}

	f.SystemEvents = append(f.SystemEvents, event)

	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemPayloads = append(f.SystemPayloads, payload)

	return nil
}

// IsConnected reports whether the fake publisher is "connected".
func (f *FakePublisher) IsConnected() bool {
	return f.Connected
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded records.
func (f *FakePublisher) Reset() {
	f.Samples = nil
	f.SamplePayloads = nil
	f.RunStarts = nil
	f.SystemEvents = nil
	f.SystemPayloads = nil
	f.Closed = false
	f.PublishError = nil
	f.PublishSystemError = nil
	f.Connected = false
}
