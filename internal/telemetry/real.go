package telemetry

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// bufferCapacity bounds the messages held while the broker is unreachable.
const bufferCapacity = 64

// RealPublisher publishes to an actual MQTT broker. The connection is
// established in the background with automatic retry, so the oven runs
// even when the broker is down at boot. QoS 1 messages (run headers,
// lifecycle events) published while disconnected are buffered and replayed
// on reconnect; QoS 0 samples are dropped, the next second brings a fresh
// one.
type RealPublisher struct {
	client paho.Client

	mu  sync.Mutex
	buf *ringBuffer
}

// NewRealPublisher creates a publisher for the given broker and starts
// connecting in the background.
func NewRealPublisher(broker string) *RealPublisher {
	p := &RealPublisher{buf: newRingBuffer(bufferCapacity)}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("reflow-oven").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(p.onConnect)

	p.client = paho.NewClient(opts)
	p.client.Connect()
	return p
}

// onConnect replays messages buffered while disconnected.
func (p *RealPublisher) onConnect(client paho.Client) {
	p.mu.Lock()
	msgs := p.buf.drainAll()
	p.mu.Unlock()

	if len(msgs) == 0 {
		return
	}
	log.Printf("mqtt: connected, replaying %d buffered messages", len(msgs))
	for _, m := range msgs {
		token := client.Publish(m.topic, m.qos, m.retained, m.payload)
		if !token.WaitTimeout(5 * time.Second) {
			log.Printf("mqtt: replay timeout on %s", m.topic)
			continue
		}
		if err := token.Error(); err != nil {
			log.Printf("mqtt: replay failed on %s: %v", m.topic, err)
		}
	}
}

func (p *RealPublisher) publish(topic string, qos byte, retained bool, payload []byte) error {
	if !p.client.IsConnectionOpen() {
		if qos == 0 {
			return fmt.Errorf("not connected, dropping message")
		}
		p.mu.Lock()
		p.buf.push(bufferedMsg{topic: topic, payload: payload, qos: qos, retained: retained})
		p.mu.Unlock()
		return nil
	}

	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// PublishSample sends one control sample to the MQTT broker.
// QoS 0 (at-most-once): samples flow once a second, a lost one is replaced
// by the next.
func (p *RealPublisher) PublishSample(s Sample) error {
	payload, err := FormatSamplePayload(s)
	if err != nil {
		return fmt.Errorf("format sample payload: %w", err)
	}
	return p.publish(TopicSamples, 0, false, payload)
}

// PublishRunStart sends the run header record to the MQTT broker.
// QoS 1, retained: late subscribers need to know which run the sample
// stream belongs to.
func (p *RealPublisher) PublishRunStart(rs RunStart) error {
	payload, err := FormatRunStartPayload(rs)
	if err != nil {
		return fmt.Errorf("format run start payload: %w", err)
	}
	return p.publish(TopicSamples, 1, true, payload)
}

// PublishSystem sends a daemon lifecycle event to the MQTT broker.
// QoS 1 (at-least-once) for lifecycle events - we want to ensure delivery.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	return p.publish(TopicSystem, 1, event.Retained, payload)
}

// IsConnected reports whether the MQTT connection is active.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnectionOpen()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
