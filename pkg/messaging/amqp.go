package messaging

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/models"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/pipeline"
)

// RiskEvent is the message published for each scored chunk.
type RiskEvent struct {
	CallID      string           `json:"call_id"`
	Phase       models.Phase     `json:"phase"`
	Score       float64          `json:"score"`
	Level       models.RiskLevel `json:"level"`
	Triggers    []string         `json:"triggers,omitempty"`
	AgentActive bool             `json:"agent_active"`
	Timestamp   time.Time        `json:"timestamp"`
}

// AMQPPublisher pushes risk events to a message queue for downstream
// consumers. It is optional: when no URL is configured the publisher
// stays disconnected and publishing is a silent no-op.
type AMQPPublisher struct {
	logger    *logrus.Logger
	url       string
	queueName string

	conn      *amqp.Connection
	channel   *amqp.Channel
	connected bool
	mu        sync.Mutex
}

// NewAMQPPublisher creates a publisher for the given broker URL and queue.
func NewAMQPPublisher(logger *logrus.Logger, url, queueName string) *AMQPPublisher {
	return &AMQPPublisher{
		logger:    logger,
		url:       url,
		queueName: queueName,
	}
}

// Connect establishes the broker connection and declares the queue.
// A missing URL disables the publisher without error; a failing broker
// is reported but callers treat it as non-fatal.
func (p *AMQPPublisher) Connect() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.connected {
		return nil
	}
	if p.url == "" || p.queueName == "" {
		p.logger.Debug("AMQP not configured, event publishing disabled")
		return nil
	}

	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(5 * time.Second)})
	if err != nil {
		return fmt.Errorf("dialing AMQP broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("opening AMQP channel: %w", err)
	}

	if _, err := channel.QueueDeclare(p.queueName, true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("declaring queue %s: %w", p.queueName, err)
	}

	p.conn = conn
	p.channel = channel
	p.connected = true
	p.logger.WithField("queue", p.queueName).Info("Connected to AMQP broker")
	return nil
}

// Observer returns a pipeline observer that publishes one RiskEvent per
// scored chunk. Publish failures are logged and swallowed so messaging
// problems never stall chunk processing.
func (p *AMQPPublisher) Observer() pipeline.ChunkObserver {
	return func(event pipeline.ChunkEvent) {
		if event.Risk == nil {
			return
		}
		riskEvent := RiskEvent{
			CallID:      event.CallID,
			Phase:       event.Phase,
			Score:       event.Risk.Score,
			Level:       event.Risk.Level,
			Triggers:    event.Risk.TriggerFactors,
			AgentActive: event.AgentActive,
			Timestamp:   event.Risk.Timestamp,
		}
		if err := p.Publish(riskEvent); err != nil {
			p.logger.WithError(err).Warn("Failed to publish risk event")
		}
	}
}

// Publish sends one event to the queue. It is a no-op when disconnected.
func (p *AMQPPublisher) Publish(event RiskEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.connected {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding risk event: %w", err)
	}

	return p.channel.Publish("", p.queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

// Close shuts down the channel and connection.
func (p *AMQPPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.connected {
		return
	}
	p.channel.Close()
	p.conn.Close()
	p.connected = false
}
