// Package regen publishes static-regeneration signals. The regeneration
// subsystem itself is a separate consumer; this side only tells it which
// path went stale, never waits for it and never retries.
package regen

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// Notifier signals that a statically generated path should be rebuilt.
// Implementations must not block the caller and must swallow their own
// failures: a missed regeneration is the regeneration subsystem's
// concern, not the write path's.
type Notifier interface {
	Notify(path string)
}

// Event is the message published per stale path
type Event struct {
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// KafkaNotifier publishes regeneration events to a Kafka topic
type KafkaNotifier struct {
	producer *kafka.Producer
	config   *Config
	logger   *slog.Logger
}

// NewKafkaNotifier creates a Kafka-backed notifier
func NewKafkaNotifier(config *Config, logger *slog.Logger) (*KafkaNotifier, error) {
	producerConfig := &kafka.ConfigMap{
		"bootstrap.servers":  config.Brokers,
		"enable.idempotence": config.EnableIdempotence,
		"acks":               config.Acks,
	}

	p, err := kafka.NewProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	n := &KafkaNotifier{
		producer: p,
		config:   config,
		logger:   logger,
	}

	go n.handleDeliveryReports()

	logger.Info("regeneration notifier initialized",
		"brokers", config.Brokers,
		"topic", config.Topic)

	return n, nil
}

// Notify publishes the stale path and returns immediately. Delivery
// outcomes land in the background report handler; failures are logged
// there and nowhere else.
func (n *KafkaNotifier) Notify(path string) {
	jsonData, err := json.Marshal(Event{Path: path, Timestamp: time.Now()})
	if err != nil {
		n.logger.Error("failed to marshal regen event", "path", path, "error", err.Error())
		return
	}

	topic := n.config.Topic
	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &topic,
			Partition: kafka.PartitionAny,
		},
		Value: jsonData,
	}

	if err := n.producer.Produce(msg, nil); err != nil {
		n.logger.Error("failed to publish regen event", "path", path, "error", err.Error())
		return
	}

	n.logger.Debug("regen event published", "path", path)
}

func (n *KafkaNotifier) handleDeliveryReports() {
	for e := range n.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				n.logger.Error("regen event delivery failed",
					"topic", *ev.TopicPartition.Topic,
					"error", ev.TopicPartition.Error)
			} else {
				n.logger.Debug("regen event delivered",
					"topic", *ev.TopicPartition.Topic,
					"partition", ev.TopicPartition.Partition,
					"offset", ev.TopicPartition.Offset)
			}
		}
	}
}

// Close flushes outstanding events and closes the producer
func (n *KafkaNotifier) Close() {
	remaining := n.producer.Flush(10000)
	if remaining > 0 {
		n.logger.Warn("regen events not delivered before close", "count", remaining)
	}
	n.producer.Close()
}

// NopNotifier discards every signal. Used when the regeneration bus is
// not configured (local development, tests).
type NopNotifier struct{}

// Notify implements Notifier
func (NopNotifier) Notify(string) {}
