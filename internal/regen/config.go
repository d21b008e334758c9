package regen

import (
	"fmt"
	"os"
)

// Config holds Kafka configuration for the regeneration signal bus
type Config struct {
	Brokers           string
	Topic             string
	EnableIdempotence bool
	Acks              string
}

// LoadConfig loads regeneration bus configuration from environment
// variables. KAFKA_BROKERS is required; everything else has defaults.
func LoadConfig() (*Config, error) {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil, fmt.Errorf("KAFKA_BROKERS environment variable is required")
	}

	topic := os.Getenv("KAFKA_TOPIC_REGEN_EVENTS")
	if topic == "" {
		topic = "regen-events"
	}

	return &Config{
		Brokers:           brokers,
		Topic:             topic,
		EnableIdempotence: true,
		Acks:              "all",
	}, nil
}
