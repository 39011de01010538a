package config

import (
	"github.com/segmentio/kafka-go"
)

// NewKafkaWriter returns a writer for the configured brokers, or nil when
// no brokers are set.
func (c *Config) NewKafkaWriter() *kafka.Writer {
	if len(c.KafkaBrokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(c.KafkaBrokers...),
		Topic:                  c.KafkaTopic,
		Balancer:               &kafka.LeastBytes{}, // Balancer for selecting partition
		AllowAutoTopicCreation: true,
	}
}
