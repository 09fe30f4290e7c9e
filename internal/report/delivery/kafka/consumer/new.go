package consumer

import (
	"fmt"

	"renov-srv/config"
	"renov-srv/internal/report"
	pkgKafka "renov-srv/pkg/kafka"
	"renov-srv/pkg/log"
)

// Config holds the configuration for the report analysis consumer.
type Config struct {
	Logger      log.Logger
	KafkaConfig config.KafkaConfig
	UseCase     report.UseCase
}

// Consumer manages the Kafka consumer group for the report domain.
type Consumer struct {
	l           log.Logger
	kafkaConfig config.KafkaConfig
	uc          report.UseCase

	analysisGroup pkgKafka.IConsumer
}

// New creates a new report consumer.
func New(cfg Config) (*Consumer, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg.UseCase == nil {
		return nil, fmt.Errorf("usecase is required")
	}
	if len(cfg.KafkaConfig.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	return &Consumer{
		l:           cfg.Logger,
		kafkaConfig: cfg.KafkaConfig,
		uc:          cfg.UseCase,
	}, nil
}

// Close shuts down the consumer group.
func (c *Consumer) Close() error {
	if c.analysisGroup != nil {
		return c.analysisGroup.Close()
	}
	return nil
}
