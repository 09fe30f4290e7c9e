package consumer

import (
	"fmt"
)

// New creates a new consumer server with dependency validation.
func New(cfg Config) (*ConsumerServer, error) {
	srv := &ConsumerServer{
		l:             cfg.Logger,
		kafkaConfig:   cfg.KafkaConfig,
		config:        cfg.Config,
		postgresDB:    cfg.PostgresDB,
		storageClient: cfg.StorageClient,
		taskProducer:  cfg.TaskProducer,
		eventProducer: cfg.EventProducer,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate validates that all required dependencies are provided.
func (srv *ConsumerServer) validate() error {
	// Core Configuration
	if srv.l == nil {
		return fmt.Errorf("logger is required")
	}
	if len(srv.kafkaConfig.Brokers) == 0 {
		return fmt.Errorf("kafka brokers are required")
	}
	if srv.config == nil {
		return fmt.Errorf("config is required")
	}

	// Infrastructure clients
	if srv.postgresDB == nil {
		return fmt.Errorf("postgres db is required")
	}
	if srv.storageClient == nil {
		return fmt.Errorf("storage client is required")
	}

	// Messaging
	if srv.taskProducer == nil {
		return fmt.Errorf("task producer is required")
	}
	if srv.eventProducer == nil {
		return fmt.Errorf("event producer is required")
	}

	return nil
}
