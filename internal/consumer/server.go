package consumer

import (
	"context"
	"database/sql"

	"renov-srv/config"
	pkgKafka "renov-srv/pkg/kafka"
	"renov-srv/pkg/log"
	"renov-srv/pkg/storage"
)

// ConsumerServer is the background analysis orchestrator. It owns the
// Kafka consumer group plus the periodic maintenance sweeps.
type ConsumerServer struct {
	// Core Configuration
	l           log.Logger
	kafkaConfig config.KafkaConfig
	config      *config.Config

	// Infrastructure clients
	postgresDB    *sql.DB
	storageClient storage.IStorage

	// Messaging
	taskProducer  pkgKafka.IProducer
	eventProducer pkgKafka.IProducer
}

// Config holds all dependencies for the consumer server.
type Config struct {
	// Core Configuration
	Logger      log.Logger
	KafkaConfig config.KafkaConfig
	Config      *config.Config

	// Infrastructure clients
	PostgresDB    *sql.DB
	StorageClient storage.IStorage

	// Messaging
	TaskProducer  pkgKafka.IProducer
	EventProducer pkgKafka.IProducer
}

// Run starts the consumer server and blocks until context is cancelled.
// It initializes all domain layers, starts consumers and the
// maintenance loop, and handles graceful shutdown.
func (srv *ConsumerServer) Run(ctx context.Context) error {
	consumers, err := srv.setupDomains(ctx)
	if err != nil {
		srv.l.Errorf(ctx, "Failed to setup domains: %v", err)
		return err
	}

	if err := srv.startConsumers(ctx, consumers); err != nil {
		srv.l.Errorf(ctx, "Failed to start consumers: %v", err)
		return err
	}

	go srv.runMaintenance(ctx, consumers.reportUC)

	srv.l.Info(ctx, "Consumer Server is running")

	<-ctx.Done()
	srv.l.Info(ctx, "Shutdown signal received, stopping consumers...")

	srv.stopConsumers(ctx, consumers)

	srv.l.Info(ctx, "Consumer Server stopped gracefully")
	return nil
}
