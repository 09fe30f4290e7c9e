package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"renov-srv/config"
	configKafka "renov-srv/config/kafka"
	configMinio "renov-srv/config/minio"
	configPostgre "renov-srv/config/postgre"
	"renov-srv/internal/consumer"
	"renov-srv/pkg/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	// Create context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Renovation Analysis Worker...")

	// Kafka producers (re-enqueue on reconcile + report events)
	taskProducer, err := configKafka.ConnectProducer(cfg.Kafka, cfg.Kafka.AnalysisTopic)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect Kafka task producer: %v", err)
		return
	}
	eventProducer, err := configKafka.ConnectProducer(cfg.Kafka, cfg.Kafka.EventsTopic)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect Kafka event producer: %v", err)
		return
	}
	defer configKafka.DisconnectProducers()
	logger.Info(ctx, "Kafka producers initialized")

	// PostgreSQL
	postgresDB, err := configPostgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to PostgreSQL: %v", err)
		return
	}
	defer configPostgre.Disconnect(ctx, postgresDB)
	logger.Info(ctx, "PostgreSQL client initialized")

	// MinIO
	storageClient, err := configMinio.Connect(ctx, cfg.MinIO)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to MinIO: %v", err)
		return
	}
	defer configMinio.Disconnect()
	logger.Info(ctx, "MinIO client initialized")

	// Consumer server
	srv, err := consumer.New(consumer.Config{
		Logger:      logger,
		KafkaConfig: cfg.Kafka,
		Config:      cfg,

		PostgresDB:    postgresDB,
		StorageClient: storageClient,

		TaskProducer:  taskProducer,
		EventProducer: eventProducer,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to create consumer server: %v", err)
		return
	}

	// Run consumer server
	logger.Info(ctx, "Consumer server starting...")
	if err := srv.Run(ctx); err != nil {
		logger.Errorf(ctx, "Consumer server error: %v", err)
		return
	}
}
