package consumer

import (
	"context"
	"fmt"
	"time"

	"renov-srv/internal/report"
	reportConsumer "renov-srv/internal/report/delivery/kafka/consumer"
	reportPostgre "renov-srv/internal/report/repository/postgre"
	reportUsecase "renov-srv/internal/report/usecase"
	userPostgre "renov-srv/internal/user/repository/postgre"
	userUsecase "renov-srv/internal/user/usecase"
	"renov-srv/pkg/enrich"
	"renov-srv/pkg/llmagent"
	"renov-srv/pkg/ocr"
)

const (
	reconcileInterval = time.Minute
	purgeInterval     = time.Hour
)

// domainConsumers holds references to all domain consumers for cleanup.
type domainConsumers struct {
	reportConsumer *reportConsumer.Consumer
	reportUC       report.UseCase
}

// setupDomains initializes all domain layers (repositories, usecases, consumers).
func (srv *ConsumerServer) setupDomains(ctx context.Context) (*domainConsumers, error) {
	day := 24 * time.Hour

	ocrClient := ocr.NewOCR(ocr.Config{
		Endpoint:       srv.config.OCR.Endpoint,
		QPS:            srv.config.OCR.QPS,
		MaxImageHeight: srv.config.OCR.MaxImageHeight,
	}, srv.l)
	agent := llmagent.NewAgent(llmagent.Config{
		APIToken:    srv.config.LLM.APIToken,
		BotID:       srv.config.LLM.BotID,
		SiteURL:     srv.config.LLM.SiteURL,
		FallbackKey: srv.config.LLM.FallbackKey,
		FallbackURL: srv.config.LLM.FallbackURL,
	}, srv.l)
	enrichClient := enrich.NewEnrichment(enrich.Config{
		RegistryToken:   srv.config.Enrichment.RegistryToken,
		RegistryURL:     srv.config.Enrichment.RegistryURL,
		LitigationToken: srv.config.Enrichment.LitigationToken,
		LitigationURL:   srv.config.Enrichment.LitigationURL,
		Timeout:         time.Duration(srv.config.Enrichment.TimeoutSeconds) * time.Second,
	}, srv.l)

	reportRepo := reportPostgre.New(srv.postgresDB, srv.l)
	userRepo := userPostgre.New(srv.postgresDB, srv.l)

	// The worker only consumes the user first-free flag; login and
	// invitation redemption stay on the API side.
	userUC := userUsecase.New(userRepo, nil, nil, nil, nil, srv.l)

	reportUC := reportUsecase.New(
		reportRepo, srv.storageClient, ocrClient, agent, enrichClient, userUC,
		srv.taskProducer, srv.eventProducer, srv.l,
		reportUsecase.Config{
			CompanyCacheWindow:  time.Duration(srv.config.Limits.CompanyCacheDays) * day,
			MaxUploadBytes:      srv.config.Limits.MaxUploadBytes,
			MaxPhotoUploadBytes: srv.config.Limits.MaxPhotoUploadBytes,
			RestoreRetention:    time.Duration(srv.config.Limits.RecycleRetentionDays) * day,
		},
	)

	reportCons, err := reportConsumer.New(reportConsumer.Config{
		Logger:      srv.l,
		KafkaConfig: srv.kafkaConfig,
		UseCase:     reportUC,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create report consumer: %w", err)
	}

	srv.l.Infof(ctx, "Report domain initialized")

	return &domainConsumers{
		reportConsumer: reportCons,
		reportUC:       reportUC,
	}, nil
}

// startConsumers starts all domain consumers in background goroutines.
func (srv *ConsumerServer) startConsumers(ctx context.Context, consumers *domainConsumers) error {
	if err := consumers.reportConsumer.ConsumeAnalysisTasks(ctx); err != nil {
		return fmt.Errorf("failed to start report consumer: %w", err)
	}

	srv.l.Infof(ctx, "All consumers started successfully")
	return nil
}

// stopConsumers gracefully stops all domain consumers.
func (srv *ConsumerServer) stopConsumers(ctx context.Context, consumers *domainConsumers) {
	if consumers.reportConsumer != nil {
		if err := consumers.reportConsumer.Close(); err != nil {
			srv.l.Errorf(ctx, "Error closing report consumer: %v", err)
		}
	}

	srv.l.Infof(ctx, "All consumers stopped")
}

// runMaintenance drives the periodic sweeps: re-enqueueing stale
// pending reports and purging recycle-bin reports past retention.
func (srv *ConsumerServer) runMaintenance(ctx context.Context, uc report.UseCase) {
	reconcileTicker := time.NewTicker(reconcileInterval)
	defer reconcileTicker.Stop()
	purgeTicker := time.NewTicker(purgeInterval)
	defer purgeTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-reconcileTicker.C:
			if err := uc.Reconcile(ctx); err != nil {
				srv.l.Errorf(ctx, "Reconcile sweep failed: %v", err)
			}
		case <-purgeTicker.C:
			if err := uc.PurgeExpired(ctx); err != nil {
				srv.l.Errorf(ctx, "Purge sweep failed: %v", err)
			}
		}
	}
}
