package usecase

import (
	"time"

	"renov-srv/internal/report"
	"renov-srv/internal/report/repository"
	"renov-srv/internal/user"
	"renov-srv/pkg/enrich"
	"renov-srv/pkg/kafka"
	"renov-srv/pkg/llmagent"
	"renov-srv/pkg/log"
	"renov-srv/pkg/ocr"
	"renov-srv/pkg/storage"
)

const (
	defaultCompanyCacheWindow = 30 * 24 * time.Hour
	defaultMaxUploadBytes     = int64(10 << 20)
	defaultMaxPhotoBytes      = int64(20 << 20)
	defaultRestoreRetention   = 7 * 24 * time.Hour

	// analysisDeadline bounds one background continuation end to end.
	analysisDeadline = 90 * time.Second
)

// Config holds report pipeline tunables.
type Config struct {
	CompanyCacheWindow  time.Duration
	MaxUploadBytes      int64
	MaxPhotoUploadBytes int64
	RestoreRetention    time.Duration
}

type implUseCase struct {
	repo          repository.PostgresRepository
	storage       storage.IStorage
	ocr           ocr.IOCR
	agent         llmagent.IAgent
	enrich        enrich.IEnrichment
	userUC        user.UseCase
	taskProducer  kafka.IProducer
	eventProducer kafka.IProducer
	l             log.Logger
	config        Config

	clock func() time.Time
}

// New creates a new report UseCase implementation.
func New(
	repo repository.PostgresRepository,
	storageClient storage.IStorage,
	ocrClient ocr.IOCR,
	agent llmagent.IAgent,
	enrichClient enrich.IEnrichment,
	userUC user.UseCase,
	taskProducer kafka.IProducer,
	eventProducer kafka.IProducer,
	l log.Logger,
	cfg Config,
) report.UseCase {
	if cfg.CompanyCacheWindow <= 0 {
		cfg.CompanyCacheWindow = defaultCompanyCacheWindow
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.MaxPhotoUploadBytes <= 0 {
		cfg.MaxPhotoUploadBytes = defaultMaxPhotoBytes
	}
	if cfg.RestoreRetention <= 0 {
		cfg.RestoreRetention = defaultRestoreRetention
	}

	return &implUseCase{
		repo:          repo,
		storage:       storageClient,
		ocr:           ocrClient,
		agent:         agent,
		enrich:        enrichClient,
		userUC:        userUC,
		taskProducer:  taskProducer,
		eventProducer: eventProducer,
		l:             l,
		config:        cfg,
		clock:         time.Now,
	}
}
