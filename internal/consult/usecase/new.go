package usecase

import (
	"time"

	"renov-srv/internal/consult"
	"renov-srv/internal/consult/repository"
	"renov-srv/internal/report"
	"renov-srv/internal/user"
	"renov-srv/pkg/llmagent"
	"renov-srv/pkg/log"
	"renov-srv/pkg/storage"
)

const (
	defaultFreeQuota = 3

	// historyTurns is how many prior exchanges travel with each prompt.
	historyTurns = 8

	maxMessageLength = 2000

	// consultDeadline bounds one assistant turn.
	consultDeadline = 30 * time.Second
)

// Config holds consultation tunables.
type Config struct {
	FreeQuotaPerMonth int
}

type implUseCase struct {
	repo     repository.PostgresRepository
	reportUC report.UseCase
	userUC   user.UseCase
	agent    llmagent.IAgent
	storage  storage.IStorage
	l        log.Logger
	config   Config

	clock func() time.Time
}

// New creates a new consultation UseCase implementation.
func New(
	repo repository.PostgresRepository,
	reportUC report.UseCase,
	userUC user.UseCase,
	agent llmagent.IAgent,
	storageClient storage.IStorage,
	l log.Logger,
	cfg Config,
) consult.UseCase {
	if cfg.FreeQuotaPerMonth <= 0 {
		cfg.FreeQuotaPerMonth = defaultFreeQuota
	}

	return &implUseCase{
		repo:     repo,
		reportUC: reportUC,
		userUC:   userUC,
		agent:    agent,
		storage:  storageClient,
		l:        l,
		config:   cfg,
		clock:    time.Now,
	}
}
