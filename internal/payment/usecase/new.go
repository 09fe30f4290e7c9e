package usecase

import (
	"time"

	"renov-srv/internal/payment"
	"renov-srv/internal/payment/repository"
	"renov-srv/internal/report"
	"renov-srv/pkg/log"
)

const defaultUnlockPriceFen = 990

// Config holds payment tunables.
type Config struct {
	// UnlockPriceFen is the single-report unlock price in fen.
	UnlockPriceFen int64
}

type implUseCase struct {
	repo     repository.PostgresRepository
	reportUC report.UseCase
	l        log.Logger
	config   Config

	clock func() time.Time
}

// New creates a new payment UseCase implementation.
func New(repo repository.PostgresRepository, reportUC report.UseCase, l log.Logger, cfg Config) payment.UseCase {
	if cfg.UnlockPriceFen <= 0 {
		cfg.UnlockPriceFen = defaultUnlockPriceFen
	}

	return &implUseCase{
		repo:     repo,
		reportUC: reportUC,
		l:        l,
		config:   cfg,
		clock:    time.Now,
	}
}
