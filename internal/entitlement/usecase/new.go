package usecase

import (
	"time"

	"renov-srv/internal/entitlement"
	"renov-srv/internal/entitlement/repository"
	"renov-srv/pkg/log"
)

const defaultInvitationExpiry = 30 * 24 * time.Hour

// Config holds entitlement tunables.
type Config struct {
	// InvitationExpiry bounds both the shareable code and the
	// entitlement it produces.
	InvitationExpiry time.Duration
}

type implUseCase struct {
	repo   repository.PostgresRepository
	l      log.Logger
	config Config

	clock func() time.Time
}

// New creates a new entitlement UseCase implementation.
func New(repo repository.PostgresRepository, l log.Logger, cfg Config) entitlement.UseCase {
	if cfg.InvitationExpiry <= 0 {
		cfg.InvitationExpiry = defaultInvitationExpiry
	}

	return &implUseCase{
		repo:   repo,
		l:      l,
		config: cfg,
		clock:  time.Now,
	}
}
