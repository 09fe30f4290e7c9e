package usecase

import (
	"time"

	"renov-srv/internal/entitlement"
	"renov-srv/internal/user"
	"renov-srv/internal/user/repository"
	"renov-srv/pkg/authplatform"
	"renov-srv/pkg/encrypter"
	"renov-srv/pkg/jwt"
	"renov-srv/pkg/log"
)

type implUseCase struct {
	repo          repository.PostgresRepository
	auth          authplatform.IAuthPlatform
	encrypter     encrypter.Encrypter
	jwtManager    *jwt.Manager
	entitlementUC entitlement.UseCase
	l             log.Logger

	clock func() time.Time
}

// New creates a new user UseCase implementation. entitlementUC may be
// nil in contexts that never log users in (the background worker).
func New(
	repo repository.PostgresRepository,
	auth authplatform.IAuthPlatform,
	enc encrypter.Encrypter,
	jwtManager *jwt.Manager,
	entitlementUC entitlement.UseCase,
	l log.Logger,
) user.UseCase {
	return &implUseCase{
		repo:          repo,
		auth:          auth,
		encrypter:     enc,
		jwtManager:    jwtManager,
		entitlementUC: entitlementUC,
		l:             l,
		clock:         time.Now,
	}
}
