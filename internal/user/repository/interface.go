package repository

import (
	"context"

	"renov-srv/internal/model"
)

//go:generate mockery --name UserRepository
type UserRepository interface {
	Create(ctx context.Context, opts CreateOptions) (*model.User, error)
	GetByID(ctx context.Context, userID string) (*model.User, error)
	GetByOpenID(ctx context.Context, openID string) (*model.User, error)

	Update(ctx context.Context, opts UpdateOptions) (*model.User, error)

	// ConsumeFirstFree claims the lifetime first-free flag with a
	// compare-and-set. Reports whether this call won the claim.
	ConsumeFirstFree(ctx context.Context, userID string) (bool, error)

	// SetMembership activates or extends a membership.
	SetMembership(ctx context.Context, opts SetMembershipOptions) error
}

//go:generate mockery --name PostgresRepository
type PostgresRepository interface {
	UserRepository
}
