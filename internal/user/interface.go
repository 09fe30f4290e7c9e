package user

import (
	"context"

	"renov-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Login exchanges a platform OAuth code for a bearer token,
	// creating the account on first sight. An invitation code, when
	// present and valid, credits the inviter with one entitlement.
	Login(ctx context.Context, input LoginInput) (LoginOutput, error)

	GetProfile(ctx context.Context, sc model.Scope) (ProfileOutput, error)
	UpdateProfile(ctx context.Context, sc model.Scope, input UpdateProfileInput) (ProfileOutput, error)

	// IsMember reports whether the user holds an active membership.
	IsMember(ctx context.Context, userID string) (bool, error)

	// ConsumeFirstFree claims the lifetime first-report-free unlock.
	// Returns true exactly once per user; concurrent callers race on a
	// compare-and-set so only one wins.
	ConsumeFirstFree(ctx context.Context, userID string) (bool, error)
}
