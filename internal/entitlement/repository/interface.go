package repository

import (
	"context"

	"renov-srv/internal/model"
)

//go:generate mockery --name EntitlementRepository
type EntitlementRepository interface {
	CreateInvitation(ctx context.Context, opts CreateInvitationOptions) (*model.Invitation, error)
	GetInvitationByCode(ctx context.Context, code string) (*model.Invitation, error)

	// GetOpenInvitation returns the inviter's most recent unused
	// invitation, or nil when there is none.
	GetOpenInvitation(ctx context.Context, inviterID string) (*model.Invitation, error)

	// MarkInvitationUsed claims a one-shot invitation with a
	// compare-and-set on used_at. Reports whether this call won.
	MarkInvitationUsed(ctx context.Context, opts MarkInvitationUsedOptions) (bool, error)

	CreateEntitlement(ctx context.Context, opts CreateEntitlementOptions) (*model.UnlockEntitlement, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.UnlockEntitlement, error)

	// Consume spends the owner's oldest available entitlement on the
	// report. Both rows commit in one transaction; the locked report and
	// the entitlement are guarded with row locks so concurrent consumers
	// cannot double-spend. Returns the consumed entitlement ID.
	Consume(ctx context.Context, opts ConsumeOptions) (int64, error)
}

//go:generate mockery --name PostgresRepository
type PostgresRepository interface {
	EntitlementRepository
}
