package entitlement

import (
	"context"

	"renov-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// CreateInvitation issues (or returns) the caller's shareable
	// invitation code.
	CreateInvitation(ctx context.Context, sc model.Scope) (InvitationOutput, error)

	// RedeemInvitation binds a new account to an invitation code and
	// credits the inviter with one unlock entitlement. Each invitation
	// is one-shot; later redeemers get ErrInvitationUsed. Returns the
	// inviter's user ID.
	RedeemInvitation(ctx context.Context, inviteeID, code string) (string, error)

	ListEntitlements(ctx context.Context, sc model.Scope) (ListOutput, error)

	// ConsumeEntitlement spends one available entitlement to unlock the
	// given report. The entitlement update and the report unlock commit
	// atomically.
	ConsumeEntitlement(ctx context.Context, sc model.Scope, input ConsumeInput) error
}
