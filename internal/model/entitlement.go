package model

import "time"

// Entitlement sources and statuses.
const (
	EntitlementSourceInvitation = "invitation"
	EntitlementSourcePromotion  = "promotion"

	EntitlementStatusAvailable = "available"
	EntitlementStatusUsed      = "used"
	EntitlementStatusExpired   = "expired"
)

// UnlockEntitlement is a one-shot right to unlock one report.
type UnlockEntitlement struct {
	ID      int64
	OwnerID string
	Source  string
	Status  string

	// BoundVariant restricts which report variant the entitlement can
	// unlock. Empty means any variant.
	BoundVariant string

	// UsedReportID is set when the entitlement is consumed.
	UsedReportID *int64

	ExpiresAt  time.Time
	ConsumedAt *time.Time
	CreatedAt  time.Time
}

// Invitation records a one-shot inviter/invitee link.
type Invitation struct {
	ID        int64
	Code      string
	InviterID string
	InviteeID string
	UsedAt    *time.Time
	CreatedAt time.Time
}
