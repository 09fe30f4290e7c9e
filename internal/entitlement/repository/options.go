package repository

import "time"

type CreateInvitationOptions struct {
	InviterID string
	Code      string
}

type MarkInvitationUsedOptions struct {
	InvitationID int64
	InviteeID    string
}

type CreateEntitlementOptions struct {
	OwnerID string
	Source  string
	// BoundVariant restricts the entitlement to one report variant.
	// Empty means the entitlement can unlock any variant.
	BoundVariant string
	ExpiresAt    time.Time
}

type ConsumeOptions struct {
	OwnerID  string
	ReportID int64
	Now      time.Time
}
