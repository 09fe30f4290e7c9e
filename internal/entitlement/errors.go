package entitlement

import "errors"

var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationExpired  = errors.New("invitation expired")
	ErrInvitationUsed     = errors.New("invitation already used")
	ErrSelfInvitation     = errors.New("cannot redeem own invitation")
	ErrNoEntitlement      = errors.New("no available entitlement")
	ErrReportNotFound     = errors.New("report not found")
	ErrAlreadyUnlocked    = errors.New("report already unlocked")
)
