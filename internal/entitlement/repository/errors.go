package repository

import "errors"

var (
	ErrInvitationNotFound      = errors.New("invitation not found")
	ErrInvitationCreateFailed  = errors.New("failed to create invitation")
	ErrEntitlementCreateFailed = errors.New("failed to create entitlement")
	ErrNoEntitlement           = errors.New("no available entitlement")
	ErrReportNotFound          = errors.New("report not found")
	ErrReportAlreadyUnlocked   = errors.New("report already unlocked")
)
