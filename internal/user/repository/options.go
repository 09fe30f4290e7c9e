package repository

import "time"

type CreateOptions struct {
	OpenID        string
	Nickname      string
	Avatar        string
	SessionKeyEnc string
	InvitedBy     string
}

// UpdateOptions carries partial profile updates. Nil fields keep their
// current value.
type UpdateOptions struct {
	UserID string

	Nickname *string
	Avatar   *string
	Phone    *string
	City     *string

	// SessionKeyEnc refreshes the encrypted platform session on login.
	SessionKeyEnc *string

	// InvitedBy is recorded once, after a successful invitation redeem.
	InvitedBy *string
}

type SetMembershipOptions struct {
	UserID    string
	ExpiresAt time.Time
}
