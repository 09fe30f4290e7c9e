package model

import "time"

// User represents a mobile-client account resolved from the platform OAuth code.
type User struct {
	ID       string
	OpenID   string
	Nickname string
	Avatar   string
	Phone    string
	City     string

	// SessionKeyEnc is the platform session key, AES-GCM encrypted at rest.
	SessionKeyEnc string

	IsMember        bool
	MemberExpiresAt *time.Time

	// FirstFreeUsed is set once the lifetime first-report-free unlock is granted.
	FirstFreeUsed bool

	InvitedBy string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MemberActive reports whether the user holds an active membership now.
func (u User) MemberActive(now time.Time) bool {
	if !u.IsMember {
		return false
	}
	if u.MemberExpiresAt == nil {
		return true
	}
	return u.MemberExpiresAt.After(now)
}
