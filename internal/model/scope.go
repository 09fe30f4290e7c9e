package model

// Scope is the authenticated request scope carried through context.
type Scope struct {
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
}
