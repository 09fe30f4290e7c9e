package model

import "time"

// Consultation session statuses.
const (
	SessionStatusActive = "active"
	SessionStatusClosed = "closed"
)

// Consultation message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConsultSession is a multi-turn conversation scoped to one owner,
// optionally linked to a report.
type ConsultSession struct {
	ID      int64
	OwnerID string

	LinkedReportID      *int64
	LinkedReportVariant string
	Stage               string

	Status           string
	IsHumanEscalated bool
	EscalatedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConsultMessage is one append-only message in a session, ordered by ID.
type ConsultMessage struct {
	ID        int64
	SessionID int64
	Role      string
	Content   string
	ImageRefs []string
	CreatedAt time.Time
}

// QuotaCounter tracks per-user monthly assistant-reply consumption.
// One row per (owner, year_month).
type QuotaCounter struct {
	OwnerID   string
	YearMonth string // "2006-01"
	UsedCount int
	UpdatedAt time.Time
}
