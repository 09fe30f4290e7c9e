package model

import (
	"encoding/json"
	"time"
)

// Report variant discriminators.
const (
	VariantQuote      = "quote"
	VariantContract   = "contract"
	VariantCompany    = "company"
	VariantAcceptance = "acceptance"
)

// Report statuses. Transitions are monotonic:
// pending -> analyzing -> completed | failed.
const (
	ReportStatusPending   = "pending"
	ReportStatusAnalyzing = "analyzing"
	ReportStatusCompleted = "completed"
	ReportStatusFailed    = "failed"
)

// Unlock reasons.
const (
	UnlockReasonLocked     = "locked"
	UnlockReasonFirstFree  = "first_free"
	UnlockReasonPaid       = "paid"
	UnlockReasonInvitation = "invitation"
	UnlockReasonCached     = "cached"
)

// Acceptance rectification statuses.
const (
	ResultStatusCompleted      = "completed"
	ResultStatusNeedRectify    = "need_rectify"
	ResultStatusPendingRecheck = "pending_recheck"
	ResultStatusRechecked      = "rechecked"
)

// Progress tracks where a report is in its analysis lifecycle.
// Percent is monotonically non-decreasing within a lifecycle.
type Progress struct {
	Step    string `json:"step"`
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

// Report is one persisted analysis record. All four variants share the row
// shape; variant-specific payloads live in Result.
type Report struct {
	ID      int64
	Variant string
	OwnerID string

	Status   string
	Progress Progress

	// SourceRef is the object-store key for document variants, or the
	// literal company name for company reports.
	SourceRef string
	FileName  string

	// NormalizedName is the dedup key for company reports, empty for
	// other variants.
	NormalizedName string

	// Stage is the construction-phase tag (S01..S05), acceptance only.
	Stage string

	OCRText string
	Result  json.RawMessage

	IsUnlocked   bool
	UnlockReason string

	// Acceptance rectification lifecycle.
	ResultStatus       string
	RectifiedPhotoRefs []string
	RecheckCount       int

	// EntitlementID references the consumed entitlement when
	// UnlockReason is invitation.
	EntitlementID *int64

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Terminal reports are never re-advanced by the background worker.
func (r Report) Terminal() bool {
	return r.Status == ReportStatusCompleted || r.Status == ReportStatusFailed
}
