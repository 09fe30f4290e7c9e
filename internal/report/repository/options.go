package repository

import (
	"encoding/json"
	"time"

	"renov-srv/internal/model"
)

type CreateOptions struct {
	Variant        string
	OwnerID        string
	SourceRef      string
	FileName       string
	NormalizedName string
	Stage          string

	// Prefilled state for cache hits: a company report created from a
	// fresh prior result starts completed.
	Status       string
	Progress     model.Progress
	Result       json.RawMessage
	IsUnlocked   bool
	UnlockReason string
}

type GetOptions struct {
	ReportID int64
	// Variant restricts the lookup when set.
	Variant string
	// IncludeDeleted also matches soft-deleted rows.
	IncludeDeleted bool
}

type ListOptions struct {
	OwnerID string
	Variant string
	Deleted bool
	Limit   int64
	Offset  int64
}

type UpdateStatusOptions struct {
	ReportID int64
	// Expected is the CAS precondition.
	Expected string
	New      string
	Progress model.Progress
}

type UpdateProgressOptions struct {
	ReportID int64
	Progress model.Progress
	// OCRText is written alongside progress when non-empty.
	OCRText string
}

type UpdateCompletedOptions struct {
	ReportID     int64
	Result       json.RawMessage
	ResultStatus string
	Progress     model.Progress
}

type UpdateFailedOptions struct {
	ReportID int64
	Message  string
}

type FindCachedCompanyOptions struct {
	NormalizedName string
	Window         time.Duration
}

type SetUnlockOptions struct {
	ReportID      int64
	Reason        string
	EntitlementID *int64
}

type UpdateRecheckOptions struct {
	ReportID           int64
	ResultStatus       string
	RectifiedPhotoRefs []string
	IncrementRecheck   bool
}

type DeleteOptions struct {
	ReportID int64
	OwnerID  string
}
