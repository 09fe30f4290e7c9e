package report

import (
	"io"

	"renov-srv/internal/model"
	"renov-srv/pkg/paginator"
)

// Progress checkpoints. Percent only moves forward within a lifecycle.
const (
	StepQueued     = "queued"
	StepOCR        = "ocr"
	StepAnalyzing  = "analyzing"
	StepPersisting = "persisting"
	StepCompleted  = "completed"

	PercentQueued     = 0
	PercentOCR        = 20
	PercentAnalyzing  = 50
	PercentPersisting = 90
	PercentCompleted  = 100
)

// Construction stages accepted for acceptance reports.
var ValidStages = map[string]bool{
	"S01": true,
	"S02": true,
	"S03": true,
	"S04": true,
	"S05": true,
}

type SubmitDocumentInput struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type SubmitCompanyInput struct {
	CompanyName string
}

type SubmitAcceptanceInput struct {
	Stage     string
	PhotoRefs []string
}

type UploadPhotoInput struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type UploadPhotoOutput struct {
	PhotoRef   string `json:"photo_ref"`
	PreviewURL string `json:"preview_url"`
}

type GetReportInput struct {
	ReportID int64
	Variant  string
}

type ListReportsInput struct {
	Variant       string
	Deleted       bool
	PaginateQuery paginator.PaginateQuery
}

type DeleteReportInput struct {
	ReportID int64
}

type RestoreReportInput struct {
	ReportID int64
}

type RequestRecheckInput struct {
	ReportID  int64
	PhotoRefs []string
}

type SubmitOutput struct {
	ReportID int64          `json:"report_id"`
	Status   string         `json:"status"`
	Progress model.Progress `json:"progress"`
}

type ReportOutput struct {
	Report *model.Report
	// SourceURL is a short-lived preview URL for document variants.
	SourceURL string
}

type ListReportsOutput struct {
	Reports   []*model.Report
	Paginator paginator.Paginator
}
