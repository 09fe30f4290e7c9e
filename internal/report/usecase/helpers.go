package usecase

import (
	"encoding/json"
	"strings"

	"renov-srv/internal/model"
	"renov-srv/internal/report"
)

// Accepted MIME types for document and photo uploads.
var allowedDocTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// normalizeCompanyName builds the dedup key for company lookups:
// case-folded, all whitespace removed. Registration suffixes ("有限公司"
// and friends) are preserved so distinct legal entities stay distinct.
func normalizeCompanyName(name string) string {
	folded := strings.ToLower(name)
	return strings.Join(strings.Fields(folded), "")
}

func (uc *implUseCase) validateDocumentUpload(input report.SubmitDocumentInput) error {
	if input.Size <= 0 || input.Reader == nil {
		return report.ErrSubmitFailed
	}
	if input.Size > uc.config.MaxUploadBytes {
		return report.ErrFileTooLarge
	}
	if !allowedDocTypes[input.ContentType] {
		return report.ErrUnsupportedFileType
	}
	return nil
}

func (uc *implUseCase) validatePhotoUpload(input report.UploadPhotoInput) error {
	if input.Size <= 0 || input.Reader == nil {
		return report.ErrSubmitFailed
	}
	if input.Size > uc.config.MaxPhotoUploadBytes {
		return report.ErrFileTooLarge
	}
	if !allowedPhotoTypes[input.ContentType] {
		return report.ErrUnsupportedFileType
	}
	return nil
}

func queuedProgress() model.Progress {
	return model.Progress{Step: report.StepQueued, Percent: report.PercentQueued, Message: "排队中"}
}

func completedProgress() model.Progress {
	return model.Progress{Step: report.StepCompleted, Percent: report.PercentCompleted, Message: "分析完成"}
}

// analysisTask is the payload published to the analysis topic.
type analysisTask struct {
	ReportID int64 `json:"report_id"`
}

// reportEvent is the payload published to the events topic for the
// message-center collaborator.
type reportEvent struct {
	Type     string `json:"type"`
	ReportID int64  `json:"report_id"`
	Variant  string `json:"variant"`
	OwnerID  string `json:"owner_id"`
}

func marshalTask(reportID int64) ([]byte, error) {
	return json.Marshal(analysisTask{ReportID: reportID})
}

func marshalEvent(ev reportEvent) ([]byte, error) {
	return json.Marshal(ev)
}

// ParseAnalysisTask decodes one analysis-topic message.
func ParseAnalysisTask(value []byte) (int64, error) {
	var task analysisTask
	if err := json.Unmarshal(value, &task); err != nil {
		return 0, err
	}
	return task.ReportID, nil
}
