package http

import (
	"encoding/json"
	"mime/multipart"

	"renov-srv/internal/model"
	"renov-srv/internal/report"
	"renov-srv/pkg/paginator"
)

type uploadReq struct {
	fileName    string
	contentType string
	size        int64
	file        multipart.File
}

func (r uploadReq) toInput() report.SubmitDocumentInput {
	return report.SubmitDocumentInput{
		FileName:    r.fileName,
		ContentType: r.contentType,
		Size:        r.size,
		Reader:      r.file,
	}
}

func (r uploadReq) toPhotoInput() report.UploadPhotoInput {
	return report.UploadPhotoInput{
		FileName:    r.fileName,
		ContentType: r.contentType,
		Size:        r.size,
		Reader:      r.file,
	}
}

type scanCompanyReq struct {
	CompanyName string `json:"company_name" binding:"required"`
}

func (r scanCompanyReq) toInput() report.SubmitCompanyInput {
	return report.SubmitCompanyInput{
		CompanyName: r.CompanyName,
	}
}

type analyzeAcceptanceReq struct {
	Stage     string   `json:"stage" binding:"required"`
	PhotoRefs []string `json:"photo_refs" binding:"required"`
}

func (r analyzeAcceptanceReq) toInput() report.SubmitAcceptanceInput {
	return report.SubmitAcceptanceInput{
		Stage:     r.Stage,
		PhotoRefs: r.PhotoRefs,
	}
}

type getReportReq struct {
	ReportID int64
	Variant  string
}

func (r getReportReq) toInput() report.GetReportInput {
	return report.GetReportInput{
		ReportID: r.ReportID,
		Variant:  r.Variant,
	}
}

type listReportsReq struct {
	Variant       string
	Deleted       bool
	PaginateQuery paginator.PaginateQuery
}

func (r listReportsReq) toInput() report.ListReportsInput {
	return report.ListReportsInput{
		Variant:       r.Variant,
		Deleted:       r.Deleted,
		PaginateQuery: r.PaginateQuery,
	}
}

type recheckReq struct {
	ReportID  int64
	PhotoRefs []string `json:"photo_refs" binding:"required"`
}

func (r recheckReq) toInput() report.RequestRecheckInput {
	return report.RequestRecheckInput{
		ReportID:  r.ReportID,
		PhotoRefs: r.PhotoRefs,
	}
}

type progressResp struct {
	Step    string `json:"step"`
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

type submitResp struct {
	ReportID int64        `json:"report_id"`
	Status   string       `json:"status"`
	Progress progressResp `json:"progress"`
}

func (h *handler) newSubmitResp(o report.SubmitOutput) submitResp {
	return submitResp{
		ReportID: o.ReportID,
		Status:   o.Status,
		Progress: progressResp{
			Step:    o.Progress.Step,
			Percent: o.Progress.Percent,
			Message: o.Progress.Message,
		},
	}
}

type uploadPhotoResp struct {
	PhotoRef   string `json:"photo_ref"`
	PreviewURL string `json:"preview_url"`
}

func (h *handler) newUploadPhotoResp(o report.UploadPhotoOutput) uploadPhotoResp {
	return uploadPhotoResp{
		PhotoRef:   o.PhotoRef,
		PreviewURL: o.PreviewURL,
	}
}

type reportResp struct {
	ID           int64        `json:"id"`
	Variant      string       `json:"variant"`
	Status       string       `json:"status"`
	Progress     progressResp `json:"progress"`
	FileName     string       `json:"file_name,omitempty"`
	CompanyName  string       `json:"company_name,omitempty"`
	Stage        string       `json:"stage,omitempty"`
	SourceURL    string       `json:"source_url,omitempty"`
	IsUnlocked   bool         `json:"is_unlocked"`
	UnlockReason string       `json:"unlock_reason"`

	Result json.RawMessage `json:"result,omitempty"`

	ResultStatus       string   `json:"result_status,omitempty"`
	RecheckCount       int      `json:"recheck_count,omitempty"`
	RectifiedPhotoRefs []string `json:"rectified_photo_refs,omitempty"`

	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
	DeletedAt *int64 `json:"deleted_at,omitempty"`
}

func (h *handler) newReportResp(o report.ReportOutput) reportResp {
	r := o.Report
	resp := reportResp{
		ID:      r.ID,
		Variant: r.Variant,
		Status:  r.Status,
		Progress: progressResp{
			Step:    r.Progress.Step,
			Percent: r.Progress.Percent,
			Message: r.Progress.Message,
		},
		FileName:     r.FileName,
		Stage:        r.Stage,
		SourceURL:    o.SourceURL,
		IsUnlocked:   r.IsUnlocked,
		UnlockReason: r.UnlockReason,
		ResultStatus: r.ResultStatus,
		RecheckCount: r.RecheckCount,
		CreatedAt:    r.CreatedAt.Unix(),
		UpdatedAt:    r.UpdatedAt.Unix(),
	}
	if r.Variant == model.VariantCompany {
		resp.CompanyName = r.SourceRef
	}
	if r.DeletedAt != nil {
		ts := r.DeletedAt.Unix()
		resp.DeletedAt = &ts
	}
	if r.IsUnlocked {
		resp.RectifiedPhotoRefs = r.RectifiedPhotoRefs
	}

	if len(r.Result) > 0 {
		if r.IsUnlocked {
			resp.Result = r.Result
		} else {
			resp.Result = redactResult(r.Variant, r.Result)
		}
	}

	return resp
}

type listReportsResp struct {
	Items []reportResp        `json:"items"`
	Meta  paginator.Paginator `json:"meta"`
}

func (h *handler) newListReportsResp(o report.ListReportsOutput) listReportsResp {
	items := make([]reportResp, 0, len(o.Reports))
	for _, r := range o.Reports {
		items = append(items, h.newReportResp(report.ReportOutput{Report: r}))
	}
	return listReportsResp{
		Items: items,
		Meta:  o.Paginator,
	}
}

// redactResult reduces a locked result to headline figures and item
// counts. Detail entries never leave the server until the report is
// unlocked.
func redactResult(variant string, raw json.RawMessage) json.RawMessage {
	var full map[string]json.RawMessage
	if err := json.Unmarshal(raw, &full); err != nil {
		return json.RawMessage(`{"locked":true}`)
	}

	out := map[string]any{"locked": true}

	switch variant {
	case model.VariantQuote:
		copyField(full, out, "risk_score")
		out["high_risk_count"] = arrayLen(full["high_risk_items"])
		out["warning_count"] = arrayLen(full["warning_items"])
		out["missing_count"] = arrayLen(full["missing_items"])
		out["overpriced_count"] = arrayLen(full["overpriced_items"])
	case model.VariantContract:
		copyField(full, out, "risk_level")
		out["risk_item_count"] = arrayLen(full["risk_items"])
		out["unfair_term_count"] = arrayLen(full["unfair_terms"])
		out["missing_term_count"] = arrayLen(full["missing_terms"])
	case model.VariantCompany:
		copyField(full, out, "risk_level")
		if legal, ok := full["legal_risks"]; ok {
			var lr map[string]json.RawMessage
			if json.Unmarshal(legal, &lr) == nil {
				copyField(lr, out, "case_count")
				copyField(lr, out, "decoration_related_cases")
			}
		}
	case model.VariantAcceptance:
		copyField(full, out, "severity")
		out["issue_count"] = arrayLen(full["issues"])
	}

	b, err := json.Marshal(out)
	if err != nil {
		return json.RawMessage(`{"locked":true}`)
	}
	return b
}

func copyField(src map[string]json.RawMessage, dst map[string]any, key string) {
	if v, ok := src[key]; ok {
		dst[key] = v
	}
}

func arrayLen(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0
	}
	return len(items)
}
