package http

import (
	"encoding/json"
	"testing"
	"time"

	"renov-srv/internal/model"
	"renov-srv/internal/report"
)

func TestRedactResult(t *testing.T) {
	t.Run("quote keeps headline counts only", func(t *testing.T) {
		raw := json.RawMessage(`{
			"risk_score": 72,
			"high_risk_items": [{"item": "防水", "price": 8000}, {"item": "拆除"}],
			"warning_items": [{"item": "吊顶"}],
			"missing_items": [],
			"overpriced_items": [{"item": "瓷砖"}],
			"suggestions": ["压低防水单价"]
		}`)

		var out map[string]interface{}
		if err := json.Unmarshal(redactResult(model.VariantQuote, raw), &out); err != nil {
			t.Fatalf("redacted payload not JSON: %v", err)
		}

		if out["locked"] != true {
			t.Error("locked marker missing")
		}
		if out["risk_score"].(float64) != 72 {
			t.Errorf("risk_score mismatch: %v", out["risk_score"])
		}
		if out["high_risk_count"].(float64) != 2 {
			t.Errorf("high_risk_count mismatch: %v", out["high_risk_count"])
		}
		if _, leaked := out["high_risk_items"]; leaked {
			t.Error("item detail leaked through redaction")
		}
		if _, leaked := out["suggestions"]; leaked {
			t.Error("suggestions leaked through redaction")
		}
	})

	t.Run("contract keeps risk level and counts", func(t *testing.T) {
		raw := json.RawMessage(`{
			"risk_level": "high",
			"risk_items": [{"clause": "第5条"}],
			"unfair_terms": [{"clause": "第8条"}, {"clause": "第9条"}],
			"missing_terms": []
		}`)

		var out map[string]interface{}
		if err := json.Unmarshal(redactResult(model.VariantContract, raw), &out); err != nil {
			t.Fatalf("redacted payload not JSON: %v", err)
		}
		if out["risk_level"].(string) != "high" {
			t.Errorf("risk_level mismatch: %v", out["risk_level"])
		}
		if out["unfair_term_count"].(float64) != 2 {
			t.Errorf("unfair_term_count mismatch: %v", out["unfair_term_count"])
		}
		if _, leaked := out["unfair_terms"]; leaked {
			t.Error("term detail leaked through redaction")
		}
	})

	t.Run("malformed result collapses to bare lock", func(t *testing.T) {
		out := redactResult(model.VariantQuote, json.RawMessage(`not json`))
		if string(out) != `{"locked":true}` {
			t.Errorf("unexpected redaction: %s", out)
		}
	})
}

func TestNewReportResp(t *testing.T) {
	h := &handler{}
	now := time.Now()
	result := json.RawMessage(`{"severity": "warning", "issues": [{"category": "电路"}]}`)

	base := func() *model.Report {
		return &model.Report{
			ID:                 5,
			Variant:            model.VariantAcceptance,
			OwnerID:            "user-1",
			Status:             model.ReportStatusCompleted,
			Stage:              "S02",
			Result:             result,
			ResultStatus:       model.ResultStatusNeedRectify,
			RectifiedPhotoRefs: []string{"acceptance/user-1/fix.jpg"},
			CreatedAt:          now,
			UpdatedAt:          now,
		}
	}

	t.Run("unlocked exposes full result", func(t *testing.T) {
		rpt := base()
		rpt.IsUnlocked = true
		rpt.UnlockReason = model.UnlockReasonPaid

		resp := h.newReportResp(report.ReportOutput{Report: rpt})
		if string(resp.Result) != string(result) {
			t.Errorf("full result expected, got %s", resp.Result)
		}
		if len(resp.RectifiedPhotoRefs) != 1 {
			t.Error("rectified refs missing for unlocked report")
		}
	})

	t.Run("locked redacts result and hides rectified refs", func(t *testing.T) {
		resp := h.newReportResp(report.ReportOutput{Report: base()})

		var out map[string]interface{}
		if err := json.Unmarshal(resp.Result, &out); err != nil {
			t.Fatalf("redacted payload not JSON: %v", err)
		}
		if out["locked"] != true {
			t.Error("locked marker missing")
		}
		if out["issue_count"].(float64) != 1 {
			t.Errorf("issue_count mismatch: %v", out["issue_count"])
		}
		if _, leaked := out["issues"]; leaked {
			t.Error("issue detail leaked through redaction")
		}
		if resp.RectifiedPhotoRefs != nil {
			t.Error("rectified refs should be hidden while locked")
		}
	})
}
