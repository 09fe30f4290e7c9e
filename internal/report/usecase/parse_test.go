package usecase

import (
	"encoding/json"
	"testing"

	"renov-srv/internal/model"
)

func TestExtractJSONObject(t *testing.T) {
	t.Run("plain object", func(t *testing.T) {
		raw, err := extractJSONObject(`{"risk_score": 42}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var parsed map[string]interface{}
		if err := json.Unmarshal(raw, &parsed); err != nil {
			t.Fatalf("result not valid JSON: %v", err)
		}
		if parsed["risk_score"].(float64) != 42 {
			t.Errorf("risk_score mismatch: got %v", parsed["risk_score"])
		}
	})

	t.Run("code fence with commentary", func(t *testing.T) {
		reply := "分析结果如下:\n```json\n{\"risk_level\": \"high\"}\n```\n请注意以上内容。"
		raw, err := extractJSONObject(reply)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(raw) != `{"risk_level": "high"}` {
			t.Errorf("unexpected extraction: %s", raw)
		}
	})

	t.Run("braces inside strings", func(t *testing.T) {
		reply := `{"summary": "包含 { 和 } 的文本", "risk_score": 10}`
		raw, err := extractJSONObject(reply)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var parsed map[string]interface{}
		if err := json.Unmarshal(raw, &parsed); err != nil {
			t.Fatalf("result not valid JSON: %v", err)
		}
	})

	t.Run("skips malformed candidate for later valid one", func(t *testing.T) {
		reply := `{broken} then {"ok": true}`
		raw, err := extractJSONObject(reply)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(raw) != `{"ok": true}` {
			t.Errorf("unexpected extraction: %s", raw)
		}
	})

	t.Run("no object", func(t *testing.T) {
		if _, err := extractJSONObject("抱歉,我无法完成分析。"); err == nil {
			t.Error("expected error for prose-only reply")
		}
	})
}

func TestValidateResult(t *testing.T) {
	cases := []struct {
		name    string
		variant string
		raw     string
		wantErr bool
	}{
		{"quote ok", model.VariantQuote, `{"risk_score": 55, "high_risk_items": []}`, false},
		{"quote score out of range", model.VariantQuote, `{"risk_score": 120, "high_risk_items": []}`, true},
		{"quote missing items", model.VariantQuote, `{"risk_score": 55}`, true},
		{"contract ok", model.VariantContract, `{"risk_level": "warning"}`, false},
		{"contract bad level", model.VariantContract, `{"risk_level": "severe"}`, true},
		{"company ok", model.VariantCompany, `{"company_info": {}}`, false},
		{"company missing info", model.VariantCompany, `{"legal_risks": {}}`, true},
		{"acceptance ok", model.VariantAcceptance, `{"severity": "pass"}`, false},
		{"acceptance bad severity", model.VariantAcceptance, `{"severity": "critical"}`, true},
		{"unknown variant", "invoice", `{"anything": 1}`, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateResult(tc.variant, json.RawMessage(tc.raw))
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFallbackResult(t *testing.T) {
	for _, variant := range []string{model.VariantQuote, model.VariantContract, model.VariantCompany, model.VariantAcceptance} {
		t.Run(variant, func(t *testing.T) {
			raw := fallbackResult(variant)
			var parsed map[string]interface{}
			if err := json.Unmarshal(raw, &parsed); err != nil {
				t.Fatalf("fallback payload not valid JSON: %v", err)
			}
			if parsed["fallback"] != true {
				t.Error("fallback payload missing fallback marker")
			}
			// Fallback payloads must satisfy the same shape checks as
			// real results so downstream presentation never branches.
			if err := validateResult(variant, raw); err != nil {
				t.Errorf("fallback payload failed validation: %v", err)
			}
		})
	}
}

func TestAcceptanceResultStatus(t *testing.T) {
	cases := []struct {
		name   string
		result string
		want   string
	}{
		{"pass stays completed", `{"severity": "pass"}`, model.ResultStatusCompleted},
		{"warning opens rectification", `{"severity": "warning"}`, model.ResultStatusNeedRectify},
		{"fail opens rectification", `{"severity": "fail"}`, model.ResultStatusNeedRectify},
		{"fallback never opens rectification", `{"fallback": true, "severity": "warning"}`, model.ResultStatusCompleted},
		{"malformed defaults to completed", `not json`, model.ResultStatusCompleted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := acceptanceResultStatus(json.RawMessage(tc.result))
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseAnalysisTask(t *testing.T) {
	t.Run("valid task", func(t *testing.T) {
		payload, err := marshalTask(77)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		id, err := ParseAnalysisTask(payload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != 77 {
			t.Errorf("report id mismatch: got %d, want 77", id)
		}
	})

	t.Run("malformed payload", func(t *testing.T) {
		if _, err := ParseAnalysisTask([]byte("{{")); err == nil {
			t.Error("expected error for malformed payload")
		}
	})
}
