package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"renov-srv/internal/model"
)

// fallbackMessage is the first suggestion of every fallback payload so
// clients can recognize a degraded result.
const fallbackMessage = "分析服务暂时不可用,请稍后重试"

// extractResult recovers the variant result object from an agent reply
// that may wrap JSON in prose or code fences, then validates it against
// the variant's schema.
func extractResult(variant, reply string) (json.RawMessage, error) {
	raw, err := extractJSONObject(reply)
	if err != nil {
		return nil, err
	}
	if err := validateResult(variant, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// extractJSONObject returns the first balanced JSON object found in s.
// Code fences and surrounding commentary are skipped; candidates that
// fail to decode are passed over in favor of later ones.
func extractJSONObject(s string) (json.RawMessage, error) {
	s = strings.ReplaceAll(s, "```json", "\n")
	s = strings.ReplaceAll(s, "```", "\n")

	for start := 0; start < len(s); start++ {
		if s[start] != '{' {
			continue
		}
		end, ok := matchBrace(s, start)
		if !ok {
			continue
		}
		candidate := s[start : end+1]
		var probe map[string]interface{}
		if json.Unmarshal([]byte(candidate), &probe) == nil {
			return json.RawMessage(candidate), nil
		}
		// Keep scanning past this opening brace.
	}
	return nil, fmt.Errorf("no JSON object found in reply")
}

// matchBrace finds the index of the brace closing the object opened at
// start, honoring strings and escape sequences.
func matchBrace(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// validateResult checks the variant-discriminating fields. The check is
// deliberately shallow: the agent owns the payload detail, the system
// only refuses shapes it cannot present.
func validateResult(variant string, raw json.RawMessage) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("result is not an object: %w", err)
	}

	switch variant {
	case model.VariantQuote:
		var score float64
		if err := json.Unmarshal(fields["risk_score"], &score); err != nil {
			return fmt.Errorf("quote result missing risk_score")
		}
		if score < 0 || score > 100 {
			return fmt.Errorf("quote risk_score %v out of range", score)
		}
		if _, ok := fields["high_risk_items"]; !ok {
			return fmt.Errorf("quote result missing high_risk_items")
		}
	case model.VariantContract:
		var level string
		if err := json.Unmarshal(fields["risk_level"], &level); err != nil {
			return fmt.Errorf("contract result missing risk_level")
		}
		switch level {
		case "compliant", "warning", "high":
		default:
			return fmt.Errorf("contract risk_level %q invalid", level)
		}
	case model.VariantCompany:
		if _, ok := fields["company_info"]; !ok {
			return fmt.Errorf("company result missing company_info")
		}
	case model.VariantAcceptance:
		var severity string
		if err := json.Unmarshal(fields["severity"], &severity); err != nil {
			return fmt.Errorf("acceptance result missing severity")
		}
		switch severity {
		case "pass", "warning", "fail":
		default:
			return fmt.Errorf("acceptance severity %q invalid", severity)
		}
	default:
		return fmt.Errorf("unknown variant %q", variant)
	}
	return nil
}

// fallbackResult is the canonical degraded payload stored when the
// agent replied but no conforming JSON could be recovered. The payload
// is fixed per variant and carries an explicit fallback marker; it
// never fabricates analysis.
func fallbackResult(variant string) json.RawMessage {
	switch variant {
	case model.VariantQuote:
		return mustJSON(map[string]interface{}{
			"fallback":         true,
			"risk_score":       50,
			"high_risk_items":  []interface{}{},
			"warning_items":    []interface{}{},
			"missing_items":    []interface{}{},
			"overpriced_items": []interface{}{},
			"materials":        []interface{}{},
			"suggestions":      []string{fallbackMessage},
		})
	case model.VariantContract:
		return mustJSON(map[string]interface{}{
			"fallback":                true,
			"risk_level":              "warning",
			"risk_items":              []interface{}{},
			"unfair_terms":            []interface{}{},
			"missing_terms":           []interface{}{},
			"suggested_modifications": []interface{}{},
			"summary":                 fallbackMessage,
		})
	case model.VariantCompany:
		return mustJSON(map[string]interface{}{
			"fallback":     true,
			"company_info": map[string]interface{}{},
			"legal_risks": map[string]interface{}{
				"case_count":               0,
				"decoration_related_cases": 0,
				"case_types":               []interface{}{},
				"recent_cases":             []interface{}{},
			},
			"risk_level":   "unknown",
			"risk_reasons": []string{fallbackMessage},
		})
	case model.VariantAcceptance:
		return mustJSON(map[string]interface{}{
			"fallback":    true,
			"severity":    "warning",
			"issues":      []interface{}{},
			"suggestions": []string{fallbackMessage},
			"summary":     fallbackMessage,
		})
	default:
		return mustJSON(map[string]interface{}{
			"fallback":    true,
			"suggestions": []string{fallbackMessage},
		})
	}
}

// acceptanceResultStatus derives the rectification entry state from the
// stored result. Fallback payloads never open a rectification loop.
func acceptanceResultStatus(result json.RawMessage) string {
	var parsed struct {
		Fallback bool   `json:"fallback"`
		Severity string `json:"severity"`
	}
	if err := json.Unmarshal(result, &parsed); err != nil {
		return model.ResultStatusCompleted
	}
	if parsed.Fallback {
		return model.ResultStatusCompleted
	}
	switch parsed.Severity {
	case "warning", "fail":
		return model.ResultStatusNeedRectify
	default:
		return model.ResultStatusCompleted
	}
}

func mustJSON(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
