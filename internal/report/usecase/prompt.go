package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"renov-srv/internal/model"
	"renov-srv/pkg/enrich"
)

// Variant system prompts. The external agent is tuned for this header
// format; the user content is appended verbatim, never reformatted.

const quoteSystemPrompt = `你是资深装修造价审核师。请分析以下装修报价单的OCR文本,识别高风险项、漏项、虚高项,并以JSON格式输出,结构为:
{"risk_score": 0-100, "high_risk_items": [{"category", "item", "description", "impact", "suggestion"}], "warning_items": [], "missing_items": [], "overpriced_items": [], "total_price": 数字, "market_ref_price": "区间", "materials": [{"name", "brand_spec", "quantity", "unit_price", "category"}], "suggestions": []}
只输出JSON,不要输出其他内容。`

const contractSystemPrompt = `你是装修合同审查律师。请分析以下装修合同的OCR文本,识别风险条款、霸王条款、缺失条款,并以JSON格式输出,结构为:
{"risk_level": "compliant|warning|high", "risk_items": [{"category", "clause", "description", "legal_basis", "suggestion"}], "unfair_terms": [], "missing_terms": [], "suggested_modifications": [{"original", "modified", "reason"}], "summary": ""}
只输出JSON,不要输出其他内容。`

const companySystemPrompt = `你是装修行业企业背景调查分析师。请根据工商登记信息和涉诉记录,客观描述该装修公司的经营与法律风险。只陈述事实数字,不做主观评分。以JSON格式输出,结构为:
{"company_info": {}, "legal_risks": {"case_count", "decoration_related_cases", "case_types", "recent_cases": [{"title", "date", "court", "cause", "outcome", "cited_laws", "case_no"}]}, "risk_level": "low|medium|high", "risk_reasons": []}
只输出JSON,不要输出其他内容。`

const acceptanceSystemPrompt = `你是装修工程验收监理。请根据施工阶段和现场照片检查施工质量,并以JSON格式输出,结构为:
{"stage": "", "severity": "pass|warning|fail", "issues": [{"category", "description", "severity", "suggestion"}], "suggestions": [], "summary": ""}
只输出JSON,不要输出其他内容。`

func buildDocumentPrompt(variant, ocrText string) string {
	system := quoteSystemPrompt
	if variant == model.VariantContract {
		system = contractSystemPrompt
	}
	return fmt.Sprintf("%s\n\n【文档内容】\n%s", system, ocrText)
}

func buildCompanyPrompt(name string, profile *enrich.CompanyProfile, litigation []enrich.LitigationRecord) string {
	var sb strings.Builder
	sb.WriteString(companySystemPrompt)
	sb.WriteString("\n\n【公司名称】\n")
	sb.WriteString(name)

	sb.WriteString("\n\n【工商登记信息】\n")
	if profile != nil {
		if b, err := json.Marshal(profile); err == nil {
			sb.Write(b)
		}
	} else {
		sb.WriteString("未查询到")
	}

	sb.WriteString("\n\n【涉诉记录】\n")
	if len(litigation) > 0 {
		if b, err := json.Marshal(litigation); err == nil {
			sb.Write(b)
		}
	} else {
		sb.WriteString("未查询到")
	}

	return sb.String()
}

func buildAcceptancePrompt(stage string, photoURLs []string) string {
	var sb strings.Builder
	sb.WriteString(acceptanceSystemPrompt)
	sb.WriteString("\n\n【施工阶段】\n")
	sb.WriteString(stage)
	sb.WriteString("\n\n【现场照片】\n")
	for _, u := range photoURLs {
		sb.WriteString(u)
		sb.WriteString("\n")
	}
	return sb.String()
}
